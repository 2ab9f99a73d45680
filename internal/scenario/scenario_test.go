package scenario

import "testing"

func TestRegistry(t *testing.T) {
	scenarios := Registry()
	if len(scenarios) != 5 {
		t.Fatalf("registry holds %d scenarios, want 5", len(scenarios))
	}

	seen := map[string]bool{}
	for _, s := range scenarios {
		if s.Name == "" || s.Description == "" || s.Run == nil {
			t.Errorf("scenario %+v incomplete", s.Name)
		}
		if seen[s.Name] {
			t.Errorf("duplicate scenario name %q", s.Name)
		}
		seen[s.Name] = true
	}
}

func TestRegistry_ReturnsCopy(t *testing.T) {
	first := Registry()
	first[0].Name = "mutated"
	second := Registry()
	if second[0].Name == "mutated" {
		t.Error("Registry exposes internal slice")
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"homepage", "search", "auth", "journey", "debug-input"} {
		if _, ok := Lookup(name); !ok {
			t.Errorf("Lookup(%q) failed", name)
		}
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup accepted unknown name")
	}
}
