package probe

import (
	"bytes"
	"strings"
	"testing"
)

func TestRecorder_Counts(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder("homepage", nil).WithOutput(&buf)

	r.Step("Chargement de la page d'accueil")
	r.Pass("page chargée")
	r.Warn("pas de suggestions d'autocomplétion")
	r.Pass("barre de recherche localisée")
	r.Fail("header introuvable")

	if r.Passed() != 2 || r.Warnings() != 1 || r.Failed() != 1 {
		t.Errorf("counts=%d/%d/%d, want 2/1/1", r.Passed(), r.Warnings(), r.Failed())
	}
}

func TestRecorder_StepNumbering(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder("search", nil).WithOutput(&buf)

	if got := r.Step("première"); got != 1 {
		t.Errorf("Step=%d, want 1", got)
	}
	if got := r.Step("deuxième"); got != 2 {
		t.Errorf("Step=%d, want 2", got)
	}
	if r.CurrentStep() != 2 {
		t.Errorf("CurrentStep=%d, want 2", r.CurrentStep())
	}
	if !strings.Contains(buf.String(), "Étape 2") {
		t.Errorf("narration missing step header, got: %s", buf.String())
	}
}

func TestRecorder_RunIDsUnique(t *testing.T) {
	a := NewRecorder("a", nil).WithOutput(&bytes.Buffer{})
	b := NewRecorder("b", nil).WithOutput(&bytes.Buffer{})
	if a.RunID() == b.RunID() {
		t.Error("run IDs should differ between recorders")
	}
	if a.RunID() == "" {
		t.Error("run ID should not be empty")
	}
}

func TestOutcome_String(t *testing.T) {
	if OutcomePass.String() != "pass" || OutcomeWarn.String() != "warn" || OutcomeFail.String() != "fail" {
		t.Error("unexpected outcome labels")
	}
}
