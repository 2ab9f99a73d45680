package scenario

import (
	"context"
	"fmt"
	"time"

	"storeprobe/internal/browser"
	"storeprobe/internal/probe"
)

// runSearch is the full search flow: locate the search bar, run four product
// queries, a typo query and a no-results query, with a screenshot at every
// step. Only the initial navigation and the search bar going missing abort
// the run; everything else degrades to warnings.
func runSearch(ctx context.Context, env *Env) error {
	rec, page := env.Rec, env.Page
	rec.Banner("🔍 TEST DE RECHERCHE AVEC CAPTURES D'ÉCRAN")

	// Step 1: homepage.
	step := rec.Step("Chargement de la page d'accueil")
	if err := page.Navigate(ctx, env.Cfg.Target.BaseURL, browser.WaitDOMContentLoaded); err != nil {
		return err
	}
	if err := page.Sleep(ctx, 2*time.Second); err != nil {
		return err
	}
	env.Capture(ctx, step, "homepage_loaded")
	rec.Pass("Page d'accueil chargée")

	// Step 2: the search bar must exist, highlighted for the screenshot.
	step = rec.Step("Localisation de la barre de recherche")
	bar, err := page.WaitVisible(ctx, searchInput, env.Cfg.Browser.ElementTimeout())
	if err != nil {
		return fmt.Errorf("search bar not visible: %w", err)
	}
	if err := bar.Highlight(ctx); err == nil {
		_ = page.Sleep(ctx, 500*time.Millisecond)
		env.Capture(ctx, step, "search_bar_located")
		_ = bar.Restore(ctx)
	} else {
		env.Capture(ctx, step, "search_bar_located")
	}
	rec.Pass("Barre de recherche localisée")

	// Step 3: first query, typed slowly, with an autocomplete check.
	step = rec.Step("Recherche 'Sony headphones'")
	bar, err = page.First(ctx, searchInput)
	if err != nil {
		return err
	}
	if err := bar.Click(ctx); err != nil {
		return err
	}
	_ = page.Sleep(ctx, 500*time.Millisecond)
	env.Capture(ctx, step, "search_bar_focused")

	if err := bar.Type(ctx, "Sony headphones"); err != nil {
		return err
	}
	_ = page.Sleep(ctx, 1500*time.Millisecond)
	env.Capture(ctx, step, "sony_typed")
	rec.Pass("Texte saisi: 'Sony headphones'")

	if rec.VisibleWithin(ctx, page, autocomplete, 2*time.Second, "Suggestions d'autocomplétion") == probe.OutcomePass {
		env.Capture(ctx, step, "autocomplete_visible")
	}

	// Step 4: submit.
	step = rec.Step("Soumission de la recherche")
	if err := bar.PressEnter(ctx); err != nil {
		return err
	}
	_ = page.Sleep(ctx, 2*time.Second)
	env.Capture(ctx, step, "sony_results")
	if url, err := page.URL(ctx); err == nil {
		rec.Pass("Résultats affichés - URL: %s", url)
	}

	// Steps 5-7: further product queries.
	queries := []struct {
		query string
		slug  string
		done  string
	}{
		{"Samsung Galaxy", "samsung", "Résultats Samsung affichés"},
		{"denim jacket", "denim", "Résultats vêtements affichés"},
		{"running shoes", "shoes", "Résultats chaussures affichés"},
	}
	for _, q := range queries {
		step = rec.Step("Recherche '%s'", q.query)
		if err := submitQuery(ctx, env, step, q.query, q.slug); err != nil {
			return err
		}
		rec.Pass("%s", q.done)
	}

	// Step 8: typo tolerance.
	step = rec.Step("Test de tolérance aux fautes - 'Samung Galxy'")
	if err := submitQuery(ctx, env, step, "Samung Galxy", "typo"); err != nil {
		return err
	}
	rec.Pass("Tolérance aux fautes testée")

	// Step 9: a query that should match nothing.
	step = rec.Step("Test sans résultats - 'xyzabc123notfound'")
	if err := submitQuery(ctx, env, step, "xyzabc123notfound", "no_results"); err != nil {
		return err
	}
	if page.HasText(ctx, noResultsPattern, 2*time.Second) {
		rec.Pass("Message 'aucun résultat' affiché")
	} else {
		rec.Warn("Message 'aucun résultat' non trouvé")
	}

	// Step 10: back home.
	step = rec.Step("Retour à la page d'accueil")
	if err := page.Navigate(ctx, env.Cfg.Target.BaseURL, browser.WaitDOMContentLoaded); err != nil {
		return err
	}
	_ = page.Sleep(ctx, 2*time.Second)
	env.Capture(ctx, step, "final_homepage")
	rec.Pass("Retour à la page d'accueil")
	return nil
}

// submitQuery types query into the search bar and submits it, capturing the
// typed state and the results page under slug-derived labels.
func submitQuery(ctx context.Context, env *Env, step int, query, slug string) error {
	page := env.Page

	bar, err := page.First(ctx, searchInput)
	if err != nil {
		return err
	}
	if err := bar.Click(ctx); err != nil {
		return err
	}
	if err := bar.Clear(ctx); err != nil {
		return err
	}
	if err := bar.Type(ctx, query); err != nil {
		return err
	}
	_ = page.Sleep(ctx, 1500*time.Millisecond)
	env.Capture(ctx, step, slug+"_typed")

	if err := bar.PressEnter(ctx); err != nil {
		return err
	}
	_ = page.Sleep(ctx, 2*time.Second)
	env.Capture(ctx, step, slug+"_results")
	return nil
}
