package scenario

import (
	"context"
	"time"

	"storeprobe/internal/browser"
)

// runHomepage loads the storefront homepage and checks that its skeleton
// renders: header, main content, a non-empty title.
func runHomepage(ctx context.Context, env *Env) error {
	env.Rec.Banner("🚀 TEST DE LA PAGE D'ACCUEIL")

	step := env.Rec.Step("Chargement de la page d'accueil")
	if err := env.Page.Navigate(ctx, env.Cfg.Target.BaseURL, browser.WaitDOMContentLoaded); err != nil {
		return err
	}
	if err := env.Page.Sleep(ctx, 2*time.Second); err != nil {
		return err
	}
	env.Rec.Pass("Page d'accueil chargée")

	env.Rec.Step("Vérification de la structure de la page")
	if n, err := env.Page.Count(ctx, "header"); err == nil && n > 0 {
		env.Rec.Pass("Header trouvé")
	} else {
		env.Rec.Warn("Header non trouvé")
	}
	if n, err := env.Page.Count(ctx, "main"); err == nil && n > 0 {
		env.Rec.Pass("Contenu principal trouvé")
	} else {
		env.Rec.Warn("Contenu principal non trouvé")
	}

	env.Capture(ctx, step, "homepage_loaded")

	if title, err := env.Page.Title(ctx); err == nil && title != "" {
		env.Rec.Pass("Titre de la page: %s", title)
	} else {
		env.Rec.Warn("Titre de page vide")
	}
	if url, err := env.Page.URL(ctx); err == nil {
		env.Rec.Info("URL courante: %s", url)
	}
	return nil
}
