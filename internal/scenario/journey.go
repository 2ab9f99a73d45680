package scenario

import (
	"context"
	"time"

	"storeprobe/internal/browser"
)

// runJourney walks the storefront like a shopper: homepage, a quick search,
// a product page, the cart, the login page and back home. Every detour that
// fails is narrated and skipped, keeping the journey going.
func runJourney(ctx context.Context, env *Env) error {
	rec, page := env.Rec, env.Page
	rec.Banner("🛍️  TEST DE PARCOURS UTILISATEUR", "   Simulation d'un vrai visiteur")

	step := rec.Step("Visite de la page d'accueil")
	if err := page.Navigate(ctx, env.Cfg.Target.BaseURL, browser.WaitDOMContentLoaded); err != nil {
		return err
	}
	rec.Pass("Page d'accueil chargée")
	env.Capture(ctx, step, "homepage")
	_ = page.Sleep(ctx, 2*time.Second)

	step = rec.Step("Test de la recherche")
	if bar, err := page.First(ctx, searchInput); err == nil {
		if err := bar.Click(ctx); err == nil {
			if err := bar.Fill(ctx, "laptop"); err == nil {
				rec.Pass("Texte saisi: 'laptop'")
				env.Capture(ctx, step, "search")
				_ = page.Sleep(ctx, 2*time.Second)

				if err := bar.PressEnter(ctx); err == nil {
					_ = page.Sleep(ctx, time.Second)
					rec.Pass("Recherche soumise")
					env.Capture(ctx, step, "search_results")
					_ = page.Sleep(ctx, 2*time.Second)
				} else {
					rec.Warn("Soumission de la recherche échouée: %v", err)
				}
			} else {
				rec.Warn("Saisie échouée: %v", err)
			}
		} else {
			rec.Warn("Clic sur la recherche échoué: %v", err)
		}
	} else {
		rec.Warn("Champ de recherche non trouvé")
	}

	step = rec.Step("Retour à la page d'accueil")
	if err := page.Navigate(ctx, env.Cfg.Target.BaseURL, browser.WaitDOMContentLoaded); err != nil {
		return err
	}
	rec.Pass("De retour sur la page d'accueil")
	_ = page.Sleep(ctx, time.Second)

	step = rec.Step("Recherche de produits")
	if links, err := page.Locate(ctx, productLinkSelector); err == nil && len(links) > 0 {
		rec.Pass("%d liens produit trouvés", len(links))
		if err := links[0].Click(ctx); err == nil {
			rec.Pass("Produit ouvert")
			env.Capture(ctx, step, "product_detail")
			_ = page.Sleep(ctx, 3*time.Second)
		} else {
			rec.Warn("Clic sur le produit échoué: %v", err)
		}
	} else {
		rec.Warn("Aucun lien produit trouvé")
	}

	step = rec.Step("Consultation du panier")
	if err := page.Navigate(ctx, env.Cfg.Target.CartURL(), browser.WaitDOMContentLoaded); err != nil {
		rec.Warn("Page panier inaccessible: %v", err)
	} else {
		rec.Pass("Page panier chargée")
		env.Capture(ctx, step, "cart")
		_ = page.Sleep(ctx, 2*time.Second)
	}

	step = rec.Step("Consultation de la page de connexion")
	if err := page.Navigate(ctx, env.Cfg.Target.LoginURL(), browser.WaitDOMContentLoaded); err != nil {
		rec.Warn("Page de connexion inaccessible: %v", err)
	} else {
		rec.Pass("Page de connexion chargée")
		env.Capture(ctx, step, "login")
		_ = page.Sleep(ctx, 2*time.Second)
	}

	step = rec.Step("Dernière visite de la page d'accueil")
	if err := page.Navigate(ctx, env.Cfg.Target.BaseURL, browser.WaitDOMContentLoaded); err != nil {
		return err
	}
	rec.Pass("De retour sur la page d'accueil")
	env.Capture(ctx, step, "final")
	_ = page.Sleep(ctx, 2*time.Second)
	return nil
}
