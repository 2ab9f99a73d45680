package scenario

import "storeprobe/internal/browser"

// Selector fallback lists for the storefront's DOM shapes. Candidates are
// tried in order; the first that matches any element wins, so the most
// specific selector goes first.
var (
	searchInput = browser.FallbackList{
		`input[type="search"]`,
		`input[placeholder*="Search"]`,
		`input[placeholder*="Recherch"]`,
	}

	autocomplete = browser.FallbackList{
		`[role="listbox"]`,
		`[class*="autocomplete"]`,
		`[class*="suggestion"]`,
	}

	nameInput = browser.FallbackList{
		`input[name="name"]`,
		`input[placeholder*="nom"]`,
		`input[placeholder*="Name"]`,
		`input[type="text"]`,
	}

	emailInput = browser.FallbackList{
		`input[name="email"]`,
		`input[type="email"]`,
		`input[placeholder*="email"]`,
		`input[placeholder*="Email"]`,
	}

	submitButton = browser.FallbackList{
		`button[type="submit"]`,
		`form button`,
		`input[type="submit"]`,
	}

	// The header search field is sometimes a plain named text input rather
	// than type=search; the debug probe targets that shape first.
	debugSearchInput = browser.FallbackList{
		`input[type="text"][name="search"]`,
		`input[type="search"]`,
		`input[placeholder*="Search"]`,
		`input[placeholder*="Recherch"]`,
	}
)

const (
	passwordSelector    = `input[type="password"]`
	productLinkSelector = `a[href*="/products/"]`

	// JS regex matched against page text when a search yields nothing.
	noResultsPattern = `/No results|Aucun résultat|No products/i`
)
