package inventory

import (
	"strings"

	"cafe-backend/internal/models"
)

// AllCategories is the catch-all entry of the POS category bar.
const AllCategories = "All"

// Categories returns "All" followed by each distinct category in the order
// it first appears in the catalog.
func Categories(products []models.Product) []string {
	out := []string{AllCategories}
	seen := map[string]bool{}
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// Filter narrows the catalog to a category ("" or "All" keeps everything)
// and a case-insensitive name search.
func Filter(products []models.Product, category, query string) []models.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}
