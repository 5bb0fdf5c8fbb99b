package filter

import (
	"slices"

	"storefront/internal/models"
)

// Apply retourne les produits qui passent tous les filtres, dans l'ordre d'origine.
// Les dimensions se combinent en ET ; les ingrédients en OU (au moins un),
// les allergènes en NI (aucun).
func Apply(products []models.Product, c Criteria) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if Match(p, c) {
			out = append(out, p)
		}
	}
	return out
}

// Match indique si un produit passe tous les filtres.
func Match(p models.Product, c Criteria) bool {
	// La catégorie 0 ("Tout") ne filtre rien
	if c.CategoryID != nil && *c.CategoryID != models.AllCategoryID && p.CategoryID != *c.CategoryID {
		return false
	}
	if c.Pieces != nil && p.Pieces != *c.Pieces {
		return false
	}
	if c.CollectionID != nil && (p.CollectionID == nil || *p.CollectionID != *c.CollectionID) {
		return false
	}

	price := p.Price(c.UseLotPrice)
	if price < c.MinPrice || price > c.MaxPrice {
		return false
	}

	if len(c.Ingredients) > 0 && !intersects(p.Ingredients, c.Ingredients) {
		return false
	}
	if len(c.Allergens) > 0 && intersects(p.Allergens, c.Allergens) {
		return false
	}
	return true
}

func intersects(tags, wanted []string) bool {
	for _, w := range wanted {
		if slices.Contains(tags, w) {
			return true
		}
	}
	return false
}
