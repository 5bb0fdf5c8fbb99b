package filter

import (
	"slices"

	"storefront/internal/models"
)

// Facets regroupe les valeurs proposées dans les contrôles de filtre. Elles
// sont toujours calculées sur le catalogue complet, jamais sur le résultat filtré.
type Facets struct {
	Pieces      []int    `json:"pieces"`
	Ingredients []string `json:"ingredients"`
	Allergens   []string `json:"allergens"`
}

func ComputeFacets(products []models.Product) Facets {
	return Facets{
		Pieces:      UniquePieces(products),
		Ingredients: AllIngredients(products),
		Allergens:   AllAllergens(products),
	}
}

// UniquePieces retourne les nombres de pièces distincts, triés par ordre croissant.
func UniquePieces(products []models.Product) []int {
	pieces := make([]int, 0)
	for _, p := range products {
		if !slices.Contains(pieces, p.Pieces) {
			pieces = append(pieces, p.Pieces)
		}
	}
	slices.Sort(pieces)
	return pieces
}

func AllIngredients(products []models.Product) []string {
	return uniqueSorted(products, func(p models.Product) []string { return p.Ingredients })
}

func AllAllergens(products []models.Product) []string {
	return uniqueSorted(products, func(p models.Product) []string { return p.Allergens })
}

func uniqueSorted(products []models.Product, tags func(models.Product) []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range products {
		for _, tag := range tags(p) {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	slices.Sort(out)
	return out
}
