package filter

import "slices"

// Bornes de prix par défaut du catalogue
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 30
)

// Criteria décrit les filtres actifs. Un pointeur nil signifie "pas de filtre".
type Criteria struct {
	CategoryID   *int     `json:"category_id"`
	Pieces       *int     `json:"pieces"`
	CollectionID *int     `json:"collection_id"`
	MinPrice     float64  `json:"min_price"`
	MaxPrice     float64  `json:"max_price"`
	UseLotPrice  bool     `json:"use_lot_price"`
	Ingredients  []string `json:"ingredients"`
	Allergens    []string `json:"allergens"`
}

// DefaultCriteria est l'état initial (et l'état après réinitialisation).
func DefaultCriteria() Criteria {
	return Criteria{
		MinPrice:    DefaultMinPrice,
		MaxPrice:    DefaultMaxPrice,
		UseLotPrice: true,
	}
}

// Reset remet tous les filtres à leur valeur par défaut.
func (c *Criteria) Reset() {
	*c = DefaultCriteria()
}

// ToggleIngredient ajoute l'ingrédient s'il est absent, le retire sinon.
func (c *Criteria) ToggleIngredient(tag string) {
	c.Ingredients = toggle(c.Ingredients, tag)
}

// ToggleAllergen ajoute l'allergène exclu s'il est absent, le retire sinon.
func (c *Criteria) ToggleAllergen(tag string) {
	c.Allergens = toggle(c.Allergens, tag)
}

// SetIngredients remplace la sélection ; équivaut à basculer chaque tag de
// la différence symétrique avec la sélection précédente.
func (c *Criteria) SetIngredients(tags []string) {
	c.Ingredients = dedup(tags)
}

func (c *Criteria) SetAllergens(tags []string) {
	c.Allergens = dedup(tags)
}

func toggle(selection []string, tag string) []string {
	if i := slices.Index(selection, tag); i >= 0 {
		return slices.Delete(slices.Clone(selection), i, i+1)
	}
	return append(slices.Clone(selection), tag)
}

func dedup(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !slices.Contains(out, tag) {
			out = append(out, tag)
		}
	}
	return out
}
