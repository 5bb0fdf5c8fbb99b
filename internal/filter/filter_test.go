package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/models"
)

func intPtr(v int) *int { return &v }

func fixtureProducts() []models.Product {
	return []models.Product{
		{Reference: "A", LotPrice: 6.5, UnitPrice: 1.1, Pieces: 6, CategoryID: 1, CollectionID: intPtr(1), Ingredients: []string{"riz", "nori", "shiitake"}, Allergens: []string{"soja"}},
		{Reference: "B", LotPrice: 7.2, UnitPrice: 1.2, Pieces: 6, CategoryID: 1, Ingredients: []string{"riz", "nori", "saumon"}, Allergens: []string{"poisson"}},
		{Reference: "C", LotPrice: 4.8, UnitPrice: 2.4, Pieces: 2, CategoryID: 2, CollectionID: intPtr(2), Ingredients: []string{"riz", "thon"}, Allergens: []string{"poisson"}},
		{Reference: "D", LotPrice: 5.2, UnitPrice: 2.6, Pieces: 2, CategoryID: 2, Ingredients: []string{"riz", "crevette"}, Allergens: []string{"crustacés"}},
		{Reference: "E", LotPrice: 27, UnitPrice: 1.5, Pieces: 18, CategoryID: 3, CollectionID: intPtr(2), Ingredients: []string{"riz", "saumon", "thon", "sésame"}, Allergens: []string{"poisson", "sésame", "soja"}},
	}
}

func refs(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Reference)
	}
	return out
}

func openCriteria() Criteria {
	return Criteria{MinPrice: 0, MaxPrice: math.Inf(1), UseLotPrice: true}
}

func TestApply_OpenCriteriaReturnsEverythingInOrder(t *testing.T) {
	products := fixtureProducts()

	got := Apply(products, openCriteria())

	assert.Equal(t, products, got)
}

func TestApply_EmptyCatalog(t *testing.T) {
	assert.Empty(t, Apply(nil, DefaultCriteria()))
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Criteria)
		want   []string
	}{
		{name: "category", mutate: func(c *Criteria) { c.CategoryID = intPtr(2) }, want: []string{"C", "D"}},
		{name: "all category", mutate: func(c *Criteria) { c.CategoryID = intPtr(models.AllCategoryID) }, want: []string{"A", "B", "C", "D", "E"}},
		{name: "pieces", mutate: func(c *Criteria) { c.Pieces = intPtr(6) }, want: []string{"A", "B"}},
		{name: "collection skips products without one", mutate: func(c *Criteria) { c.CollectionID = intPtr(2) }, want: []string{"C", "E"}},
		{
			name: "lot price range inclusive",
			mutate: func(c *Criteria) {
				c.MinPrice = 5.2
				c.MaxPrice = 7.2
			},
			want: []string{"A", "B", "D"},
		},
		{
			name: "unit price basis",
			mutate: func(c *Criteria) {
				c.UseLotPrice = false
				c.MinPrice = 2
				c.MaxPrice = 3
			},
			want: []string{"C", "D"},
		},
		{name: "ingredients match any", mutate: func(c *Criteria) { c.Ingredients = []string{"thon", "shiitake"} }, want: []string{"A", "C", "E"}},
		{name: "allergens match none", mutate: func(c *Criteria) { c.Allergens = []string{"poisson"} }, want: []string{"A", "D"}},
		{
			name: "dimensions combine",
			mutate: func(c *Criteria) {
				c.CategoryID = intPtr(1)
				c.Ingredients = []string{"saumon", "shiitake"}
				c.Allergens = []string{"soja"}
			},
			want: []string{"B"},
		},
		{
			name: "allergen exclusion wins over ingredients",
			mutate: func(c *Criteria) {
				c.Allergens = []string{"soja"}
				c.Ingredients = []string{"shiitake", "sésame"}
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := openCriteria()
			tt.mutate(&c)
			assert.Equal(t, tt.want, refs(Apply(fixtureProducts(), c)))
		})
	}
}

func TestApply_DefaultCriteriaPriceCap(t *testing.T) {
	got := Apply(fixtureProducts(), DefaultCriteria())

	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, refs(got))

	expensive := append(fixtureProducts(), models.Product{Reference: "X", LotPrice: 45})
	assert.NotContains(t, refs(Apply(expensive, DefaultCriteria())), "X")
}

func TestApply_ExcludedProductCannotReturnThroughIngredients(t *testing.T) {
	products := fixtureProducts()
	c := openCriteria()
	c.Allergens = []string{"poisson"}
	all := refs(products)
	kept := refs(Apply(products, c))

	for _, ingredients := range [][]string{nil, {"thon"}, {"saumon", "riz"}, {"crevette"}} {
		c.Ingredients = ingredients
		for _, ref := range refs(Apply(products, c)) {
			assert.Contains(t, kept, ref)
		}
	}
	assert.NotEqual(t, all, kept)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	products := fixtureProducts()
	c := openCriteria()
	c.Pieces = intPtr(2)

	Apply(products, c)

	assert.Equal(t, fixtureProducts(), products)
}
