package catalog

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/assets"
	"storefront/internal/models"
)

const productsJSON = `[
  {"reference_produit":"A","nom":"Maki","prix_unitaire":1,"prix_lot":6,"nombre_pieces":6,"categorie":1,"collection":1,"ingredients":["riz"],"allergenes":[],"url":"/fr/livraison/umami/maki-a"},
  {"reference_produit":"B","nom":"Sushi","prix_unitaire":2,"prix_lot":4,"nombre_pieces":2,"categorie":2,"collection":null,"ingredients":["thon"],"allergenes":["poisson"]}
]`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/produits.json":    {Data: []byte(productsJSON)},
		"data/categories.json":  {Data: []byte(`[{"id":0,"titre":"Tout"},{"id":1,"titre":"Makis"}]`)},
		"data/collections.json": {Data: []byte(`[{"id":1,"titre":"Umami"}]`)},
	}
}

func TestCatalog_Load(t *testing.T) {
	c := New(NewFSSource(testFS()))

	require.NoError(t, c.Load(context.Background()))

	assert.Len(t, c.Products(), 2)
	assert.Len(t, c.Categories(), 2)
	assert.Len(t, c.Collections(), 1)

	p, ok := c.ProductByReference("B")
	require.True(t, ok)
	assert.Equal(t, "Sushi", p.Name)
	assert.Nil(t, p.CollectionID)

	_, ok = c.ProductByReference("Z")
	assert.False(t, ok)

	assert.Equal(t, "Makis", c.CategoryName(1))
	assert.Equal(t, "", c.CategoryName(9))
	one := 1
	assert.Equal(t, "Umami", c.CollectionName(&one))
	assert.Equal(t, "", c.CollectionName(nil))
}

func TestCatalog_EmptyBeforeLoad(t *testing.T) {
	c := New(NewFSSource(testFS()))

	assert.Empty(t, c.Products())
	_, ok := c.ProductBySlug("maki-a")
	assert.False(t, ok)
}

func TestCatalog_FailedFileStaysEmpty(t *testing.T) {
	fsys := testFS()
	delete(fsys, "data/categories.json")
	fsys["data/collections.json"] = &fstest.MapFile{Data: []byte("{cassé")}

	c := New(NewFSSource(fsys))
	err := c.Load(context.Background())

	require.Error(t, err)
	assert.Len(t, c.Products(), 2)
	assert.Empty(t, c.Categories())
	assert.Empty(t, c.Collections())
}

func TestCatalog_ViewsAreCopies(t *testing.T) {
	c := New(NewFSSource(testFS()))
	require.NoError(t, c.Load(context.Background()))

	products := c.Products()
	products[0].Name = "modifié"

	p, _ := c.ProductByReference("A")
	assert.Equal(t, "Maki", p.Name)
}

func TestProductSlug(t *testing.T) {
	tests := []struct {
		name    string
		product models.Product
		want    string
	}{
		{name: "from url", product: models.Product{Reference: "R", URL: "/fr/livraison/umami/maki-shiitake-4037"}, want: "maki-shiitake-4037"},
		{name: "no url", product: models.Product{Reference: "R"}, want: "R"},
		{name: "trailing slash", product: models.Product{Reference: "R", URL: "/fr/livraison/"}, want: "R"},
		{name: "bare slug", product: models.Product{Reference: "R", URL: "slug"}, want: "slug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProductSlug(tt.product))
		})
	}
}

func TestCatalog_ProductBySlug(t *testing.T) {
	c := New(NewFSSource(testFS()))
	require.NoError(t, c.Load(context.Background()))

	p, ok := c.ProductBySlug("maki-a")
	require.True(t, ok)
	assert.Equal(t, "A", p.Reference)

	p, ok = c.ProductBySlug("B")
	require.True(t, ok)
	assert.Equal(t, "Sushi", p.Name)
}

// gatedSource bloque chaque Fetch jusqu'à la fermeture de release.
type gatedSource struct {
	inner   Source
	release chan struct{}
}

func (g *gatedSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.inner.Fetch(ctx, path)
}

func TestCatalog_WaitForProduct(t *testing.T) {
	source := &gatedSource{inner: NewFSSource(testFS()), release: make(chan struct{})}
	c := New(source)
	done := c.Start(context.Background())

	_, ok := c.ProductBySlug("maki-a")
	assert.False(t, ok)

	go func() {
		time.Sleep(30 * time.Millisecond)
		close(source.release)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p, err := c.WaitForProduct(ctx, "maki-a")
	require.NoError(t, err)
	assert.Equal(t, "A", p.Reference)
	assert.NoError(t, <-done)
}

func TestCatalog_WaitForProductDeadline(t *testing.T) {
	c := New(NewFSSource(testFS()))
	require.NoError(t, c.Load(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.WaitForProduct(ctx, "inconnu")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProductNotFound))
}

func TestCatalog_EmbeddedAssets(t *testing.T) {
	c := New(NewFSSource(assets.FS()))

	require.NoError(t, c.Load(context.Background()))

	assert.NotEmpty(t, c.Products())
	p, ok := c.ProductBySlug("maki-shiitake-4037")
	require.True(t, ok)
	assert.Equal(t, "MAK-4037", p.Reference)

	all, ok := c.CategoryByID(models.AllCategoryID)
	require.True(t, ok)
	assert.Equal(t, "Tout", all.Title)
}

func TestFSSource_RejectsInvalidPath(t *testing.T) {
	_, err := NewFSSource(testFS()).Fetch(context.Background(), "/assets/../secret")
	assert.Error(t, err)
}

func TestMinioSource_ObjectName(t *testing.T) {
	assert.Equal(t, "data/produits.json", NewMinioSource(nil, "b", "").ObjectName(ProductsPath))
	assert.Equal(t, "demo/data/produits.json", NewMinioSource(nil, "b", "demo").ObjectName(ProductsPath))

	_, err := NewMinioSource(nil, "b", "").Fetch(context.Background(), ProductsPath)
	assert.Error(t, err)
}
