package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"

	"storefront/internal/models"
)

// Fichiers de données chargés au démarrage
const (
	ProductsPath    = "/assets/data/produits.json"
	CategoriesPath  = "/assets/data/categories.json"
	CollectionsPath = "/assets/data/collections.json"
)

var ErrProductNotFound = errors.New("produit introuvable")

// Catalog garde les produits, catégories et collections chargés depuis une
// Source. Les collections restent vides tant que le chargement n'a pas abouti.
type Catalog struct {
	source Source

	mu          sync.RWMutex
	products    []models.Product
	categories  []models.Category
	collections []models.Collection
}

func New(source Source) *Catalog {
	return &Catalog{source: source}
}

// Load récupère les trois fichiers en parallèle, une seule fois chacun.
// Un échec laisse la collection concernée vide ; les erreurs sont retournées
// ensemble pour information.
func (c *Catalog) Load(ctx context.Context) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		products, err := fetchJSON[models.Product](ctx, c.source, ProductsPath)
		if err != nil {
			record(err)
			return
		}
		c.mu.Lock()
		c.products = products
		c.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		categories, err := fetchJSON[models.Category](ctx, c.source, CategoriesPath)
		if err != nil {
			record(err)
			return
		}
		c.mu.Lock()
		c.categories = categories
		c.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		collections, err := fetchJSON[models.Collection](ctx, c.source, CollectionsPath)
		if err != nil {
			record(err)
			return
		}
		c.mu.Lock()
		c.collections = collections
		c.mu.Unlock()
	}()
	wg.Wait()

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	c.mu.RLock()
	log.Printf("✅ Catalogue chargé : %d produits, %d catégories, %d collections",
		len(c.products), len(c.categories), len(c.collections))
	c.mu.RUnlock()
	return nil
}

// Start lance Load en arrière-plan ; les lectures sont alimentées au fil de l'eau.
func (c *Catalog) Start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- c.Load(ctx)
		close(done)
	}()
	return done
}

func fetchJSON[T any](ctx context.Context, source Source, path string) ([]T, error) {
	raw, err := source.Fetch(ctx, path)
	if err != nil {
		log.Printf("❌ Chargement de %s impossible: %v", path, err)
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("❌ Données %s invalides: %v", path, err)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

func (c *Catalog) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Product(nil), c.products...)
}

func (c *Catalog) Categories() []models.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Category(nil), c.categories...)
}

func (c *Catalog) Collections() []models.Collection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Collection(nil), c.collections...)
}

func (c *Catalog) ProductByReference(reference string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.Reference == reference {
			return p, true
		}
	}
	return models.Product{}, false
}

// ProductSlug extrait le slug du champ url.
// Ex: /fr/livraison/umami/maki-shiitake-4037 -> maki-shiitake-4037
func ProductSlug(p models.Product) string {
	if p.URL == "" {
		return p.Reference
	}
	parts := strings.Split(p.URL, "/")
	if last := parts[len(parts)-1]; last != "" {
		return last
	}
	return p.Reference
}

func (c *Catalog) ProductBySlug(slug string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if ProductSlug(p) == slug {
			return p, true
		}
	}
	return models.Product{}, false
}

// WaitForProduct interroge le catalogue avec un délai croissant jusqu'à
// trouver le produit ou jusqu'à l'échéance du contexte.
func (c *Catalog) WaitForProduct(ctx context.Context, slug string) (models.Product, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = time.Second

	operation := func() (models.Product, error) {
		if p, ok := c.ProductBySlug(slug); ok {
			return p, nil
		}
		return models.Product{}, ErrProductNotFound
	}

	p, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxElapsedTime(0),
	)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %s (%v)", ErrProductNotFound, slug, err)
	}
	return p, nil
}

func (c *Catalog) CategoryByID(id int) (models.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return models.Category{}, false
}

func (c *Catalog) CategoryName(id int) string {
	cat, _ := c.CategoryByID(id)
	return cat.Title
}

func (c *Catalog) CollectionName(id *int) string {
	if id == nil {
		return ""
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, col := range c.collections {
		if col.ID == *id {
			return col.Title
		}
	}
	return ""
}
