package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
	"storefront/internal/filter"
)

// MaxProductWait borne le paramètre ?wait= de GET /api/catalog/products/:slug.
const MaxProductWait = 10 * time.Second

// 🟢 GET /api/catalog/products
func (h *Handler) ListProducts(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	products := filter.Apply(h.Catalog.Products(), criteria)
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
		"criteria": criteriaView(criteria),
	})
}

// criteriaView renvoie les critères appliqués. Une borne max infinie n'est
// pas représentable en JSON : elle est renvoyée à null.
func criteriaView(criteria filter.Criteria) gin.H {
	var maxPrice *float64
	if !math.IsInf(criteria.MaxPrice, 1) {
		maxPrice = &criteria.MaxPrice
	}
	return gin.H{
		"category_id":   criteria.CategoryID,
		"pieces":        criteria.Pieces,
		"collection_id": criteria.CollectionID,
		"min_price":     criteria.MinPrice,
		"max_price":     maxPrice,
		"use_lot_price": criteria.UseLotPrice,
		"ingredients":   criteria.Ingredients,
		"allergens":     criteria.Allergens,
	}
}

// 🟢 GET /api/catalog/products/:slug
func (h *Handler) GetProduct(c *gin.Context) {
	slug := c.Param("slug")

	product, ok := h.Catalog.ProductBySlug(slug)
	if !ok && c.Query("wait") != "" {
		wait, err := time.ParseDuration(c.Query("wait"))
		if err != nil || wait <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre wait invalide"})
			return
		}
		if wait > MaxProductWait {
			wait = MaxProductWait
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), wait)
		defer cancel()
		product, err = h.Catalog.WaitForProduct(ctx, slug)
		ok = err == nil
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable", "slug": slug})
		return
	}

	imageURL, err := h.Images.URL(c.Request.Context(), product.Image)
	if err != nil {
		log.Printf("⚠️ Image de %s non signée: %v", product.Reference, err)
		imageURL = product.Image
	}

	c.JSON(http.StatusOK, gin.H{
		"product":       product,
		"image_url":     imageURL,
		"slug":          catalog.ProductSlug(product),
		"category":      h.Catalog.CategoryName(product.CategoryID),
		"collection":    h.Catalog.CollectionName(product.CollectionID),
		"cart_quantity": h.Cart.Quantity(product.Reference),
	})
}

// 🟢 GET /api/catalog/facets
func (h *Handler) GetFacets(c *gin.Context) {
	c.JSON(http.StatusOK, filter.ComputeFacets(h.Catalog.Products()))
}

// 🟢 GET /api/catalog/categories
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Categories())
}

// 🟢 GET /api/catalog/collections
func (h *Handler) ListCollections(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Collections())
}

// parseCriteria lit les filtres de la requête ; les paramètres absents
// gardent leur valeur par défaut.
func parseCriteria(c *gin.Context) (filter.Criteria, error) {
	criteria := filter.DefaultCriteria()

	var err error
	if criteria.CategoryID, err = optionalInt(c, "category"); err != nil {
		return criteria, err
	}
	if criteria.Pieces, err = optionalInt(c, "pieces"); err != nil {
		return criteria, err
	}
	if criteria.CollectionID, err = optionalInt(c, "collection"); err != nil {
		return criteria, err
	}
	if v := c.Query("min_price"); v != "" {
		criteria.MinPrice, err = strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(criteria.MinPrice) || math.IsInf(criteria.MinPrice, 0) {
			return criteria, fmt.Errorf("min_price invalide: %q", v)
		}
	}
	if v := c.Query("max_price"); v != "" {
		// +Inf est accepté : c'est la borne ouverte [min, ∞]
		criteria.MaxPrice, err = strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(criteria.MaxPrice) || math.IsInf(criteria.MaxPrice, -1) {
			return criteria, fmt.Errorf("max_price invalide: %q", v)
		}
	}
	if criteria.MinPrice > criteria.MaxPrice {
		return criteria, fmt.Errorf("min_price (%g) ne peut pas dépasser max_price (%g)", criteria.MinPrice, criteria.MaxPrice)
	}

	switch c.DefaultQuery("price_basis", "lot") {
	case "lot":
		criteria.UseLotPrice = true
	case "unit":
		criteria.UseLotPrice = false
	default:
		return criteria, errors.New("price_basis doit valoir \"lot\" ou \"unit\"")
	}

	criteria.SetIngredients(listParam(c, "ingredients"))
	criteria.SetAllergens(listParam(c, "allergens"))
	return criteria, nil
}

func optionalInt(c *gin.Context, key string) (*int, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%s invalide: %q", key, v)
	}
	return &n, nil
}

// listParam accepte ?k=a&k=b comme ?k=a,b
func listParam(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
