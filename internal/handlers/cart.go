package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addToCartInput struct {
	Reference string `json:"reference_produit" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// 🟢 GET /api/cart
func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.Cart.Summary())
}

// 🟢 POST /api/cart/add
func (h *Handler) AddToCart(c *gin.Context) {
	var input addToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La quantité doit être positive"})
		return
	}

	product, ok := h.Catalog.ProductByReference(input.Reference)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable", "reference_produit": input.Reference})
		return
	}

	h.Cart.Add(product, input.Quantity)
	c.JSON(http.StatusOK, h.Cart.Summary())
}

// 🟢 PUT /api/cart/:reference
// Une quantité <= 0 retire la ligne.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var input updateQuantityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	h.Cart.UpdateQuantity(c.Param("reference"), *input.Quantity)
	c.JSON(http.StatusOK, h.Cart.Summary())
}

// 🟢 DELETE /api/cart/:reference
func (h *Handler) RemoveFromCart(c *gin.Context) {
	h.Cart.Remove(c.Param("reference"))
	c.JSON(http.StatusOK, h.Cart.Summary())
}

// 🟢 DELETE /api/cart
func (h *Handler) ClearCart(c *gin.Context) {
	h.Cart.Clear()
	c.JSON(http.StatusOK, h.Cart.Summary())
}
