package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/consumption"
	"storefront/internal/models"
)

// 🟢 GET /api/consumption
func (h *Handler) GetConsumption(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"mode":  h.Consumption.Mode(),
		"label": h.Consumption.Label(),
	})
}

// 🟢 PUT /api/consumption
// {"mode": ""} efface le choix.
func (h *Handler) SetConsumption(c *gin.Context) {
	var input struct {
		Mode *models.ConsumptionMode `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if err := h.Consumption.SetMode(*input.Mode); err != nil {
		if errors.Is(err, consumption.ErrInvalidMode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "mode": *input.Mode})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.GetConsumption(c)
}
