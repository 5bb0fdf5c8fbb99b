package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/models"
)

// 🟢 POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var form auth.LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, models.AuthResponse{Message: auth.MsgMissingFields})
		return
	}
	if msg := form.Validate(); msg != "" {
		c.JSON(http.StatusBadRequest, models.AuthResponse{Message: msg})
		return
	}

	res := h.Auth.Login(form.Email, form.Password)
	if !res.Success {
		c.JSON(http.StatusUnauthorized, res)
		return
	}
	log.Printf("✅ Connexion de %s", form.Email)
	c.JSON(http.StatusOK, res)
}

// 🟢 POST /api/auth/register
// La création de compte ne connecte pas l'utilisateur.
func (h *Handler) Register(c *gin.Context) {
	var form auth.RegistrationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, models.AuthResponse{Message: auth.MsgMissingFields})
		return
	}
	if msg := form.Validate(); msg != "" {
		c.JSON(http.StatusBadRequest, models.AuthResponse{Message: msg})
		return
	}

	res := h.Auth.Register(form.Email, form.Password, form.FirstName, form.LastName)
	if !res.Success {
		c.JSON(http.StatusConflict, res)
		return
	}
	log.Printf("✅ Compte créé pour %s", form.Email)
	c.JSON(http.StatusCreated, res)
}

// 🟢 POST /api/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	h.Auth.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "Déconnexion réussie"})
}

// 🟢 GET /api/auth/me (protégée par RequireSession)
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user":          h.Auth.CurrentUser(),
		"role":          h.Auth.CurrentRole(),
		"discount_rate": h.Cart.DiscountRate(),
	})
}

// 🟢 GET /api/auth/users (droit admin)
func (h *Handler) ListUsers(c *gin.Context) {
	users := h.Auth.Users()
	for i := range users {
		users[i].Password = ""
	}
	c.JSON(http.StatusOK, users)
}
