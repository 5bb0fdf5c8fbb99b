package routes

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
)

// RegisterRoutes branche l'API JSON et les fichiers statiques. assets peut
// être nil quand le catalogue est servi ailleurs.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, assets fs.FS) {
	if assets != nil {
		r.StaticFS(catalog.AssetsPrefix, http.FS(assets))
	}

	api := r.Group("/api")

	// Catalogue
	cat := api.Group("/catalog")
	{
		cat.GET("/products", h.ListProducts)
		cat.GET("/products/:slug", h.GetProduct)
		cat.GET("/facets", h.GetFacets)
		cat.GET("/categories", h.ListCategories)
		cat.GET("/collections", h.ListCollections)
	}

	// Panier
	cart := api.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.POST("/add", h.AddToCart)
		cart.GET("/ws", h.CartWebSocket)
		cart.PUT("/:reference", h.UpdateCartItem)
		cart.DELETE("/:reference", h.RemoveFromCart)
		cart.DELETE("", h.ClearCart)
	}

	// Authentification
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", h.Register)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/me", middleware.RequireSession(h.Auth), h.Me)
		authGroup.GET("/users",
			middleware.RequireSession(h.Auth),
			middleware.RequirePermission(h.Auth, models.PERM_ADMIN),
			h.ListUsers,
		)
	}

	// Mode de consommation
	api.GET("/consumption", h.GetConsumption)
	api.PUT("/consumption", h.SetConsumption)
}
