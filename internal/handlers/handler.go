package handlers

import (
	"github.com/gorilla/websocket"

	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/consumption"
	"storefront/internal/middleware"
	"storefront/internal/services"
)

// Handler expose les moteurs du client à l'interface via l'API JSON.
// Il ne contient aucune règle métier : chaque route délègue à un moteur.
type Handler struct {
	Catalog     *catalog.Catalog
	Cart        *cart.Engine
	Auth        *auth.Engine
	Consumption *consumption.Service
	Images      services.ImageURLs

	upgrader websocket.Upgrader
}

func New(cat *catalog.Catalog, c *cart.Engine, a *auth.Engine, cons *consumption.Service, origins []string) *Handler {
	return &Handler{
		Catalog:     cat,
		Cart:        c,
		Auth:        a,
		Consumption: cons,
		Images:      services.StaticImages{},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     middleware.OriginAllowed(origins),
		},
	}
}
