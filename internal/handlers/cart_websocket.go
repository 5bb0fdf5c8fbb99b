package handlers

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"storefront/internal/models"
)

const (
	wsPingInterval = 30 * time.Second
	wsWriteTimeout = 10 * time.Second
)

type cartEvent struct {
	Type    string              `json:"type"`
	Message string              `json:"message,omitempty"`
	Cart    *models.CartSummary `json:"cart,omitempty"`
}

// CartWebSocket gère la synchronisation temps réel du panier.
// 🟢 GET /api/cart/ws
func (h *Handler) CartWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	// Seul le dernier résumé compte : un client lent ne reçoit pas les états intermédiaires
	updates := make(chan models.CartSummary, 1)
	unsubscribe := h.Cart.Subscribe(func(s models.CartSummary) {
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- s:
		default:
		}
	})
	defer unsubscribe()

	// Lecture en tâche de fond pour détecter la fermeture côté client
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := writeEvent(conn, cartEvent{Type: "connected", Message: "Synchronisation panier activée"}); err != nil {
		return
	}
	initial := h.Cart.Summary()
	if err := writeEvent(conn, cartEvent{Type: "cart_updated", Cart: &initial}); err != nil {
		return
	}

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case summary := <-updates:
			if err := writeEvent(conn, cartEvent{Type: "cart_updated", Cart: &summary}); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-ticker.C:
			// Ping pour garder la connexion active
			deadline := time.Now().Add(wsWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}

func writeEvent(conn *websocket.Conn, event cartEvent) error {
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(event)
}
