package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Authorizer lit les droits du rôle courant.
type Authorizer interface {
	Can(permission string) bool
}

// RequirePermission vérifie que le rôle courant possède le droit demandé
// (models.PERM_NAV, PERM_ADMIN, ...). À placer après RequireSession.
func RequirePermission(auth Authorizer, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.Can(permission) {
			log.Printf("🚫 Permission refusée: %s sur %s", permission, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":               "Permission insuffisante",
				"required_permission": permission,
			})
			return
		}
		c.Next()
	}
}
