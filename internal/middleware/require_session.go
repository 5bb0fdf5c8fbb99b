package middleware

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// LoginPath est la page vers laquelle le garde redirige.
const LoginPath = "/login"

// Session est la partie du moteur d'authentification utilisée par les gardes.
type Session interface {
	IsAuthenticated() bool
	Logout()
}

// RequireSession laisse passer les sessions connectées. Sinon la session est
// remise à zéro puis le client est renvoyé vers la page de connexion, avec
// l'URL demandée dans returnUrl.
func RequireSession(session Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.IsAuthenticated() {
			c.Next()
			return
		}

		session.Logout()
		location := LoginLocation(c.Request.URL.RequestURI())
		log.Printf("🔒 Accès refusé à %s, redirection vers %s", c.Request.URL.Path, location)

		if wantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Non authentifié",
				"redirect": location,
			})
			return
		}
		c.Redirect(http.StatusFound, location)
		c.Abort()
	}
}

// LoginLocation construit /login?returnUrl=<returnURL>.
func LoginLocation(returnURL string) string {
	q := url.Values{}
	q.Set("returnUrl", returnURL)
	return LoginPath + "?" + q.Encode()
}

func wantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
