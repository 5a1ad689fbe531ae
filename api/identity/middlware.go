package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/gravity-maze/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextUserClaims is the key used to store the remote controller's claims in the Gin context.
	ContextUserClaims = "userClaims"

	bearerScheme = "bearer"
)

// Authoriz only lets requests through that carry a valid bearer token.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, found := strings.Cut(c.GetHeader("Authorization"), " ")
		if !found || strings.ToLower(scheme) != bearerScheme || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
			return
		}

		claims, err := ts.Decode(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(ContextUserClaims, claims)
		c.Next()
	}
}
