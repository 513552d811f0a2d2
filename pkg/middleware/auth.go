package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDKey is the gin context key the resolved owner identity is stored under.
const UserIDKey = "userId"

// Verifier resolves a raw bearer credential into an opaque owner identity.
// The middleware depends only on this seam so tests (and alternative
// credential backends) can swap the implementation.
type Verifier interface {
	Verify(ctx context.Context, raw string) (string, error)
}

// HMACVerifier validates HS256-signed credentials issued by the
// authentication collaborator and extracts the subject claim.
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

func (v *HMACVerifier) Verify(ctx context.Context, raw string) (string, error) {
	if len(v.secret) == 0 {
		return "", errors.New("credential secret not configured")
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", fmt.Errorf("invalid credential: %w", err)
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("credential has no subject")
	}
	return sub, nil
}

// Auth returns a Gin middleware that verifies Bearer credentials with the
// provided verifier and stores the owner id in the request context. Any
// failure is a uniform 401; callers never learn why.
func Auth(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}
		userID, err := ver.Verify(c.Request.Context(), strings.TrimPrefix(auth, "Bearer "))
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}
