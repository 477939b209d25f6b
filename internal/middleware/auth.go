package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/therealutkarshpriyadarshi/vidtube/pkg/models"
)

const (
	AuthContextKey = "current_user"
)

// UserResolver maps the auth provider's subject id to a provisioned
// account. An error means the token was valid but the account does not
// exist yet, which is treated as unauthenticated.
type UserResolver interface {
	GetUserByExternalID(ctx context.Context, externalID string) (*models.User, error)
}

// Claims represents JWT claims issued by the auth provider. The
// subject carries the external user id.
type Claims struct {
	jwt.RegisteredClaims
}

// Auth validates bearer tokens and resolves the current user.
type Auth struct {
	secret   string
	resolver UserResolver
}

func NewAuth(secret string, resolver UserResolver) *Auth {
	return &Auth{secret: secret, resolver: resolver}
}

func (a *Auth) parseToken(tokenString string) (string, bool) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(a.secret), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return "", false
	}

	return claims.Subject, true
}

func (a *Auth) resolve(c *gin.Context, tokenString string) (*models.User, bool) {
	externalID, ok := a.parseToken(tokenString)
	if !ok {
		return nil, false
	}

	user, err := a.resolver.GetUserByExternalID(c.Request.Context(), externalID)
	if err != nil {
		return nil, false
	}

	return user, true
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

// RequireAuth rejects requests without a valid token bound to a
// provisioned account.
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		user, ok := a.resolve(c, tokenString)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(AuthContextKey, user)
		c.Next()
	}
}

// OptionalAuth resolves the current user when a valid token is present
// and lets the request through anonymously otherwise. Public feeds use
// it so signed-in viewers get their reaction and subscription state.
func (a *Auth) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if user, ok := a.resolve(c, tokenString); ok {
				c.Set(AuthContextKey, user)
			}
		}
		c.Next()
	}
}

// GenerateToken issues a token for an external user id. Used by tests
// and local development; production tokens come from the auth provider.
func GenerateToken(secret, externalID string, expiresIn time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   externalID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GetUser retrieves the resolved user from the context.
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(AuthContextKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	return user, ok
}

// GetUserID returns the resolved user's id, or nil for anonymous
// requests. Feed queries take it directly as the viewer id.
func GetUserID(c *gin.Context) *uuid.UUID {
	user, ok := GetUser(c)
	if !ok {
		return nil
	}
	return &user.ID
}
