package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/database"
	"github.com/therealutkarshpriyadarshi/vidtube/pkg/models"
)

const testJWTSecret = "test-jwt-secret"

type fakeResolver struct {
	users map[string]*models.User
}

func (f *fakeResolver) GetUserByExternalID(_ context.Context, externalID string) (*models.User, error) {
	if user, ok := f.users[externalID]; ok {
		return user, nil
	}
	return nil, database.ErrNotFound
}

func newTestAuth(users ...*models.User) *Auth {
	resolver := &fakeResolver{users: make(map[string]*models.User)}
	for _, u := range users {
		resolver.users[u.ExternalID] = u
	}
	return NewAuth(testJWTSecret, resolver)
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	user := &models.User{ID: uuid.New(), ExternalID: "ext_1", Name: "Ada"}
	auth := newTestAuth(user)

	validToken, err := GenerateToken(testJWTSecret, "ext_1", time.Hour)
	require.NoError(t, err)
	expiredToken, err := GenerateToken(testJWTSecret, "ext_1", -time.Hour)
	require.NoError(t, err)
	unknownToken, err := GenerateToken(testJWTSecret, "ext_missing", time.Hour)
	require.NoError(t, err)
	foreignToken, err := GenerateToken("other-secret", "ext_1", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "NotBearer", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreignToken, http.StatusUnauthorized},
		{"expired token", "Bearer " + expiredToken, http.StatusUnauthorized},
		{"unprovisioned user", "Bearer " + unknownToken, http.StatusUnauthorized},
		{"valid token", "Bearer " + validToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/test", auth.RequireAuth(), func(c *gin.Context) {
				current, ok := GetUser(c)
				require.True(t, ok)
				assert.Equal(t, user.ID, current.ID)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	user := &models.User{ID: uuid.New(), ExternalID: "ext_1", Name: "Ada"}
	auth := newTestAuth(user)

	router := gin.New()
	router.GET("/feed", auth.OptionalAuth(), func(c *gin.Context) {
		if viewerID := GetUserID(c); viewerID != nil {
			c.JSON(http.StatusOK, gin.H{"viewer": viewerID.String()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"viewer": nil})
	})

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feed", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "null")
	})

	t.Run("signed in", func(t *testing.T) {
		token, err := GenerateToken(testJWTSecret, "ext_1", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/feed", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), user.ID.String())
	})

	t.Run("garbage token stays anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/feed", nil)
		req.Header.Set("Authorization", "Bearer garbage")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "null")
	})
}
