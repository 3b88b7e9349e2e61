package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/user"
	"github.com/stretchr/testify/assert"
)

type fakeUserService struct {
	user.Service
	users   map[string]*user.User
	lookups int
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	f.lookups++
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func newTestRouter(svc *fakeUserService, userID string, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
		}
		c.Next()
	})
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"staff": auth.IsStaff(c)})
	})
	r.GET("/", handlers...)
	return r
}

func serve(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func testUsers() *fakeUserService {
	return &fakeUserService{users: map[string]*user.User{
		"guest":    {ID: "guest", IsActive: true},
		"staff":    {ID: "staff", IsActive: true, IsStaff: true},
		"disabled": {ID: "disabled", IsActive: false, IsStaff: true},
	}}
}

func TestResolveStaff(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		wantCode int
		wantBody string
	}{
		{"guest", "guest", http.StatusOK, `{"staff":false}`},
		{"staff", "staff", http.StatusOK, `{"staff":true}`},
		{"inactive", "disabled", http.StatusUnauthorized, ""},
		{"unknown", "ghost", http.StatusUnauthorized, ""},
		{"anonymous", "", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testUsers()
			w := serve(newTestRouter(svc, tt.userID, ResolveStaff(svc)))
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestRequireStaff(t *testing.T) {
	svc := testUsers()
	assert.Equal(t, http.StatusForbidden, serve(newTestRouter(svc, "guest", RequireStaff(svc))).Code)
	assert.Equal(t, http.StatusOK, serve(newTestRouter(svc, "staff", RequireStaff(svc))).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(newTestRouter(svc, "", RequireStaff(svc))).Code)
}

func TestRequireStaff_ReusesResolvedFlag(t *testing.T) {
	svc := testUsers()
	w := serve(newTestRouter(svc, "staff", ResolveStaff(svc), RequireStaff(svc)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.lookups)
}

func TestAllowedOrigins(t *testing.T) {
	prod := allowedOrigins(Config{IsProduction: true, ProdOrigins: "https://a.example.com, https://b.example.com,"})
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, prod)

	assert.Empty(t, allowedOrigins(Config{IsProduction: true}))
	assert.NotEmpty(t, allowedOrigins(Config{}))
}
