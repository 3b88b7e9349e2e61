package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userID    = "5c6d7e8f-1a2b-4c3d-9e4f-5a6b7c8d9e0f"
	userEmail = "guest@example.com"
	password  = "correct-horse"
)

type fakeService struct {
	users      map[string]*user.User
	lastUpdate user.UpdateRequest
}

func newFakeService() *fakeService {
	return &fakeService{users: map[string]*user.User{
		userID: {ID: userID, Email: userEmail, IsActive: true},
	}}
}

func (f *fakeService) Register(ctx context.Context, email, pw, displayName string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return nil, user.ErrEmailAlreadyUsed
		}
	}
	u := &user.User{ID: "new", Email: email, DisplayName: &displayName, IsActive: true}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeService) Login(ctx context.Context, email, pw string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email != email || pw != password {
			continue
		}
		if !u.IsActive {
			return nil, user.ErrInactiveUser
		}
		return u, nil
	}
	return nil, user.ErrInvalidCredentials
}

func (f *fakeService) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeService) List(ctx context.Context, filter user.Filter) ([]*user.User, int, error) {
	var out []*user.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (f *fakeService) Update(ctx context.Context, id string, req user.UpdateRequest) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	f.lastUpdate = req
	if req.IsStaff != nil {
		u.IsStaff = *req.IsStaff
	}
	return u, nil
}

func newRouter(svc user.Service, jwtManager *auth.JWTManager, staff bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	staffGate := func(c *gin.Context) {
		if !staff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
	RegisterRoutes(r.Group("/v1"), NewHandler(svc, jwtManager), auth.AuthRequired(jwtManager), staffGate)
	return r
}

func do(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	r := newRouter(newFakeService(), auth.NewJWTManager("secret", time.Hour), false)

	w := do(r, http.MethodPost, "/v1/auth/register", "", gin.H{
		"email":        "new@example.com",
		"password":     "long-enough",
		"display_name": "New Guest",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "new@example.com", resp.User.Email)
	assert.False(t, resp.User.IsStaff)

	w = do(r, http.MethodPost, "/v1/auth/register", "", gin.H{"email": userEmail, "password": "long-enough"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/v1/auth/register", "", gin.H{"email": "short@example.com", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginThenMe(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	r := newRouter(newFakeService(), jwtManager, false)

	w := do(r, http.MethodPost, "/v1/auth/login", "", gin.H{"email": userEmail, "password": password})
	require.Equal(t, http.StatusOK, w.Code)

	var login LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.AccessToken)

	claims, err := jwtManager.ParseAndValidate(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userEmail, claims.Email)

	w = do(r, http.MethodGet, "/v1/me", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, userID, me.User.ID)

	w = do(r, http.MethodGet, "/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_DoesNotRevealReason(t *testing.T) {
	svc := newFakeService()
	r := newRouter(svc, auth.NewJWTManager("secret", time.Hour), false)

	w := do(r, http.MethodPost, "/v1/auth/login", "", gin.H{"email": userEmail, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	wrongPassword := w.Body.String()

	svc.users[userID].IsActive = false
	w = do(r, http.MethodPost, "/v1/auth/login", "", gin.H{"email": userEmail, "password": password})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, wrongPassword, w.Body.String())
}

func TestUsers_StaffOnly(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	token, err := jwtManager.GenerateAccessToken(userID, userEmail)
	require.NoError(t, err)

	svc := newFakeService()
	w := do(newRouter(svc, jwtManager, false), http.MethodPatch, "/v1/users/"+userID, token, gin.H{"is_staff": true})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, svc.users[userID].IsStaff)

	r := newRouter(svc, jwtManager, true)
	w = do(r, http.MethodPatch, "/v1/users/"+userID, token, gin.H{"is_staff": true})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastUpdate.IsStaff)
	assert.Nil(t, svc.lastUpdate.IsActive)

	var resp MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.User.IsStaff)

	w = do(r, http.MethodGet, "/v1/users?page_size=10", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/v1/users/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
