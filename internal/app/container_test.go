package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nekogravitycat/room-booking-backend/internal/config"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewContainer_LocalBackends(t *testing.T) {
	mr := miniredis.RunT(t)
	mediaDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(mediaDir, "rooms"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(mediaDir, "rooms", "a.jpg"), []byte("jpeg"), 0o644))

	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer pool.Close()

	cfg := &config.Config{
		JWTSecret:         "secret",
		JWTAccessTokenTTL: time.Minute,
		BcryptCost:        4,
		StorageBackend:    config.StorageLocal,
		LocalStoragePath:  mediaDir,
		QueueBackend:      config.QueueRedis,
		RedisAddr:         mr.Addr(),
		NotifierBackend:   config.NotifierLog,
		AWS:               config.AWSConfig{SupportQueueName: "support"},
	}

	c, err := NewContainer(context.Background(), cfg, pool, zap.NewNop())
	require.NoError(t, err)
	defer func() { assert.NoError(t, c.Close()) }()

	w := httptest.NewRecorder()
	c.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/rooms/a.jpg", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg", w.Body.String())

	w = httptest.NewRecorder()
	c.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/bookings", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.NoError(t, pool.ExpectationsWereMet())
}
