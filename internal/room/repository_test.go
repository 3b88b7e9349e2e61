package room

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestPgxRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewPgxRepository(mock)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO public.rooms`).
		WithArgs("Sea View", "Dublin", CategoryPremium, pgxmock.AnyArg(), pgxmock.AnyArg(), true).
		WillReturnRows(mock.NewRows([]string{"id", "available", "created_at"}).
			AddRow("11111111-1111-1111-1111-111111111111", true, now))

	r := &Room{Name: "Sea View", Location: "Dublin", Category: CategoryPremium, NightlyRate: decimal.NewFromInt(100)}
	require.NoError(t, repo.Create(context.Background(), r))
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", r.ID)
	assert.True(t, r.Available)
	assert.Equal(t, now, r.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_GetByID(t *testing.T) {
	mock := newMock(t)
	repo := NewPgxRepository(mock)

	id := "11111111-1111-1111-1111-111111111111"
	now := time.Now()
	desc := "quiet"
	mock.ExpectQuery(`SELECT id, name, location, category, nightly_rate`).
		WithArgs(id).
		WillReturnRows(mock.NewRows(roomColumns).
			AddRow(id, "Sea View", "Dublin", CategoryPremium, "120.50", &desc,
				(*string)(nil), (*string)(nil), false, now))

	r, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Sea View", r.Name)
	assert.Equal(t, CategoryPremium, r.Category)
	assert.Equal(t, "120.50", r.NightlyRate.StringFixed(2))
	assert.False(t, r.Available)
	assert.Equal(t, "booked", r.BookingStatus())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewPgxRepository(mock)

	mock.ExpectQuery(`SELECT .* FROM public.rooms`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_List(t *testing.T) {
	mock := newMock(t)
	repo := NewPgxRepository(mock)

	now := time.Now()
	available := true
	mock.ExpectQuery(`SELECT .* count\(\*\) OVER\(\) as total_count FROM public.rooms WHERE category = \$1 AND available = \$2 ORDER BY created_at DESC LIMIT 10 OFFSET 10`).
		WithArgs("studio", true).
		WillReturnRows(mock.NewRows(append(roomColumns, "total_count")).
			AddRow("a", "Loft", "Cork", CategoryStudio, "80.00", (*string)(nil), (*string)(nil), (*string)(nil), true, now, 11))

	rooms, total, err := repo.List(context.Background(), Filter{
		Category:  "studio",
		Available: &available,
		Page:      2,
		PageSize:  10,
		SortBy:    "created_at",
		SortOrder: "DESC",
	})
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Loft", rooms[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_UpdateAndDelete_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewPgxRepository(mock)

	mock.ExpectExec(`UPDATE public.rooms SET`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), false, "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(`DELETE FROM public.rooms`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Update(context.Background(), &Room{ID: "missing", Category: CategoryClassic})
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_Update_WritesAvailability(t *testing.T) {
	mock := newMock(t)
	repo := NewPgxRepository(mock)

	mock.ExpectExec(`UPDATE public.rooms SET name = \$1, location = \$2, category = \$3, nightly_rate = \$4, description = \$5, available = \$6 WHERE id = \$7`).
		WithArgs("Loft", "Cork", CategoryStudio, pgxmock.AnyArg(), pgxmock.AnyArg(), true, "r1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Update(context.Background(), &Room{
		ID: "r1", Name: "Loft", Location: "Cork", Category: CategoryStudio,
		NightlyRate: decimal.NewFromInt(80), Available: true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxRepository_SetImage(t *testing.T) {
	mock := newMock(t)
	repo := NewPgxRepository(mock)

	key, url := "rooms/a/b.jpg", "/media/rooms/a/b.jpg"
	mock.ExpectExec(`UPDATE public.rooms SET image_key = \$1, image_url = \$2 WHERE id = \$3`).
		WithArgs(&key, &url, "a").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.SetImage(context.Background(), "a", &key, &url))
	assert.NoError(t, mock.ExpectationsWereMet())
}
