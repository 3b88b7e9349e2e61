package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/nekogravitycat/room-booking-backend/internal/db"
)

type Repository interface {
	// Create inserts the booking and marks its room unavailable in one
	// transaction. Returns ErrRoomUnavailable when the room is already taken.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// UpdateStay overwrites dates, total and status, provided the stored
	// status still equals from.
	UpdateStay(ctx context.Context, b *Booking, from Status) error

	// Cancel sets the status to cancelled, provided the stored status still
	// equals b.Status, and optionally makes the room available again.
	Cancel(ctx context.Context, b *Booking, releaseRoom bool) error

	// Confirm moves a pending booking to confirmed and reserves its room.
	Confirm(ctx context.Context, b *Booking) error

	// Delete removes the booking. Missing ids are not an error.
	Delete(ctx context.Context, id string) error
}

var bookingColumns = []string{
	"b.id", "b.room_id", "r.name", "b.user_email", "b.check_in", "b.check_out",
	"b.total_price", "b.status", "b.created_at", "b.updated_at",
}

type pgxRepository struct {
	pool db.Pool
}

func NewPgxRepository(pool db.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.RoomID, &b.RoomName, &b.UserEmail, &b.CheckIn, &b.CheckOut,
		&b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &b, nil
}

// reserveRoom flips a room from available to unavailable. It fails with
// ErrRoomUnavailable if another booking got there first.
func reserveRoom(ctx context.Context, tx pgx.Tx, roomID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.rooms").
		Set("available", false).
		Where(squirrel.Eq{"id": roomID, "available": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build reserve room query failed: %w", err)
	}

	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("reserve room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrRoomUnavailable
	}
	return nil
}

func releaseRoom(ctx context.Context, tx pgx.Tx, roomID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.rooms").
		Set("available", true).
		Where(squirrel.Eq{"id": roomID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build release room query failed: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("release room failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := reserveRoom(ctx, tx, b.RoomID); err != nil {
			return err
		}

		psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
		query, args, err := psql.Insert("public.bookings").
			Columns("room_id", "user_email", "check_in", "check_out", "total_price", "status").
			Values(b.RoomID, b.UserEmail, b.CheckIn, b.CheckOut, b.TotalPrice, b.Status).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build create booking query failed: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return fmt.Errorf("create booking failed: %w", err)
		}
		return nil
	})
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings b").
		Join("public.rooms r ON b.room_id = r.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(bookingColumns, "count(*) OVER() as total_count")...).
		From("public.bookings b").
		Join("public.rooms r ON b.room_id = r.id")

	if filter.UserEmail != "" {
		query = query.Where(squirrel.Eq{"b.user_email": filter.UserEmail})
	}
	if filter.RoomID != "" {
		query = query.Where(squirrel.Eq{"b.room_id": filter.RoomID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}

	// Sorting
	orderBy := "b.created_at"
	if filter.SortBy != "" {
		orderBy = "b." + filter.SortBy
	}
	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStay(ctx context.Context, b *Booking, from Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("check_in", b.CheckIn).
		Set("check_out", b.CheckOut).
		Set("total_price", b.TotalPrice).
		Set("status", b.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID, "status": from}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrStale
		}
		return fmt.Errorf("update booking failed: %w", err)
	}
	return nil
}

// setStatus moves a booking from one status to another inside tx.
func setStatus(ctx context.Context, tx pgx.Tx, b *Booking, to Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID, "status": b.Status}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build set booking status query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrStale
		}
		return fmt.Errorf("set booking status failed: %w", err)
	}
	b.Status = to
	return nil
}

func (r *pgxRepository) Cancel(ctx context.Context, b *Booking, release bool) error {
	from := b.Status
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := setStatus(ctx, tx, b, StatusCancelled); err != nil {
			return err
		}
		if release {
			return releaseRoom(ctx, tx, b.RoomID)
		}
		return nil
	})
	if err != nil {
		b.Status = from
	}
	return err
}

func (r *pgxRepository) Confirm(ctx context.Context, b *Booking) error {
	from := b.Status
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := reserveRoom(ctx, tx, b.RoomID); err != nil {
			return err
		}
		return setStatus(ctx, tx, b, StatusConfirmed)
	})
	if err != nil {
		b.Status = from
	}
	return err
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	return nil
}
