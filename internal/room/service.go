package room

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/storage"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	maxImageWidth  = 1000
	maxImageHeight = 1000
)

// CatalogSyncer mirrors room records to an external read-side catalog.
type CatalogSyncer interface {
	PutRoom(ctx context.Context, room *Room) error
	DeleteRoom(ctx context.Context, id string) error
}

type CreateRequest struct {
	Name        string
	Location    string
	Category    Category
	NightlyRate decimal.Decimal
	Description *string
}

type UpdateRequest struct {
	Name        *string
	Location    *string
	Category    *Category
	NightlyRate *decimal.Decimal
	Description *string

	// Available lets staff put a room back on sale, e.g. after its booking
	// was deleted without being cancelled.
	Available *bool
}

// ImageUpload is a raw uploaded image before resizing.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Room, error)
	Delete(ctx context.Context, id string) error

	SetImage(ctx context.Context, id string, upload ImageUpload) (*Room, error)
	RemoveImage(ctx context.Context, id string) (*Room, error)

	// SyncCatalog pushes the current state of a room to the catalog.
	// Failures are logged and swallowed.
	SyncCatalog(ctx context.Context, id string)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
	catalog CatalogSyncer
	logger  *zap.Logger
}

// NewService builds the room service. catalog may be nil to disable mirroring.
func NewService(repo Repository, store storage.Storage, catalog CatalogSyncer, logger *zap.Logger) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
		catalog: catalog,
		logger:  logger.Named("room"),
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(req.Location) == "" {
		return nil, ErrEmptyLocation
	}
	if !req.Category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if !ValidRate(req.NightlyRate) {
		return nil, ErrInvalidRate
	}

	room := &Room{
		Name:        strings.TrimSpace(req.Name),
		Location:    strings.TrimSpace(req.Location),
		Category:    req.Category,
		NightlyRate: req.NightlyRate,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}

	s.putCatalog(ctx, room)
	return room, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Room, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		room.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		if strings.TrimSpace(*req.Location) == "" {
			return nil, ErrEmptyLocation
		}
		room.Location = strings.TrimSpace(*req.Location)
	}
	if req.Category != nil {
		if !req.Category.IsValid() {
			return nil, ErrInvalidCategory
		}
		room.Category = *req.Category
	}
	if req.NightlyRate != nil {
		if !ValidRate(*req.NightlyRate) {
			return nil, ErrInvalidRate
		}
		room.NightlyRate = *req.NightlyRate
	}
	if req.Description != nil {
		room.Description = req.Description
	}
	if req.Available != nil {
		room.Available = *req.Available
	}

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, err
	}

	s.putCatalog(ctx, room)
	return room, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if room.ImageKey != nil {
		s.deleteObject(ctx, *room.ImageKey)
	}

	if s.catalog != nil {
		if err := s.catalog.DeleteRoom(ctx, id); err != nil {
			s.logger.Warn("catalog delete failed", zap.String("room_id", id), zap.Error(err))
		}
	}
	return nil
}

func (s *service) SetImage(ctx context.Context, id string, upload ImageUpload) (*Room, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := s.imgProc.FitJPEG(upload.Content, maxImageWidth, maxImageHeight)
	if err != nil {
		return nil, apperror.Wrap(err, ErrInvalidImage.Code, ErrInvalidImage.Message)
	}

	key := fmt.Sprintf("rooms/%s/%s.jpg", room.ID, uuid.New().String())
	if err := s.storage.Save(ctx, key, bytes.NewReader(content), "image/jpeg"); err != nil {
		return nil, apperror.Unavailable(err, "object storage")
	}

	url := s.storage.URL(key)
	if err := s.repo.SetImage(ctx, room.ID, &key, &url); err != nil {
		s.deleteObject(ctx, key)
		return nil, err
	}

	if room.ImageKey != nil {
		s.deleteObject(ctx, *room.ImageKey)
	}
	room.ImageKey = &key
	room.ImageURL = &url

	s.logger.Info("room image stored",
		zap.String("room_id", room.ID),
		zap.String("key", key),
		zap.String("filename", upload.Filename),
		zap.Int("bytes", len(content)),
	)

	s.putCatalog(ctx, room)
	return room, nil
}

func (s *service) RemoveImage(ctx context.Context, id string) (*Room, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room.ImageKey == nil {
		return nil, ErrNoImage
	}

	if err := s.repo.SetImage(ctx, room.ID, nil, nil); err != nil {
		return nil, err
	}

	s.deleteObject(ctx, *room.ImageKey)
	room.ImageKey = nil
	room.ImageURL = nil

	s.putCatalog(ctx, room)
	return room, nil
}

func (s *service) SyncCatalog(ctx context.Context, id string) {
	if s.catalog == nil {
		return
	}
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Warn("catalog sync skipped", zap.String("room_id", id), zap.Error(err))
		return
	}
	s.putCatalog(ctx, room)
}

func (s *service) putCatalog(ctx context.Context, room *Room) {
	if s.catalog == nil {
		return
	}
	if err := s.catalog.PutRoom(ctx, room); err != nil {
		s.logger.Warn("catalog sync failed", zap.String("room_id", room.ID), zap.Error(err))
	}
}

// deleteObject removes a stored image. Orphaned objects are tolerated.
func (s *service) deleteObject(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		s.logger.Warn("delete image object failed", zap.String("key", key), zap.Error(err))
	}
}
