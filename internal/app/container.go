package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/go-redis/redis/v8"
	"github.com/nekogravitycat/room-booking-backend/internal/api"
	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/booking"
	"github.com/nekogravitycat/room-booking-backend/internal/config"
	"github.com/nekogravitycat/room-booking-backend/internal/db"
	"github.com/nekogravitycat/room-booking-backend/internal/notify"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/awsx"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/queue"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/storage"
	"github.com/nekogravitycat/room-booking-backend/internal/pricing"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
	"github.com/nekogravitycat/room-booking-backend/internal/roomcatalog"
	"github.com/nekogravitycat/room-booking-backend/internal/ticket"
	"github.com/nekogravitycat/room-booking-backend/internal/user"
	"go.uber.org/zap"
)

const (
	serviceName       = "room-booking-backend"
	webhookTimeout    = 5 * time.Second
	xrayDaemonAddress = "127.0.0.1:2000"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Handler    http.Handler
	JWTManager *auth.JWTManager

	closers []func() error
}

// NewContainer initializes all modules from the loaded configuration and returns the container.
func NewContainer(ctx context.Context, cfg *config.Config, pool db.Pool, logger *zap.Logger) (*Container, error) {
	c := &Container{}

	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	c.JWTManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	if cfg.EnableTracing {
		if err := awsx.ConfigureTracing(xrayDaemonAddress, "1.0.0"); err != nil {
			logger.Warn("tracing disabled", zap.Error(err))
			cfg.EnableTracing = false
		}
	}

	// AWS clients are only built when a backend needs them.
	var awsCfg *aws.Config
	loadAWS := func() (aws.Config, error) {
		if awsCfg == nil {
			loaded, err := awsx.LoadConfig(ctx, cfg.AWS.Region, cfg.EnableTracing)
			if err != nil {
				return aws.Config{}, err
			}
			awsCfg = &loaded
		}
		return *awsCfg, nil
	}

	store, mediaPath, err := newStorage(cfg, loadAWS)
	if err != nil {
		return nil, err
	}

	var catalog room.CatalogSyncer
	if cfg.CatalogEnabled {
		ac, err := loadAWS()
		if err != nil {
			return nil, err
		}
		catalog = roomcatalog.NewDynamoCatalog(dynamodb.NewFromConfig(ac), cfg.AWS.RoomsTable)
	}

	notifier, err := newNotifier(cfg, loadAWS, logger)
	if err != nil {
		return nil, err
	}

	q, err := c.newQueue(cfg, loadAWS)
	if err != nil {
		return nil, err
	}

	// User Module
	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, passwordHasher, logger)

	// Room Module
	roomRepo := room.NewPgxRepository(pool)
	roomService := room.NewService(roomRepo, store, catalog, logger)

	// Booking Module
	policy := pricing.Policy{TaxRate: cfg.BookingTaxRate, FixedFee: cfg.BookingFixedFee}
	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(bookingRepo, roomService, notifier, policy, logger)

	// Ticket Module
	ticketService := ticket.NewService(q, cfg.AWS.SupportQueueName, logger)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		MediaPath:      mediaPath,
		UserService:    userService,
		RoomService:    roomService,
		BookingService: bookingService,
		TicketService:  ticketService,
		JWTManager:     c.JWTManager,
	})

	c.Handler = router
	if cfg.EnableTracing {
		c.Handler = xray.Handler(xray.NewFixedSegmentNamer(serviceName), router)
	}

	logger.Info("container ready",
		zap.String("storage", cfg.StorageBackend),
		zap.String("queue", cfg.QueueBackend),
		zap.String("notifier", cfg.NotifierBackend),
		zap.Bool("catalog", cfg.CatalogEnabled),
		zap.Bool("tracing", cfg.EnableTracing),
	)

	return c, nil
}

// Close releases the connections opened by the container.
func (c *Container) Close() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func newStorage(cfg *config.Config, loadAWS func() (aws.Config, error)) (storage.Storage, string, error) {
	switch cfg.StorageBackend {
	case config.StorageLocal:
		local, err := storage.NewLocalStorage(cfg.LocalStoragePath, "/media")
		if err != nil {
			return nil, "", err
		}
		return local, local.BasePath(), nil
	default:
		ac, err := loadAWS()
		if err != nil {
			return nil, "", err
		}
		return storage.NewS3Storage(s3.NewFromConfig(ac), cfg.AWS.S3Bucket, cfg.AWS.S3PublicBaseURL), "", nil
	}
}

func newNotifier(cfg *config.Config, loadAWS func() (aws.Config, error), logger *zap.Logger) (notify.Notifier, error) {
	switch cfg.NotifierBackend {
	case config.NotifierWebhook:
		return notify.NewWebhookNotifier(cfg.NotifyWebhookURL, webhookTimeout), nil
	case config.NotifierLog:
		return notify.NewLogNotifier(logger), nil
	default:
		ac, err := loadAWS()
		if err != nil {
			return nil, err
		}
		return notify.NewLambdaNotifier(lambda.NewFromConfig(ac), cfg.AWS.BookingLambdaName), nil
	}
}

func (c *Container) newQueue(cfg *config.Config, loadAWS func() (aws.Config, error)) (queue.Queue, error) {
	switch cfg.QueueBackend {
	case config.QueueRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		c.closers = append(c.closers, client.Close)
		return queue.NewRedisQueue(client), nil
	default:
		ac, err := loadAWS()
		if err != nil {
			return nil, fmt.Errorf("support queue: %w", err)
		}
		return queue.NewSQSQueue(sqs.NewFromConfig(ac)), nil
	}
}
