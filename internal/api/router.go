package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/room-booking-backend/internal/booking/http"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
	roomHttp "github.com/nekogravitycat/room-booking-backend/internal/room/http"
	"github.com/nekogravitycat/room-booking-backend/internal/ticket"
	ticketHttp "github.com/nekogravitycat/room-booking-backend/internal/ticket/http"
	"github.com/nekogravitycat/room-booking-backend/internal/user"
	userHttp "github.com/nekogravitycat/room-booking-backend/internal/user/http"
)

// Config holds everything the router needs to assemble the API.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	// MediaPath, when set, serves locally stored room images under /media.
	MediaPath string

	UserService    user.Service
	RoomService    room.Service
	BookingService booking.Service
	TicketService  ticket.Service
	JWTManager     *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if origins := allowedOrigins(cfg); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		// No browser origins configured: refuse every cross-origin request.
		corsConfig.AllowOriginFunc = func(string) bool { return false }
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	r.Use(cors.New(corsConfig))

	if cfg.MediaPath != "" {
		r.Static("/media", cfg.MediaPath)
	}

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// staffResolver: Records the caller's staff flag for handlers that scope data by it.
	staffResolver := ResolveStaff(cfg.UserService)
	// staffMiddleware: Rejects callers without the staff flag.
	staffMiddleware := RequireStaff(cfg.UserService)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	roomHandler := roomHttp.NewHandler(cfg.RoomService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	ticketHandler := ticketHttp.NewHandler(cfg.TicketService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, staffMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware, staffMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, staffResolver, staffMiddleware)
		ticketHttp.RegisterRoutes(v1, ticketHandler, authMiddleware, staffMiddleware)
	}

	return r
}

func allowedOrigins(cfg Config) []string {
	if !cfg.IsProduction {
		return []string{
			"http://localhost:3000",
			"http://localhost:8081", // Swagger
		}
	}

	var origins []string
	for _, o := range strings.Split(cfg.ProdOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
