package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/smarthome-io/smarthome-api/docs"
	"github.com/smarthome-io/smarthome-api/internal/api/handler"
	"github.com/smarthome-io/smarthome-api/internal/core/ports"
)

// Dependencies are the services and probes the router exposes over HTTP.
type Dependencies struct {
	Users   ports.UserService
	Houses  ports.HouseService
	Rooms   ports.RoomService
	Devices ports.DeviceService

	// Checks back the readiness probe; empty means always ready.
	Checks []handler.DependencyCheck

	// Registerer and Gatherer back the HTTP metrics and /metrics. Nil selects
	// the Prometheus defaults.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(contextLogger(deps.Logger))
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "smarthome_http",
		Registerer: registerer,
		Skipper:    skipOperational,
	}))

	// --- Resources ---
	users := handler.NewUserHandler(deps.Users)
	houses := handler.NewHouseHandler(deps.Houses)
	rooms := handler.NewRoomHandler(deps.Rooms)
	devices := handler.NewDeviceHandler(deps.Devices)

	e.POST("/users", users.Create)
	e.GET("/users/:userId", users.Get)

	e.POST("/houses", houses.Create)
	e.GET("/houses/:houseId", houses.Get)
	e.GET("/houses/:houseId/rooms", rooms.ListByHouse)

	e.POST("/rooms/:houseId", rooms.Add)
	e.GET("/rooms/:roomId", rooms.Get)
	e.GET("/rooms/:roomId/devices", devices.ListByRoom)

	e.POST("/devices/:roomId", devices.Add)
	e.GET("/devices/:deviceId", devices.Get)
	e.PATCH("/devices/:deviceId/toggle", devices.Toggle)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Checks...)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func skipOperational(c echo.Context) bool {
	p := c.Path()
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
}

// contextLogger stores a logger tagged with the request id in the request
// context, where zerolog.Ctx finds it.
func contextLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := log.With().Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).Logger()
			req := c.Request()
			c.SetRequest(req.WithContext(l.WithContext(req.Context())))
			return next(c)
		}
	}
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
