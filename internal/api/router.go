package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/medicocare/hospital-portal/docs"
	"github.com/medicocare/hospital-portal/internal/api/handler"
	"github.com/medicocare/hospital-portal/internal/api/middleware"
	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
	"github.com/medicocare/hospital-portal/internal/core/service"
)

// Dependencies are the services the router exposes. They are built once in
// the composition root.
type Dependencies struct {
	Sessions    ports.SessionManager
	Tokens      ports.TokenIssuer
	Directory   ports.UserDirectory
	Preferences ports.PreferenceService
	Images      ports.ProfileImageService
	Guard       *service.AccessGuard
	// Changes serves the storage-change websocket; nil disables the route.
	Changes     echo.HandlerFunc
	Readiness   map[string]handler.Pinger
	JWTSecret   string
	Log         zerolog.Logger
}

var (
	userViews = map[string]string{
		"/dashboard":         "dashboard",
		"/appointments":      "appointments",
		"/appointments/book": "book-appointment",
		"/records":           "medical-records",
		"/prescriptions":     "prescriptions",
		"/billing":           "billing",
		"/profile":           "profile",
		"/settings":          "settings",
		"/doctor":            "doctor-dashboard",
	}
	adminViews = map[string]string{
		"/admin/dashboard":    "admin-dashboard",
		"/admin/users":        "manage-users",
		"/admin/patients":     "manage-patients",
		"/admin/appointments": "manage-appointments",
		"/admin/billing":      "manage-billing",
		"/admin/inventory":    "inventory",
		"/admin/settings":     "admin-settings",
	}
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("portal"))

	authHandler := handler.NewAuthHandler(d.Sessions, d.Tokens)
	accountHandler := handler.NewAccountHandler(d.Sessions, d.Images)
	userHandler := handler.NewUserHandler(d.Directory)
	prefHandler := handler.NewPreferenceHandler(d.Preferences)
	viewHandler := handler.NewViewHandler(d.Sessions)
	healthHandler := handler.NewHealthHandler(d.Sessions, d.Readiness)
	authMiddleware := middleware.Auth(d.JWTSecret, d.Sessions)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/reset", authHandler.Reset)
	auth.GET("/session", authHandler.Session)

	// --- Account API (bearer token of the logged-in user) ---
	account := e.Group("/api/account", authMiddleware)
	account.PATCH("/profile", accountHandler.UpdateProfile)
	account.PUT("/password", accountHandler.ChangePassword)
	account.DELETE("", accountHandler.Delete)
	account.GET("/avatar", accountHandler.GetAvatar)
	account.PUT("/avatar", accountHandler.PutAvatar)
	account.DELETE("/avatar", accountHandler.DeleteAvatar)

	e.GET("/api/users", userHandler.List, authMiddleware, middleware.RBAC(domain.RoleAdmin))

	e.GET("/api/preferences/language", prefHandler.GetLanguage)
	e.PUT("/api/preferences/language", prefHandler.SetLanguage)

	// --- Screens ---
	e.GET("/", viewHandler.Index)
	e.GET(domain.LoginPath, viewHandler.Login)
	e.GET("/register", viewHandler.Register)

	// Guards are attached per route: an echo group with an empty prefix would
	// also catch unknown paths.
	anyRole := middleware.Guard(d.Sessions, d.Guard)
	for path, view := range userViews {
		e.GET(path, viewHandler.Screen(view), anyRole)
	}
	adminOnly := middleware.Guard(d.Sessions, d.Guard, domain.RoleAdmin)
	for path, view := range adminViews {
		e.GET(path, viewHandler.Screen(view), adminOnly)
	}

	// --- Operational ---
	if d.Changes != nil {
		e.GET("/ws/changes", d.Changes)
	}
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/health", healthHandler.Liveness)        // liveness: is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness: dependencies up and session loaded?

	return e
}

// requestLogger feeds echo's request logging into zerolog.
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
