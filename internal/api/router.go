package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openlingu/lingua-server/internal/api/handler"
	"github.com/openlingu/lingua-server/internal/api/middleware"
	"github.com/openlingu/lingua-server/internal/core/ports"
	"github.com/openlingu/lingua-server/internal/infrastructure/http/handlers"
)

// Deps carries everything the router needs. Services are constructed in main
// so the boundary sweeps can reach the token service directly.
type Deps struct {
	AuthService    ports.AuthService
	TokenService   ports.TokenService
	AccountService ports.AccountService
	ContentService ports.ContentService

	SweepThrottle middleware.SweepThrottle

	UsersDB *mongo.Database
	Redis   *redis.Client
	Logger  zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("lingua"))
	e.Use(middleware.Sweep(deps.TokenService, deps.SweepThrottle, deps.Logger))

	auth := middleware.Auth(deps.TokenService)
	contributor := middleware.RequireContributor()
	admin := middleware.RequireAdmin()

	authHandler := handler.NewAuthHandler(deps.AuthService, deps.TokenService)
	accountHandler := handler.NewAccountHandler(deps.AccountService)
	languageHandler := handler.NewLanguageHandler(deps.ContentService)
	lectionHandler := handler.NewLectionHandler(deps.ContentService)

	// --- Auth routes ---
	e.POST("/login", authHandler.Login)
	e.GET("/login_contributer", authHandler.LoginContributor) // path kept verbatim for editor clients
	e.POST("/register", authHandler.Register)
	e.POST("/logout", authHandler.Logout)

	// --- Account routes ---
	e.GET("/me", accountHandler.Me, auth)
	e.GET("/user/:username", accountHandler.GetUser, auth, admin)
	e.DELETE("/user/:username", accountHandler.DeleteUser, auth, admin)

	// --- Language routes ---
	e.POST("/add_language/:name", languageHandler.Add, auth, contributor)
	e.DELETE("/delete_language/:name", languageHandler.Delete, auth, contributor)
	e.GET("/languages", languageHandler.List)

	// --- Lection routes ---
	e.POST("/add_lection/:language", lectionHandler.Add, auth, contributor)
	e.PUT("/edit_lection/:language", lectionHandler.Edit, auth, contributor)
	e.DELETE("/delete_lection/:language/:title", lectionHandler.Delete, auth, contributor)
	e.GET("/languages/:language/lections", lectionHandler.List)
	e.GET("/languages/:language/lections/by_title/:title", lectionHandler.GetByTitle)
	e.GET("/languages/:language/lections/:id", lectionHandler.GetByID)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.UsersDB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
