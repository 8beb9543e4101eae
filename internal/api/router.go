package api

import (
	"database/sql"
	"net/http"
	"time"

	"studio_cms/internal/api/handler"
	"studio_cms/internal/api/middleware"
	"studio_cms/internal/app/service"
	"studio_cms/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	db *sql.DB,
	authService *service.AuthService,
	postService *service.PostService,
	galleryService *service.GalleryService,
	settingsService *service.SettingsService,
	uploadService *service.UploadService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)
	galleryHandler := handler.NewGalleryHandler(galleryService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	uploadHandler := handler.NewUploadHandler(uploadService, config.AppConfig.UploadMaxBytes)

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Get("/health", handler.Health(db))

		v1.Route("/auth", authHandler.RegisterRoutes)

		// Public content
		v1.Route("/posts", postHandler.RegisterPublicRoutes)
		v1.Route("/gallery", galleryHandler.RegisterPublicRoutes)
		v1.Route("/settings", settingsHandler.RegisterPublicRoutes)

		// Admin API: token resolved mid-request, JSON errors instead
		// of redirects.
		v1.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.Authenticator)
			admin.Use(middleware.AdminOnly)

			admin.Route("/posts", postHandler.RegisterAdminRoutes)
			admin.Route("/gallery", galleryHandler.RegisterAdminRoutes)
			admin.Route("/settings", settingsHandler.RegisterAdminRoutes)
			admin.Route("/upload", uploadHandler.RegisterRoutes)
		})
	})

	// Admin pages sit behind the session gate, which runs before any
	// page handler and redirects anonymous visitors to the login page.
	adminPages := handler.AdminPages(config.AppConfig.AdminAssetsDir, config.AppConfig.AdminPathPrefix)
	r.Route(config.AppConfig.AdminPathPrefix, func(pages chi.Router) {
		pages.Use(middleware.SessionGate(config.AppConfig.AdminLoginPath))
		pages.Get("/", adminPages)
		pages.Get("/*", adminPages)
	})

	return r
}
