package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studio_cms/internal/api"
	"studio_cms/internal/app/limiter"
	"studio_cms/internal/app/service"
	"studio_cms/internal/common/security"
	"studio_cms/internal/domain/repository"
	"studio_cms/internal/platform/cache"
	"studio_cms/internal/platform/config"
	"studio_cms/internal/platform/database"
	"studio_cms/internal/platform/imagehost"
)

func main() {
	// 1. Load Configuration
	config.Load()
	log.Println("Configuration loaded")

	// 2. Initialize JWT
	security.InitJWT()
	log.Println("JWT initialized")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	// 4. Initialize Redis
	cache.Connect()
	defer cache.Close()

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	postRepo := repository.NewPgPostRepository(database.DB)
	galleryRepo := repository.NewPgGalleryRepository(database.DB)
	settingsRepo := repository.NewPgSettingsRepository(database.DB)

	// 6. Initialize Services
	loginLimiter := limiter.NewLoginLimiter(cache.RDB, config.AppConfig.LoginMaxFailures, config.AppConfig.LoginWindow)
	authService := service.NewAuthService(userRepo, loginLimiter)
	postService := service.NewPostService(postRepo)
	galleryService := service.NewGalleryService(galleryRepo)
	settingsService := service.NewSettingsService(settingsRepo, cache.RDB, config.AppConfig.SettingsCacheTTL)

	uploader := imagehost.NewCloudinaryClient(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
		config.AppConfig.CloudinaryFolder,
	)
	uploadService := service.NewUploadService(uploader)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(database.DB, authService, postService, galleryService, settingsService, uploadService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully")
}
