package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"drawtrack/internal/config"
	"drawtrack/internal/database"
	"drawtrack/internal/middleware"
	"drawtrack/internal/modules/dashboard"
	"drawtrack/internal/modules/drawing"
	"drawtrack/internal/modules/health"
	"drawtrack/internal/repository"
	"drawtrack/internal/storage"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	store, err := storage.New(cfg.UploadsDir)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	drawingRepo := repository.NewDrawingRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	if _, err := userRepo.EnsureDefault(context.Background()); err != nil {
		log.Fatal(err)
	}

	drawingService := drawing.NewService(drawingRepo, favoriteRepo, activityRepo, store)
	drawingHandler := drawing.NewHandler(drawingService)

	dashboardService := dashboard.NewService(drawingRepo, activityRepo)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	healthHandler := health.NewHandler(db)

	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.ErrorLogger())

	r.Static(storage.URLBase, store.Dir())

	api := r.Group("/api")
	{
		healthHandler.RegisterRoutes(api)

		scoped := api.Group("/")
		scoped.Use(middleware.CurrentUser(userRepo))
		{
			dashboardHandler.RegisterRoutes(scoped)
			drawingHandler.RegisterRoutes(scoped)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
