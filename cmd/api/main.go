package main

import (
	"log"
	"log/slog"
	"os"

	"crackcrawl/db"
	"crackcrawl/internal/config"
	"crackcrawl/internal/handler"
	"crackcrawl/internal/quality"
	"crackcrawl/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	characterRepo := repository.NewCharacterRepository(db.DB)
	auditor := quality.NewAuditor(repository.NewQualityRepository(db.DB))
	characterHandler := handler.NewCharacterHandler(characterRepo, auditor)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/characters", characterHandler.GetCharacters)
	r.GET("/categories", characterHandler.GetCategories)
	r.GET("/quality-report", characterHandler.GetQualityReport)
	r.GET("/health", characterHandler.GetHealth)

	err = r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
