package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/estudiobarber/turnos-api/internal/cache"
	"github.com/estudiobarber/turnos-api/internal/config"
	dbpkg "github.com/estudiobarber/turnos-api/internal/db"
	"github.com/estudiobarber/turnos-api/internal/middleware"
	"github.com/estudiobarber/turnos-api/internal/routes"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	var store cache.Cache = cache.NewNoop()
	if cfg.RedisAddr != "" {
		store = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
		log.Printf("catalog cache on redis %s", cfg.RedisAddr)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, store, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
