package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SerraVetServices/vet-scheduler/internal/config"
	dbpkg "github.com/SerraVetServices/vet-scheduler/internal/db"
	"github.com/SerraVetServices/vet-scheduler/internal/infra/storage"
	"github.com/SerraVetServices/vet-scheduler/internal/lock"
	"github.com/SerraVetServices/vet-scheduler/internal/middleware"
	"github.com/SerraVetServices/vet-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	// REDIS_ADDR vazio desliga o lock distribuído.
	var locker lock.SlotLocker = lock.Noop{}
	if cfg.RedisAddr != "" {
		client, err := lock.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		locker = lock.NewRedisSlotLocker(client, 10*time.Second)
	}

	blobs := storage.NewS3Store(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, locker, blobs)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
