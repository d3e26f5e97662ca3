package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/booking-core/internal/config"
	dbpkg "github.com/BruksfildServices01/booking-core/internal/db"
	"github.com/BruksfildServices01/booking-core/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		// cache é opcional: sem redis o engine recalcula sempre
		log.Printf("redis unavailable, running without slot cache: %v", err)
		rdb = nil
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	sweeper := routes.RegisterRoutes(r, routes.Deps{
		DB:    db,
		Redis: rdb,
		Cfg:   cfg,
	})

	go sweeper.Run(context.Background(), cfg.SweepInterval)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
