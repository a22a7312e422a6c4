package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"tasktrack/internal/app/di"
	"tasktrack/internal/app/router"
	"tasktrack/internal/config"
	authadapters "tasktrack/internal/feature/auth/adapters"
	authhandler "tasktrack/internal/feature/auth/transport/handler"
	authusecase "tasktrack/internal/feature/auth/usecase"
	taskadapters "tasktrack/internal/feature/tasks/adapters"
	taskhandler "tasktrack/internal/feature/tasks/transport/handler"
	taskusecase "tasktrack/internal/feature/tasks/usecase"
	infradb "tasktrack/internal/platform/db"
	jwtmw "tasktrack/internal/platform/jwt"
	infraredis "tasktrack/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// db
	db, err := infradb.Open(cfg)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	// Redis (optional; sessions fall back to the database without it)
	var rdb *redisv9.Client
	if cfg.RedisAddr != "" {
		if tmp, err := infraredis.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword); err != nil {
			log.Println("[WARN] Redis unavailable. Sessions will be stored in the database.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Println("[ERROR] Failed to close Redis client:", err)
				}
			}()
		}
	}

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	taskRepo := taskadapters.NewTaskGorm(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, cfg.SessionTTL)
	taskUC := taskusecase.NewTaskUsecase(taskRepo)

	// Handler
	secureCookies := cfg.GinMode == gin.ReleaseMode
	authH := authhandler.NewAuthHandler(authUC, int(cfg.SessionTTL.Seconds()), secureCookies)
	tokenH := authhandler.NewTokenHandler(authUC, jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiry))
	taskH := taskhandler.NewTaskHandler(taskUC)
	apiTaskH := taskhandler.NewAPITaskHandler(taskUC)

	// ルータ生成
	r := router.NewRouter(cfg, authH, tokenH, taskH, apiTaskH, authUC)

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// Sweep expired sessions hourly so the DB-backed store does not grow
	// unbounded (the Redis store expires keys on its own).
	go sweepSessions(authUC)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// sessionPurger is the slice of the auth usecase the sweeper needs.
type sessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

func sweepSessions(auth sessionPurger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		n, err := auth.PurgeExpiredSessions(context.Background())
		if err != nil {
			slog.Error("session sweep failed", "error", err)
			continue
		}
		if n > 0 {
			slog.Info("expired sessions removed", "count", n)
		}
	}
}
