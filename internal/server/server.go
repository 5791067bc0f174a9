package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/realtime"
	"taskboard/internal/repository"
	"taskboard/internal/seed"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config

	hub       *realtime.Hub
	relay     *realtime.RedisRelay
	redis     *redis.Client
	stopRelay context.CancelFunc
}

func Init(cfg *config.Config) (*Server, error) {
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if cfg.MigrateOnStart {
		if err := database.Migrate(cfg.DatabaseURL); err != nil {
			return nil, err
		}
	}

	db, err := database.Open(cfg.DatabaseURL, cfg.Debug)
	if err != nil {
		return nil, err
	}
	log.Info("connected to database")

	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)

	users := service.NewUserService(userRepo, boardRepo)
	boards := service.NewBoardService(boardRepo, userRepo)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)

	if cfg.SeedOnStart {
		if _, err := seed.Run(context.Background(), userRepo, users, boards); err != nil {
			return nil, err
		}
	}

	s := &Server{DB: db, Config: cfg, hub: realtime.NewHub()}
	gateway := realtime.NewGateway(s.hub, boards, cfg.AllowedOrigins)

	if cfg.RedisAddr != "" {
		s.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := s.redis.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		s.relay = realtime.NewRedisRelay(s.redis, cfg.RedisChannel)
		gateway.WithPublisher(s.relay)
		log.WithField("addr", cfg.RedisAddr).Info("redis relay enabled")
	}

	s.Engine = NewRouter(cfg, Deps{
		Users:   users,
		Boards:  boards,
		Tokens:  tokens,
		Gateway: gateway,
	})
	return s, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	if s.relay != nil {
		ctx, cancel := context.WithCancel(context.Background())
		s.stopRelay = cancel
		go s.relay.Run(ctx, s.hub)
	}

	go func() {
		log.WithField("port", s.Config.ServerPort).Info("server running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	if s.stopRelay != nil {
		s.stopRelay()
	}
	s.hub.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %s", err)
	}
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info("server exited properly")
}
