package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"dashinbox/internal/config"
	httpserver "dashinbox/internal/http"
	"dashinbox/internal/http/handler"
	"dashinbox/internal/preference"
	"dashinbox/internal/repository/restapi"
	"dashinbox/internal/scheduler"
	"dashinbox/internal/service"
	"dashinbox/internal/stats"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	repo := restapi.NewMessageRepository(restapi.Options{
		BaseURL:   cfg.API.BaseURL,
		CSRFToken: cfg.API.CSRFToken,
		SessionID: cfg.API.SessionID,
		APIToken:  cfg.API.Token,
		Timeout:   cfg.API.Timeout,
	})

	var store preference.Store
	switch cfg.Preference.Backend {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancelPing()
			log.Fatalf("connect redis: %v", err)
		}
		cancelPing()
		store = preference.NewRedisStore(redisClient, cfg.Preference.Profile)
	default:
		store = preference.NewFileStore(cfg.Preference.File, cfg.Preference.Profile)
	}

	inboxService := service.NewInboxService(repo, service.InboxServiceOptions{})

	schedLogger := log.New(os.Stdout, "scheduler ", log.LstdFlags)
	sched := scheduler.New(inboxService, cfg.Scheduler.Interval, schedLogger)

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sched.Start(appCtx); err != nil {
		log.Fatalf("start scheduler: %v", err)
	}

	router := httpserver.NewRouter(httpserver.Handlers{
		Control:    handler.NewControlHandler(appCtx, sched),
		Inbox:      handler.NewInboxHandler(inboxService),
		Preference: handler.NewPreferenceHandler(preference.NewDarkMode(store)),
		Stats: handler.NewStatsHandler(stats.NewClient(stats.ClientOptions{
			BaseURL:  cfg.API.BaseURL,
			APIToken: cfg.API.Token,
			Timeout:  cfg.API.Timeout,
		})),
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if err := sched.Stop(); err != nil && !errors.Is(err, scheduler.ErrNotRunning) {
		log.Printf("scheduler stop error: %v", err)
	}
}
