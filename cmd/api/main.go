package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"mlvisiotrack/internal/attendance"
	"mlvisiotrack/internal/config"
	"mlvisiotrack/internal/httpapi"
	"mlvisiotrack/internal/imgur"
	"mlvisiotrack/internal/lecturer"
	"mlvisiotrack/internal/schedule"
	"mlvisiotrack/internal/settings"
	"mlvisiotrack/internal/stats"
	"mlvisiotrack/internal/store"
	"mlvisiotrack/internal/subject"
	"mlvisiotrack/internal/user"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	ctx := context.Background()

	db, err := store.NewDB(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentials)
	if err != nil {
		return err
	}
	defer db.Close()

	cache := store.NewRedis(cfg.RedisAddr)
	if cache == nil {
		log.Println("Redis not configured (REDIS_ADDR not set), dashboard cache disabled")
	}

	users := user.NewRepository(db.Client)
	lecturers := lecturer.NewRepository(db.Client)
	subjects := subject.NewRepository(db.Client)
	schedules := schedule.NewRepository(db.Client)
	records := attendance.NewRepository(db.Client)
	appSettings := settings.NewRepository(db.Client)
	dashboard := stats.NewService(users, records, subjects, func() string {
		return time.Now().Format("2006-01-02")
	})

	var uploader httpapi.Uploader
	if cfg.ImgurClientID != "" {
		uploader = imgur.New(cfg.ImgurClientID)
		log.Println("Imgur configured")
	} else {
		log.Println("Imgur not configured (IMGUR_CLIENT_ID not set)")
	}

	server := httpapi.NewServer(cfg, httpapi.Deps{
		Users:      users,
		Attendance: records,
		Schedules:  schedules,
		Subjects:   subjects,
		Lecturers:  lecturers,
		Settings:   appSettings,
		Stats:      dashboard,
		Uploader:   uploader,
		DB:         db,
		Cache:      cache,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}
