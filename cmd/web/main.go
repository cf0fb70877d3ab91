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
	"github.com/joho/godotenv"

	"minicrm/internal/apiclient"
	"minicrm/internal/config"
	"minicrm/internal/cron"
	"minicrm/internal/database"
	"minicrm/internal/middleware"
	"minicrm/internal/pkg/jwt"
	"minicrm/internal/repository"
	"minicrm/internal/server"
	"minicrm/internal/session"
	"minicrm/internal/web"
)

// kvBackend is what both store backends provide.
type kvBackend interface {
	session.KVStore
	cron.Purger
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}

	kv, err := openStore(cfg.SessionStoreURL)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}

	store := session.NewStore(kv, cfg.ViewStateTTL)
	sessions := middleware.NewSessions(store, jwt.New(cfg.SessionSecret, 0), middleware.CookieConfig{
		Name:     cfg.SessionCookieName,
		Secure:   cfg.CookieSecure,
		SameSite: cfg.CookieSameSite,
	})
	api := apiclient.New(cfg.APIURL, cfg.APITimeout)

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	r := server.New(server.Deps{
		API:       api,
		Store:     store,
		Sessions:  sessions,
		Renderer:  renderer,
		AccessLog: true,
	})

	scheduler := cron.NewScheduler(kv, cfg.CleanupSchedule)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("scheduler: %v", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server starting port=%s api=%s", cfg.Port, cfg.APIURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func openStore(dsn string) (kvBackend, error) {
	if database.IsRedisURL(dsn) {
		client, err := database.ConnectRedis(dsn)
		if err != nil {
			return nil, err
		}
		return repository.NewRedisKVRepository(client, "minicrm:"), nil
	}

	db, err := database.Connect(dsn)
	if err != nil {
		return nil, err
	}
	kv := repository.NewKVRepository(db)
	if err := kv.Migrate(); err != nil {
		return nil, err
	}
	return kv, nil
}
