package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/muhammadolammi/opportunitymatch/internal/api"
	"github.com/muhammadolammi/opportunitymatch/internal/config"
	"github.com/muhammadolammi/opportunitymatch/internal/docstore"
	"github.com/muhammadolammi/opportunitymatch/internal/events"
	"github.com/muhammadolammi/opportunitymatch/internal/oracle"
	"github.com/muhammadolammi/opportunitymatch/internal/session"
	"github.com/muhammadolammi/opportunitymatch/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system env")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	backends := map[string]string{}

	// store
	var st store.Store
	if cfg.DatabaseURL != "" {
		pg, err := store.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("[store] postgres: %v", err)
		}
		defer pg.Close()
		st = pg
		backends["store"] = "postgres"
	} else {
		st = store.NewMemStore()
		backends["store"] = "memory"
	}
	if err := store.SeedIfEmpty(ctx, st); err != nil {
		log.Fatalf("[store] seed: %v", err)
	}

	// sessions
	var sessions session.Store
	if cfg.RedisURL != "" {
		rdb, err := session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("[session] redis: %v", err)
		}
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
		backends["sessions"] = "redis"
	} else {
		mem := session.NewMemoryStore(cfg.SessionTTL)
		if err := mem.Start(); err != nil {
			log.Fatalf("[session] %v", err)
		}
		defer mem.Stop()
		sessions = mem
		backends["sessions"] = "memory"
	}

	// oracle
	llm, err := oracle.NewModel(ctx, cfg.GoogleAPIKey, cfg.OracleModel)
	if err != nil {
		log.Fatalf("[oracle] %v", err)
	}
	orc, err := oracle.NewAgentOracle(llm, oracle.Config{
		Timeout:  cfg.OracleTimeout,
		Attempts: cfg.OracleAttempts,
	})
	if err != nil {
		log.Fatalf("[oracle] %v", err)
	}
	backends["oracle"] = cfg.OracleModel

	// CV archive
	var archive docstore.Archive
	backends["archive"] = "disabled"
	if cfg.R2Enabled() {
		r2, err := docstore.NewR2Archive(ctx, docstore.R2Config{
			AccountID: cfg.R2AccountID,
			Bucket:    cfg.R2Bucket,
			AccessKey: cfg.R2AccessKey,
			SecretKey: cfg.R2SecretKey,
		})
		if err != nil {
			log.Fatalf("[docstore] %v", err)
		}
		archive = r2
		backends["archive"] = "r2"
	}

	// events
	var pub events.Publisher = events.Noop{}
	backends["events"] = "disabled"
	if cfg.RabbitMQURL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalf("[events] %v", err)
		}
		pub = amqpPub
		backends["events"] = "rabbitmq"
	}
	defer pub.Close()

	srv := api.NewServer(st, sessions, orc, archive, pub, api.Options{
		AdminToken:   cfg.AdminToken,
		CookieSecure: cfg.CookieSecure,
		SessionTTL:   cfg.SessionTTL,
		CORSOrigins:  cfg.CORSOrigins,
		StaticDir:    cfg.StaticDir,
		Backends:     backends,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.OracleTimeout + 15*time.Second,
	}

	go func() {
		log.Printf("[api] listening on :%s (%v)", cfg.Port, backends)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[api] HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[api] shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[api] shutdown error: %v", err)
	}
	log.Println("[api] stopped")
}
