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
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/internal/business/dashboard"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/internal/platform/config"
	firestoreclient "github.com/priyanka348/serbia-land-registry-full--stack-sub001/internal/platform/firestore"
	apirouter "github.com/priyanka348/serbia-land-registry-full--stack-sub001/internal/platform/http"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/internal/platform/registry"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/internal/repository"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	policy, err := cfg.LoadPolicy()
	if err != nil {
		log.Fatalf("policy load: %v", err)
	}

	var store dashboard.SnapshotStore = repository.NewMemorySnapshots()
	if cfg.SnapshotsEnabled() {
		firestoreClient, credsSource, err := firestoreclient.New(ctx, cfg)
		if err != nil {
			log.Fatalf("firestore init: %v", err)
		}
		defer firestoreClient.Close()

		if err := firestoreclient.Ping(ctx, firestoreClient, repository.SnapshotCollection); err != nil {
			log.Fatalf("firestore ping: %v", err)
		}
		log.Printf("connected to Firestore project %s using %s credentials", cfg.FirebaseProjectID, credsSource)
		store = repository.NewSnapshotRepository(firestoreClient)
	} else {
		log.Println("FIREBASE_PROJECT_ID not set, keeping fallback snapshots in memory")
	}

	source := registry.New(nil, registry.Config{
		BaseURL:           cfg.RegistryBaseURL,
		Token:             cfg.RegistryToken,
		Timeout:           cfg.RegistryTimeout,
		RequestsPerSecond: cfg.RegistryRPS,
		Limit:             cfg.RegistryFetchLimit,
	})
	svc := dashboard.NewService(source, store, policy)

	router := apirouter.NewRouter(svc, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on :%s (registry %s)", cfg.Port, cfg.RegistryBaseURL)

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	log.Println("server exited")
}
