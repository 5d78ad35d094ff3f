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

	"incosedss/app"
	"incosedss/internal"
	"incosedss/internal/config"
	"incosedss/internal/metrics"
	"incosedss/internal/session"
	"incosedss/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.LogLevel))
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	store := session.NewMemoryStore(appConfig.Session.TTL, appConfig.Session.MaxEntries)
	store.OnResize(func(size int) { m.ActiveSessions.Set(float64(size)) })
	go store.Run(ctx, appConfig.Session.SweepInterval)

	service := app.NewReportService(appConfig, m, logger)

	server, err := ui.NewServer(appConfig, service, store)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	web := &http.Server{
		Addr:         ":" + appConfig.Server.Port,
		Handler:      server.Handler(),
		ReadTimeout:  appConfig.Server.ReadTimeout,
		WriteTimeout: appConfig.Server.WriteTimeout,
	}
	servers := []*http.Server{web}

	if appConfig.Ops.Enabled {
		ops := &http.Server{
			Addr:              ":" + appConfig.Ops.Port,
			Handler:           ui.NewOpsRouter(m, store),
			ReadHeaderTimeout: 5 * time.Second,
		}
		servers = append(servers, ops)
		go func() {
			log.Printf("🚀 Ops server (health, metrics, pprof) starting on :%s", appConfig.Ops.Port)
			if err := ops.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("❌ Ops server failed: %v", err)
			}
		}()
	}

	go func() {
		log.Printf("🚀 Starting INCOSE India survey report on port %s", appConfig.Server.Port)
		if err := web.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown of %s failed: %v", srv.Addr, err)
		}
	}
	log.Println("✅ Server stopped")
}
