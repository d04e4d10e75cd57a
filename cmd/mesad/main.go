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

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"

	"festa-mesas-backend/config"
	"festa-mesas-backend/internal/api"
	"festa-mesas-backend/internal/audit"
	"festa-mesas-backend/internal/catalog"
	"festa-mesas-backend/internal/db"
	"festa-mesas-backend/internal/engine"
	"festa-mesas-backend/internal/ledger"
	"festa-mesas-backend/internal/notification"
	"festa-mesas-backend/internal/sheet"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "mesas-backend ", log.LstdFlags)

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		logger.Println("loaded environment from .env")
	}

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	var webpushOptions *webpush.Options
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
	} else {
		logger.Println("VAPID keys are not configured; push notifications are disabled")
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Spreadsheet client
	var client sheet.Client
	switch cfg.Sheets.Mode {
	case "memory":
		logger.Println("sheets.mode is memory; state is lost on restart")
		mem := sheet.NewMemory()
		mem.Seed(cfg.Sheets.LayoutSheet, [][]string{
			{"ID_Mesa", "Linha", "Coluna", "Numero_Display", "Tipo_Item", "Preco_Mesa"},
		})
		mem.Seed(cfg.Sheets.LogSheet, [][]string{
			{"ID_Venda", "Ref_Mesa", "Status", "Nome_Cliente", "Nome_Festeiro",
				"Telefone_Cliente", "Valor_Entrada_Cobrado", "Data_Reserva", "Data_Confirmacao"},
		})
		client = mem
	default:
		token := os.Getenv(cfg.Sheets.TokenEnv)
		if token == "" {
			logger.Fatalf("environment variable %s must hold the sheets API token", cfg.Sheets.TokenEnv)
		}
		client = sheet.NewHTTPClient(sheet.Options{
			BaseURL:       cfg.Sheets.BaseURL,
			SpreadsheetID: cfg.Sheets.SpreadsheetID,
			Token:         token,
			SheetGIDs:     cfg.Sheets.SheetGIDs,
			Timeout:       cfg.Sheets.SheetTimeout(),
		})
	}

	// Wire the reservation engine
	cat := catalog.New(client, cfg.Sheets.LayoutSheet)
	reservations := ledger.New(client, cfg.Sheets.LogSheet, cfg.Sheets.Location())
	eng := engine.New(cat, reservations)
	eng.SetRecorder(audit.NewStore(gormDB))

	if webpushOptions != nil {
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions)
		pool.Start(ctx)
		eng.SetNotifier(pool)
	}

	// Initialize router
	router := api.NewRouter(cfg, eng, gormDB, webpushOptions)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
