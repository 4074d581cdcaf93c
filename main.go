package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/yarrakiran3/polling-system-backend/config"
	"github.com/yarrakiran3/polling-system-backend/controller"
	"github.com/yarrakiran3/polling-system-backend/db"
	"github.com/yarrakiran3/polling-system-backend/middleware"
	"github.com/yarrakiran3/polling-system-backend/router"
	"github.com/yarrakiran3/polling-system-backend/session"
	"github.com/yarrakiran3/polling-system-backend/store"
	"github.com/yarrakiran3/polling-system-backend/transport"
)

func main() {
	// Optional .env for development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("error loading configuration", "error", err)
		os.Exit(1)
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	// Verify connection
	if err := conn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	st := store.New(conn)
	ctrl := controller.New(st)
	countdown := controller.NewCountdown()

	hub := transport.NewHub(cfg.FrontendURL)
	coord := session.New(st, ctrl, countdown, hub)
	go coord.Run(hub.Inbound())

	mux := router.NewRouter(hub)

	server := http.Server{
		Handler: middleware.CORS(cfg.FrontendURL, mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		countdown.StopAll()
		hub.Close()
		server.Close()
	}()

	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
