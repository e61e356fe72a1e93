package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"anket-backend/internal/api"
	"anket-backend/internal/config"
	"anket-backend/internal/state"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	appState := state.New()
	handler := api.NewHandler(appState, cfg, logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(api.RequestLogger(logger))

	// CORS - Allow frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Anket Backend is Running"))
	})

	handler.RegisterRoutes(r)

	logger.Info("starting server",
		zap.String("addr", "http://localhost:"+cfg.Port),
		zap.Strings("cors_origins", cfg.AllowedOrigins))

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if err := zc.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	return zc.Build()
}
