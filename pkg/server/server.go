// Package server exposes the importer over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
	"go.uber.org/zap"
)

// Saver persists imported records. *store.Store satisfies it.
type Saver interface {
	Save(ctx context.Context, table string, records []models.Record, typ sheetimport.ImportType) (int64, error)
}

// Config holds the HTTP settings.
type Config struct {
	UploadDir      string
	MaxUploadBytes int64
	AllowOrigins   []string
	// Defaults fill options the request leaves unset.
	Defaults sheetimport.Options
}

// Server routes import requests to an Importer and, optionally, a Saver.
type Server struct {
	cfg      Config
	importer *sheetimport.Importer
	saver    Saver
	logger   *zap.Logger
}

// New creates a Server. saver may be nil, in which case save requests fail
// with 503.
func New(cfg Config, importer *sheetimport.Importer, saver Saver, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if importer == nil {
		importer = sheetimport.New(logger)
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads"
	}
	return &Server{cfg: cfg, importer: importer, saver: saver, logger: logger}
}

// Handler returns the routed handler with panic recovery and CORS applied.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/import/{resource}", s.handleImport).Methods(http.MethodPost)
	api.HandleFunc("/worksheets", s.handleWorksheets).Methods(http.MethodPost)

	router.HandleFunc("/checkhealth", checkHealth).Methods(http.MethodGet)

	origins := s.cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	recovery := handlers.RecoveryHandler(handlers.RecoveryLogger(zap.NewStdLog(s.logger)))

	return recovery(cors(router))
}

func checkHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
