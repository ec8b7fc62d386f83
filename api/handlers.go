package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"go-helloworld/internal/catalog"
	"go-helloworld/internal/config"
	"go-helloworld/internal/stremio"
)

// BuildRouter builds a new router with handler functions to handle all necessary routes and
// also appends middleware.
func BuildRouter(svc *catalog.Service, logger *zap.Logger, opts Options) http.Handler {
	r := mux.NewRouter()
	s := r.Methods(http.MethodGet).Subrouter()

	// Route handlers
	s.HandleFunc("/", homeHandler)
	s.HandleFunc("/health", healthHandler)
	s.HandleFunc("/manifest.json", func(w http.ResponseWriter, r *http.Request) {
		manifestHandler(w, r, svc, logger)
	})
	s.HandleFunc("/catalog/{type}/{id}.json", func(w http.ResponseWriter, r *http.Request) {
		catalogHandler(w, r, svc, logger)
	})
	s.HandleFunc("/meta/{type}/{id}.json", func(w http.ResponseWriter, r *http.Request) {
		metaHandler(w, r, svc, logger)
	})
	s.HandleFunc("/stream/{type}/{id}.json", func(w http.ResponseWriter, r *http.Request) {
		streamHandler(w, r, svc, logger)
	})

	return withMiddleware(r, logger, opts)
}

// Serve listens for incoming requests until ctx is cancelled, then shuts the server down gracefully.
func Serve(ctx context.Context, h http.Handler, cfg *config.Config, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          zap.NewStdLog(logger),
	}
	if cfg.RequestTimeout > 0 {
		srv.WriteTimeout = cfg.RequestTimeout + 5*time.Second
	}

	errC := make(chan error, 1)
	go func() {
		logger.Info("Listening", zap.String("addr", srv.Addr))
		errC <- srv.ListenAndServe()
	}()

	select {
	case err := <-errC:
		return errors.Wrap(err, "failed to listen")
	case <-ctx.Done():
	}

	logger.Info("Shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "failed to shut down")
	}

	return nil
}

// respondWith writes data as a JSON response that any origin may read.
func respondWith(w http.ResponseWriter, data any, logger *zap.Logger) {
	jsonResponse, err := json.Marshal(data)
	if err != nil {
		logger.Error("Failed to marshal json", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "*")
	w.Write(jsonResponse)
}

// respondError maps a catalog error to a status code.
func respondError(w http.ResponseWriter, r *http.Request, err error, logger *zap.Logger) {
	if errors.Is(err, catalog.ErrUnsupportedType) {
		logger.Debug("Unsupported type", zap.String("url", r.URL.Path), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	logger.Error("Request failed", zap.String("url", r.URL.Path), zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// homeHandler sends visitors to the manifest.
func homeHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/manifest.json", http.StatusFound)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("OK"))
}

// manifestHandler handles requests for the Stremio manifest.
func manifestHandler(w http.ResponseWriter, r *http.Request, svc *catalog.Service, logger *zap.Logger) {
	respondWith(w, svc.GetManifest(), logger)
}

// catalogHandler handles requests for the list of titles of a type.
func catalogHandler(w http.ResponseWriter, r *http.Request, svc *catalog.Service, logger *zap.Logger) {
	params := mux.Vars(r)

	metas, err := svc.GetCatalog(params["type"], params["id"])
	if err != nil {
		respondError(w, r, err, logger)
		return
	}

	logger.Debug("Serving catalog",
		zap.String("type", params["type"]),
		zap.String("catalogId", params["id"]),
		zap.Int("count", len(metas)),
	)

	respondWith(w, stremio.CatalogResponse{Metas: metas}, logger)
}

// metaHandler handles requests for the details of a single title.
func metaHandler(w http.ResponseWriter, r *http.Request, svc *catalog.Service, logger *zap.Logger) {
	params := mux.Vars(r)

	meta, err := svc.GetMeta(params["type"], params["id"])
	if err != nil {
		respondError(w, r, err, logger)
		return
	}

	logger.Debug("Serving meta",
		zap.String("type", params["type"]),
		zap.String("id", params["id"]),
		zap.Bool("found", meta != nil),
	)

	respondWith(w, stremio.MetaResponse{Meta: meta}, logger)
}

// streamHandler handles requests for the streams of a movie or an episode.
func streamHandler(w http.ResponseWriter, r *http.Request, svc *catalog.Service, logger *zap.Logger) {
	params := mux.Vars(r)
	id := params["id"]

	streams, err := svc.GetStreams(params["type"], id)
	if err != nil {
		respondError(w, r, err, logger)
		return
	}

	fields := []zap.Field{
		zap.String("type", params["type"]),
		zap.String("id", id),
		zap.Int("count", len(streams)),
	}
	if seriesId, season, episode, ok := stremio.ParseVideoId(id); ok {
		fields = append(fields,
			zap.String("seriesId", seriesId),
			zap.Int("season", season),
			zap.Int("episode", episode),
		)
	}
	logger.Debug("Serving streams", fields...)

	respondWith(w, stremio.StreamsResponse{Streams: streams}, logger)
}
