package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/spacesedan/emotion-reflection/config"
	"github.com/spacesedan/emotion-reflection/internal/models"
)

const (
	MAX_BODY_BYTES    = 64 << 10
	SHUTDOWN_TIMEOUT  = 10 * time.Second
	READ_HEADER_LIMIT = 5 * time.Second
)

// AnalyzeFunc returns the dominant emotion in text and its confidence.
type AnalyzeFunc func(text string) (string, float64)

type Server struct {
	router   *chi.Mux
	cfg      config.ServerConfig
	analyze  AnalyzeFunc
	emotions []string
	metrics  *metrics
}

func NewServer(cfg config.ServerConfig, analyze AnalyzeFunc, emotions []string) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &Server{
		router:   chi.NewRouter(),
		cfg:      cfg,
		analyze:  analyze,
		emotions: emotions,
		metrics:  newMetrics(registry),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.router.Get("/", s.handleHealth)
	s.router.Post("/analyze-emotion", s.handleAnalyzeEmotion)
	s.router.Get("/emotions", s.handleEmotions)
	s.router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: READ_HEADER_LIMIT,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("[EmotionAPI] Listening", slog.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("[EmotionAPI] Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Message: "Emotion Reflection API is running",
		Status:  "healthy",
	})
}

func (s *Server) handleEmotions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.EmotionCatalogResponse{
		Emotions:   s.emotions,
		TotalCount: len(s.emotions),
	})
}

type analyzeRequest struct {
	Text *string `json:"text"`
}

func (s *Server) handleAnalyzeEmotion(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MAX_BODY_BYTES)).Decode(&req); err != nil || req.Text == nil {
		s.fail(w, http.StatusBadRequest, "Request body must be JSON with a text field")
		return
	}

	text := *req.Text
	if strings.TrimSpace(text) == "" {
		s.fail(w, http.StatusBadRequest, "Text input cannot be empty")
		return
	}
	if utf8.RuneCountInString(text) > s.cfg.MaxTextLength {
		s.fail(w, http.StatusBadRequest, fmt.Sprintf("Text input too long (max %d characters)", s.cfg.MaxTextLength))
		return
	}

	start := time.Now()
	emotion, confidence, err := s.safeAnalyze(text)
	s.metrics.latency.Observe(time.Since(start).Seconds())
	if err != nil {
		slog.Error("[EmotionAPI] Analysis failed", slog.String("error", err.Error()))
		s.fail(w, http.StatusInternalServerError, fmt.Sprintf("Error analyzing emotion: %s", err))
		return
	}

	s.metrics.textBytes.Observe(float64(len(text)))
	s.metrics.emotions.WithLabelValues(emotion).Inc()
	s.metrics.requests.WithLabelValues("200").Inc()

	writeJSON(w, http.StatusOK, models.ClassificationResult{
		Emotion:    emotion,
		Confidence: confidence,
	})
}

func (s *Server) safeAnalyze(text string) (emotion string, confidence float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	emotion, confidence = s.analyze(text)
	return emotion, confidence, nil
}

func (s *Server) fail(w http.ResponseWriter, status int, detail string) {
	s.metrics.requests.WithLabelValues(fmt.Sprint(status)).Inc()
	writeJSON(w, status, models.ErrorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("[EmotionAPI] Failed to encode response", slog.String("error", err.Error()))
	}
}
