package coordinator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"clipflow/internal/api"
	"clipflow/internal/blob"
	"clipflow/internal/config"
	"clipflow/internal/logging"
)

type apiServer struct {
	bind   string
	logger *slog.Logger

	listener net.Listener
	server   *http.Server
	shutdown time.Duration
}

func newAPIServer(cfg *config.Config, c *Coordinator, logger *slog.Logger) *apiServer {
	srv := &apiServer{
		bind:     cfg.Paths.APIBind,
		logger:   logging.NewComponentLogger(logger, "api-server"),
		shutdown: time.Duration(cfg.Coordinator.ShutdownTimeout) * time.Second,
	}
	srv.server = &http.Server{
		Handler:           NewHandler(c),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.stop()
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s == nil || s.server == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// NewHandler assembles the coordinator's HTTP routes.
func NewHandler(c *Coordinator) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/upload/", c.handleUpload).Methods(http.MethodPost)
	router.HandleFunc("/ws", c.handleEvents).Methods(http.MethodGet)
	router.HandleFunc("/events", c.handleEvents).Methods(http.MethodGet)
	router.HandleFunc("/internal/video-enhancement-status/", c.handleEnhancementStatus).Methods(http.MethodPost)
	router.HandleFunc("/internal/metadata-extraction-status/", c.handleMetadataStatus).Methods(http.MethodPost)
	router.HandleFunc("/api/videos", c.handleVideoList).Methods(http.MethodGet)
	router.HandleFunc("/api/videos/{name}", c.handleVideo).Methods(http.MethodGet)
	router.HandleFunc("/api/status", c.handleStatus).Methods(http.MethodGet)
	return router
}

func (c *Coordinator) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, c.cfg.Coordinator.MaxUploadMiB<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		c.writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	name, err := c.Ingest(r.Context(), header.Filename, file)
	switch {
	case err == nil:
	case errors.Is(err, blob.ErrInvalidName):
		c.writeError(w, http.StatusBadRequest, "invalid video name")
		return
	case errors.Is(err, ErrDispatchFailed):
		c.writeError(w, http.StatusBadGateway, "video stored but task dispatch failed; resubmit to retry")
		return
	default:
		c.logger.Error("upload failed", logging.Error(err))
		c.writeError(w, http.StatusInternalServerError, "failed to store video")
		return
	}

	c.writeJSON(w, http.StatusOK, api.UploadResponse{
		Message:  "Video uploaded successfully!",
		Filename: name,
	})
}

func (c *Coordinator) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		c.writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	observer := c.observers.Admit()
	defer c.observers.Drop(observer)

	keepalive := time.Duration(c.cfg.Coordinator.KeepaliveInterval) * time.Second
	if keepalive <= 0 {
		keepalive = 30 * time.Second
	}
	ticker := time.NewTicker(keepalive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case payload, open := <-observer.Events():
			if !open {
				// Hub dropped us, most likely for falling behind.
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (c *Coordinator) handleEnhancementStatus(w http.ResponseWriter, r *http.Request) {
	var report api.EnhancementReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		c.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(report.VideoName) == "" {
		c.writeError(w, http.StatusBadRequest, "video_name is required")
		return
	}

	if err := c.RecordEnhancement(r.Context(), report.VideoName); err != nil {
		c.logger.Error("enhancement report failed", logging.Error(err))
		c.writeError(w, http.StatusInternalServerError, "failed to record enhancement status")
		return
	}
	c.writeJSON(w, http.StatusOK, api.AckResponse{Message: "Enhancement status updated"})
}

func (c *Coordinator) handleMetadataStatus(w http.ResponseWriter, r *http.Request) {
	var report api.MetadataReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		c.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(report.VideoName) == "" {
		c.writeError(w, http.StatusBadRequest, "video_name is required")
		return
	}

	if err := c.RecordMetadata(r.Context(), report.VideoName, report.Metadata); err != nil {
		c.logger.Error("metadata report failed", logging.Error(err))
		c.writeError(w, http.StatusInternalServerError, "failed to record metadata status")
		return
	}
	c.writeJSON(w, http.StatusOK, api.AckResponse{Message: "Metadata status updated"})
}

func (c *Coordinator) handleVideoList(w http.ResponseWriter, r *http.Request) {
	records, err := c.registry.List(r.Context())
	if err != nil {
		c.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	videos := make([]api.Video, 0, len(records))
	for _, record := range records {
		videos = append(videos, toAPIVideo(record))
	}
	c.writeJSON(w, http.StatusOK, api.VideoListResponse{Videos: videos})
}

func (c *Coordinator) handleVideo(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	record, err := c.registry.Get(r.Context(), name)
	if err != nil {
		c.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil {
		c.writeError(w, http.StatusNotFound, "video not found")
		return
	}
	c.writeJSON(w, http.StatusOK, api.VideoResponse{Video: toAPIVideo(record)})
}

func (c *Coordinator) handleStatus(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, c.Status(r.Context()))
}

func (c *Coordinator) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		c.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (c *Coordinator) writeError(w http.ResponseWriter, status int, message string) {
	c.writeJSON(w, status, api.ErrorResponse{Error: message})
}
