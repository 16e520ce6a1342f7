package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"shortlink/internal/types"
)

const defaultValidityMinutes = 30

type Server struct {
	port      string
	shortener *Shortener
}

func NewServer(port string, shortener *Shortener) *Server {
	return &Server{
		port:      port,
		shortener: shortener,
	}
}

func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + s.port,
		Handler: withRequestLog(s.routes()),
	}
	errChan := make(chan error, 1)
	go func() { errChan <- srv.ListenAndServe() }()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handlerHealth)
	mux.HandleFunc("POST /shorturls", s.handlerCreate)
	mux.HandleFunc("GET /shorturls/{code}", s.handlerStats)
	mux.HandleFunc("GET /shorturls/{code}/qr", s.handlerQRCode)
	mux.HandleFunc("GET /{code}", s.handlerRedirect)
	return mux
}

type createRequest struct {
	URL       string `json:"url"`
	Validity  *int   `json:"validity,omitempty"`
	ShortCode string `json:"shortcode,omitempty"`
}

type createResponse struct {
	ShortCode string    `json:"shortcode"`
	ShortLink string    `json:"shortLink"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expiry"`
}

type statsResponse struct {
	ShortCode   string             `json:"shortcode"`
	URL         string             `json:"url"`
	CreatedAt   time.Time          `json:"created_at"`
	ExpiresAt   time.Time          `json:"expiry"`
	TotalClicks int                `json:"total_clicks"`
	Clicks      []types.ClickEvent `json:"click_logs"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func handlerHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlerCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "INVALID_BODY", Message: "Request body must be valid JSON."})
		return
	}

	validity := defaultValidityMinutes
	if req.Validity != nil {
		validity = *req.Validity
	}

	link, err := s.shortener.CreateShortLink(r.Context(), req.URL, validity, req.ShortCode)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createResponse{
		ShortCode: link.ShortCode,
		ShortLink: s.shortener.ShortURL(link.ShortCode),
		URL:       link.OriginalURL,
		CreatedAt: link.CreatedAt,
		ExpiresAt: link.ExpiresAt,
	})
}

func (s *Server) handlerRedirect(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	clientAddr := r.RemoteAddr
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		clientAddr = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}

	destination, err := s.shortener.Resolve(r.Context(), code, types.ClickData{
		ClickedAt:  time.Now().UTC(),
		Referrer:   r.Referer(),
		RemoteAddr: clientAddr,
		Locale:     r.Header.Get("Accept-Language"),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	http.Redirect(w, r, destination, http.StatusTemporaryRedirect)
}

func (s *Server) handlerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.shortener.Stats(r.Context(), r.PathValue("code"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		ShortCode:   stats.Link.ShortCode,
		URL:         stats.Link.OriginalURL,
		CreatedAt:   stats.Link.CreatedAt,
		ExpiresAt:   stats.Link.ExpiresAt,
		TotalClicks: stats.TotalClicks,
		Clicks:      stats.Clicks,
	})
}

func (s *Server) handlerQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := s.shortener.QRCode(r.Context(), r.PathValue("code"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrInvalidURL):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "INVALID_URL", Message: "URL must be absolute http(s)."})
	case errors.Is(err, types.ErrInvalidValidity):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "INVALID_VALIDITY", Message: "Validity must be between 1 and 43200 minutes."})
	case errors.Is(err, types.ErrInvalidShortcode):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "INVALID_SHORTCODE", Message: "Shortcode must be 4-32 characters of letters, digits, '_' or '-'."})
	case errors.Is(err, types.ErrShortcodeConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "SHORTCODE_TAKEN", Message: "Provided shortcode is already in use."})
	case errors.Is(err, types.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "NOT_FOUND", Message: "Shortcode not found."})
	case errors.Is(err, types.ErrLinkExpired):
		writeJSON(w, http.StatusGone, errorResponse{Error: "EXPIRED", Message: "This link has expired."})
	default:
		slog.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "INTERNAL", Message: "Internal server error."})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
