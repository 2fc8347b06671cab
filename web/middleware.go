package web

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/medcost/pkg/errors"
	"github.com/YuminosukeSato/medcost/pkg/log"
)

type ctxKey int

const loggerKey ctxKey = iota

// RequestIDHeader carries the request id back to the client.
const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.wrote = true
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wrote = true
	return r.ResponseWriter.Write(b)
}

// requestLogger tags each request with an id, exposes a request scoped logger
// through the context and logs one line when the request completes.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		logger := s.logger.With(log.RequestIDKey, id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		req := r.WithContext(context.WithValue(r.Context(), loggerKey, logger))
		err := errors.SafeExecute("http "+r.URL.Path, func() error {
			next.ServeHTTP(rec, req)
			return nil
		})
		if err != nil {
			logger.Error("handler panicked", err, log.PathKey, r.URL.Path)
			if !rec.wrote {
				http.Error(rec, "internal error", http.StatusInternalServerError)
			}
		}

		logger.Info("request",
			log.MethodKey, r.Method,
			log.PathKey, r.URL.Path,
			log.StatusKey, rec.status,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) requestLog(r *http.Request) log.Logger {
	if l, ok := r.Context().Value(loggerKey).(log.Logger); ok {
		return l
	}
	return s.logger
}

// rateLimit answers 429 once the token bucket is empty.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			s.requestLog(r).Warn("rate limited", log.PathKey, r.URL.Path)
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, apiError{Error: "too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
