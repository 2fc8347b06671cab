// Package web serves the prediction form, the dataset exploration pages and a
// JSON prediction API.
package web

import (
	"context"
	"embed"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/YuminosukeSato/medcost/config"
	"github.com/YuminosukeSato/medcost/dataset"
	"github.com/YuminosukeSato/medcost/insurance"
	"github.com/YuminosukeSato/medcost/pkg/errors"
	"github.com/YuminosukeSato/medcost/pkg/log"
)

//go:embed templates/*.html
var templateFS embed.FS

const shutdownTimeout = 10 * time.Second

// Options configures a Server. Predictor and Dataset may be nil; the pages
// that need them then answer 503 and the rest of the site keeps working.
type Options struct {
	Addr         string
	Predictor    *insurance.Predictor
	Dataset      *dataset.Table
	Logger       log.Logger
	PredictRate  float64
	PredictBurst int

	// ModelErr and DatasetErr explain why Predictor or Dataset is nil.
	ModelErr   error
	DatasetErr error
}

// Server is the HTTP front end.
type Server struct {
	addr       string
	predictor  *insurance.Predictor
	table      *dataset.Table
	modelErr   error
	datasetErr error
	logger     log.Logger
	limiter    *rate.Limiter
	templates  map[Page]*template.Template
	fallback   *template.Template
	router     *mux.Router

	chartMu sync.Mutex
	charts  map[string][]byte
}

// New builds a Server and its routes.
func New(opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.GetLogger()
	}
	if opts.PredictRate <= 0 {
		opts.PredictRate = config.DefaultPredictRate
	}
	if opts.PredictBurst < 1 {
		opts.PredictBurst = config.DefaultPredictBurst
	}

	s := &Server{
		addr:       opts.Addr,
		predictor:  opts.Predictor,
		table:      opts.Dataset,
		modelErr:   opts.ModelErr,
		datasetErr: opts.DatasetErr,
		logger:     logger.With(log.ComponentKey, "web"),
		limiter:    rate.NewLimiter(rate.Limit(opts.PredictRate), opts.PredictBurst),
		charts:     make(map[string][]byte),
	}
	if s.predictor == nil && s.modelErr == nil {
		s.modelErr = errors.ErrModelUnavailable
	}
	if s.table == nil && s.datasetErr == nil {
		s.datasetErr = errors.ErrDatasetUnavailable
	}

	if err := s.parseTemplates(); err != nil {
		return nil, err
	}
	s.routes()
	return s, nil
}

func (s *Server) parseTemplates() error {
	s.templates = make(map[Page]*template.Template, len(pages))
	for _, p := range Pages() {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+pages[p].file)
		if err != nil {
			return errors.Wrapf(err, "parse template %s", p)
		}
		s.templates[p] = t
	}
	t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/unavailable.html")
	if err != nil {
		return errors.Wrap(err, "parse template unavailable")
	}
	s.fallback = t
	return nil
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.Use(s.requestLogger)

	r.HandleFunc(PageHome.Path(), s.handleHome).Methods(http.MethodGet)
	r.HandleFunc(PageDataset.Path(), s.handleDataset).Methods(http.MethodGet)
	r.HandleFunc(PageVisualization.Path(), s.handleVisualization).Methods(http.MethodGet)
	r.HandleFunc("/charts/{kind}.png", s.handleChart).Methods(http.MethodGet)
	r.HandleFunc(PagePredict.Path(), s.handlePredictForm).Methods(http.MethodGet)
	r.HandleFunc(PagePredict.Path(), s.handlePredictSubmit).Methods(http.MethodPost)
	r.HandleFunc(PageAlgorithm.Path(), s.handleAlgorithm).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.rateLimit)
	api.HandleFunc("/predict", s.handleAPIPredict).Methods(http.MethodPost)

	s.router = r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", s.addr)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serve")
	}
	return nil
}
