package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"t73f.de/r/webs/middleware"
	"t73f.de/r/webs/middleware/logging"
	"t73f.de/r/webs/middleware/reqid"

	md2tex "github.com/alnah/go-md2tex"
	"github.com/alnah/go-md2tex/internal/fileutil"
	"github.com/alnah/go-md2tex/internal/jobs"
)

// Server timeout values
const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// DefaultMaxRequestSize bounds the render request body (10 MiB).
const DefaultMaxRequestSize = 10 << 20

// Converter turns Markdown into a complete .tex document.
// *md2tex.Converter implements it.
type Converter interface {
	Convert(ctx context.Context, input md2tex.Input) (*md2tex.ConvertResult, error)
}

// Builder compiles a generated .tex file.
// *md2tex.Builder implements it.
type Builder interface {
	Build(ctx context.Context, texPath string, opts md2tex.BuildOptions) (*md2tex.BuildResult, error)
}

// ConfigData contains the data needed to configure a server.
type ConfigData struct {
	Log             *slog.Logger
	ListenAddr      string
	Converter       Converter
	Builder         Builder
	Jobs            *jobs.Store
	ResourcesDir    string // Class files and images; also the template list source
	DefaultTemplate string // Used when a request names none
	WebDir          string // Static frontend served at /, empty = none
	TokenHash       []byte // bcrypt hash guarding /api/render, empty = open
	MaxRequestSize  int64
}

// Server is the job service.
type Server struct {
	log        *slog.Logger
	cfg        ConfigData
	handler    http.Handler
	httpServer http.Server
}

// New creates a new job server.
func New(cfg ConfigData) *Server {
	if cfg.Log == nil {
		cfg.Log = slog.New(slog.DiscardHandler)
	}
	if cfg.MaxRequestSize <= 0 {
		cfg.MaxRequestSize = DefaultMaxRequestSize
	}
	if cfg.DefaultTemplate == "" {
		cfg.DefaultTemplate = md2tex.DefaultTemplate
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8000"
	}

	srv := &Server{log: cfg.Log, cfg: cfg}

	mwReqID := reqid.Config{WithContext: true}
	mwLogReq := logging.ReqConfig{
		Logger: cfg.Log, Level: slog.LevelDebug,
		Message: "ServeHTTP", WithRequestID: true, WithRemote: true}
	mwLogResp := logging.RespConfig{Logger: cfg.Log, Level: slog.LevelDebug,
		Message: "/ServeHTTP", WithRequestID: true}
	mw := middleware.NewChain(mwReqID.Build(), mwLogReq.Build(), mwLogResp.Build())

	srv.handler = middleware.Apply(mw, allowCORS(srv.routes()))
	srv.httpServer = http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return srv
}

// Handler returns the complete handler, middleware included.
func (srv *Server) Handler() http.Handler {
	return srv.handler
}

func (srv *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", srv.handleHealth)
	mux.HandleFunc("GET /api/templates", srv.handleTemplates)
	mux.Handle("POST /api/render", srv.requireToken(http.HandlerFunc(srv.handleRender)))
	mux.Handle("GET /build/", http.StripPrefix("/build/", artifactServer(srv.cfg.Jobs)))
	if srv.cfg.WebDir != "" && fileutil.DirExists(srv.cfg.WebDir) {
		mux.Handle("GET /", http.FileServer(http.Dir(srv.cfg.WebDir)))
	}
	return mux
}

// Run listens on the configured address and serves until ctx is done, then
// shuts down gracefully.
func (srv *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", srv.httpServer.Addr)
	if err != nil {
		return err
	}
	srv.log.Info("Listening", "addr", ln.Addr().String(), "build", srv.cfg.Jobs.Root())

	errc := make(chan error, 1)
	go func() { errc <- srv.httpServer.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	srv.log.Info("Shutting down")
	return srv.httpServer.Shutdown(shutdownCtx)
}
