package web

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jaminalder/timetravel-tic-tac-toe/internal/app"
	"github.com/jaminalder/timetravel-tic-tac-toe/internal/domain"
)

// Options tunes the HTTP front-end.
type Options struct {
	BoardSize         int
	HeartbeatInterval time.Duration
	Logger            *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.BoardSize == 0 {
		o.BoardSize = domain.DefaultSize
	}
	if o.HeartbeatInterval <= 0 {
		o.HeartbeatInterval = 15 * time.Second
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// NewServer wires routes and returns an http.Handler. It installs a renderer
// on s so subscribers receive the game fragment after every intent.
func NewServer(s *app.Service, opts Options) http.Handler {
	opts = opts.withDefaults()
	log := opts.Logger.With("component", "web")
	h := &handlers{
		svc:       s,
		tpl:       loadTemplates(),
		log:       log,
		size:      opts.BoardSize,
		heartbeat: opts.HeartbeatInterval,
	}
	s.SetRenderer(func(sess app.Session) []byte { return h.renderGame(sess, "") })

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))
	r.Get("/", h.index)
	r.Post("/game", h.create)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.view)
		r.Post("/play", h.play)
		r.Post("/jump", h.jump)
		r.Post("/sort", h.sort)
		r.Get("/events", h.events)
	})
	return r
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}
