// Package server serves the admin UI over echo: full pages on the
// browser-visible routes and the screen components under view.ComponentPath.
package server

import (
	"context"
	"crypto/rand"
	"errors"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/pthm/geoadmin/internal/screens"
	"github.com/pthm/geoadmin/internal/view"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	echo    *echo.Echo
	reg     *view.Registry
	screens *screens.Screens
	logger  zerolog.Logger
}

// New wires the screens to backend. An empty key is replaced by a random
// one, which invalidates every outstanding link when the process restarts.
func New(backend screens.Backend, key []byte, logger zerolog.Logger) *Server {
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic("server: generate props key: " + err.Error())
		}
		logger.Warn().Msg("no props key configured; using a random key")
	}

	reg := view.NewRegistry(key)
	reg.Logger = logger

	s := &Server{
		echo:   echo.New(),
		reg:    reg,
		logger: logger,
	}
	reg.OnError = s.componentError
	s.screens = screens.Init(backend, reg)

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.httpError

	e.Use(middleware.RequestID())
	e.Use(s.contextLogger)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := zerolog.Ctx(c.Request().Context()).Info()
			if v.Error != nil {
				ev = zerolog.Ctx(c.Request().Context()).Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.Any(view.ComponentPath+"*", echo.WrapHandler(reg.Handler()))
	s.mountPages()
	return s
}

// contextLogger attaches a request-scoped logger to the request context.
// Components and the backend client log through zerolog.Ctx.
func (s *Server) contextLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		l := s.logger.With().Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).Logger()
		c.SetRequest(req.WithContext(l.WithContext(req.Context())))
		return next(c)
	}
}

// Handler exposes the router, for tests and for embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info().Str("listen", addr).Msg("serving")
		errc <- s.echo.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down")
	graceful, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(graceful); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// page writes body inside the layout.
func page(c echo.Context, status int, title string, body templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return screens.Layout(title, body).Render(c.Request().Context(), c.Response())
}

func statusOf(err error) int {
	switch {
	case view.IsNotFound(err):
		return http.StatusNotFound
	case view.IsBadRequest(err):
		return http.StatusBadRequest
	case errors.Is(err, view.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	}
	return http.StatusInternalServerError
}

// componentError renders a failed component request as an inline error
// box. The cause is logged, not shown.
func (s *Server) componentError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	w.Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	w.WriteHeader(status)
	_ = view.ErrorComponent(errors.New(http.StatusText(status))).Render(r.Context(), w)
}

func (s *Server) httpError(err error, c echo.Context) {
	// the request logger handles errors first; they bubble up here again
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusNotFound {
		if perr := page(c, http.StatusNotFound, "Not found", screens.NotFound()); perr != nil {
			zerolog.Ctx(c.Request().Context()).Error().Err(perr).Msg("render not found page")
		}
		return
	}
	s.echo.DefaultHTTPErrorHandler(err, c)
}
