// Package mockserver is an in-memory stand-in for the Karpos backend. It
// implements the endpoint contract the client assumes, including the quirks
// the client has to cope with: refresh-token rotation, payloads nested under
// appointment/patient/doctor keys, and only a subset of the status-update
// routes the client probes for.
package mockserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/karpos/karpos/internal/platform/middleware"
)

const defaultAccessTTL = 15 * time.Minute

type Server struct {
	e         *echo.Echo
	logger    zerolog.Logger
	secret    []byte
	accessTTL time.Duration
	state     *state
}

// Options configures the mock server. Zero values get sensible defaults.
type Options struct {
	Secret    string
	AccessTTL time.Duration
	Logger    zerolog.Logger
}

func New(opts Options) *Server {
	if opts.Secret == "" {
		opts.Secret = "karpos-mock-secret"
	}
	if opts.AccessTTL == 0 {
		opts.AccessTTL = defaultAccessTTL
	}

	s := &Server{
		logger:    opts.Logger,
		secret:    []byte(opts.Secret),
		accessTTL: opts.AccessTTL,
		state:     seed(),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recovery(s.logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(s.logger))

	e.POST("/auth/login", s.handleLogin)
	e.POST("/auth/refresh", s.handleRefresh)
	e.POST("/auth/logout", s.handleLogout)

	api := e.Group("", s.requireAuth)
	api.GET("/appointments", s.handleListAppointments)
	api.POST("/appointments", s.handleCreateAppointment)
	api.GET("/appointments/:id", s.handleGetAppointment)
	api.GET("/appointments/patient/:id", s.handleAppointmentsByPatient)
	api.GET("/appointments/doctor/:id", s.handleAppointmentsByDoctor)
	// Deliberately only one generic status route: the client's prober has to
	// fall through its earlier guesses before landing here.
	api.PUT("/appointments/:id/status", s.handleUpdateStatus)
	api.PATCH("/appointments/:id/cancel", s.handleCancelAppointment)

	api.GET("/patients", s.handleListPatients)
	api.GET("/patients/:id", s.handleGetPatient)
	api.GET("/users/patients", s.handleListPatientsAlt)
	api.GET("/doctors", s.handleListDoctors)
	api.GET("/doctors/:id", s.handleGetDoctor)
	api.GET("/users/doctors", s.handleListDoctorsAlt)

	api.GET("/records/patient/:id", s.handleRecordsByPatient)
	api.GET("/records/:id", s.handleGetRecord)

	api.POST("/iot/command", s.handleIoTCommand)
	api.GET("/iot/status", s.handleIoTStatus)

	s.e = e
	return s
}

// Handler exposes the server for in-process use (httptest, integration
// tests).
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) Start(addr string) error {
	s.logger.Info().Str("addr", addr).Msg("mock karpos backend listening")
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
