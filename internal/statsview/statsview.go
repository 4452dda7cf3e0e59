// Package statsview serves charts of the Go runtime statistics of the
// interpreter process, such as heap usage, goroutines and GC pauses.
package statsview

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

// DefaultAddr is the default listen address of the server.
const DefaultAddr = "localhost:18066"

// pagePath is the path statsview registers its page under.
const pagePath = "/debug/statsview"

// Server runs a statsview chart server in the background.
type Server struct {
	logger  *log.Logger
	addr    string
	manager *statsview.ViewManager
}

// New returns a server listening on addr once started. The listen address
// is global to the statsview package, creating a server replaces it.
func New(logger *log.Logger, addr string) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	viewer.SetConfiguration(viewer.WithAddr(addr))

	return &Server{
		logger:  logger,
		addr:    addr,
		manager: statsview.New(),
	}
}

// URL returns the address of the chart page.
func (s *Server) URL() string {
	return fmt.Sprintf("http://%s%s", s.addr, pagePath)
}

// Start serves the charts in a new goroutine. Listen errors are logged.
func (s *Server) Start() {
	go func() {
		if err := s.manager.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Statistics server failed", log.String("address", s.addr), log.Err(err))
		}
	}()
	s.logger.Info("Statistics server started", log.String("url", s.URL()))
}

// Stop shuts the server down.
func (s *Server) Stop() {
	s.manager.Stop()
}
