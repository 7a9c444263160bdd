// SPDX-License-Identifier: MIT
// Package: crt/server
//
// server.go - HTTP API that hands trial sequences to the browser runtime and
// audits the sessions it logs back.

package server

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nwrim/continuous-recognition-task-jsPsych/sequence"
	"github.com/nwrim/continuous-recognition-task-jsPsych/timeline"
)

// DefaultAddr is used when Config.Addr is empty.
const DefaultAddr = "127.0.0.1:3000"

// Config is everything the server needs to build sequences.
type Config struct {
	Addr     string
	Pools    sequence.Pools
	Fixation sequence.Item
	Defaults sequence.Params // used for every parameter a request omits
	Timing   timeline.Timing
}

// Server provides the sequence API.
type Server struct {
	addr      string
	pools     sequence.Pools
	fixation  sequence.Item
	defaults  sequence.Params
	timing    timeline.Timing
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a server; nothing listens until Start.
func NewServer(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Timing == (timeline.Timing{}) {
		cfg.Timing = timeline.DefaultTiming()
	}
	if cfg.Fixation.ID == "" {
		cfg.Fixation.ID = sequence.DefaultFixationID
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		addr:     cfg.Addr,
		pools:    cfg.Pools,
		fixation: cfg.Fixation,
		defaults: cfg.Defaults,
		timing:   cfg.Timing,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Handler returns the routed engine without listening.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/counts", s.handleCounts)
	r.POST("/api/sequence", s.handleSequence)
	r.POST("/api/validate", s.handleValidate)

	return r
}

// Start begins serving HTTP requests in the background.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.addr = listener.Addr().String()
	s.startTime = time.Now()

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("server: serve failed: %v", err)
		}
	}()
	log.Printf("server: listening on %s (%d target images, %d filler images)", s.addr, len(s.pools.Targets), len(s.pools.Fillers))

	return nil
}

// Addr returns the listen address; after Start it carries the bound port.
func (s *Server) Addr() string {
	return s.addr
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
