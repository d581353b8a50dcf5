// Package mcp provides an MCP (Model Context Protocol) server for qwalk.
package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/TheMathDoctor/random-walks/internal/config"
	"github.com/TheMathDoctor/random-walks/internal/store"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP SDK server and provides qwalk-specific functionality.
type Server struct {
	server   *sdk.Server
	store    store.RunStore
	defaults config.WalkConfig
}

// Config holds server configuration.
type Config struct {
	Name     string // Server name (e.g., "qwalk")
	Version  string // Server version
	StoreDir string // Directory holding the run database
	Defaults config.WalkConfig
}

// NewServer creates a new MCP server with qwalk tools.
func NewServer(cfg *Config) (*Server, error) {
	runStore, err := store.NewSQLiteRunStore(cfg.StoreDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create run store: %w", err)
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, req *sdk.InitializedRequest) {
			// Client initialized, ready to serve
		},
	})

	s := &Server{
		server:   mcpServer,
		store:    runStore,
		defaults: cfg.Defaults,
	}

	s.registerTools()

	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	err := s.server.Run(ctx, &sdk.StdioTransport{})

	s.store.Close()

	return err
}

// Close closes the server and releases resources.
func (s *Server) Close() error {
	return s.store.Close()
}

// registerTools registers all qwalk MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "qwalk_quantum",
		Description: "Run a coined quantum walk on a cycle and sample the position distribution",
	}, s.handleQuantum)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "qwalk_classical",
		Description: "Run a classical random walk on a cycle and sample the position distribution",
	}, s.handleClassical)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "qwalk_compare",
		Description: "Run matched classical and quantum walks and compare their spread",
	}, s.handleCompare)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "qwalk_runs",
		Description: "List stored walk runs, newest first",
	}, s.handleRuns)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "qwalk_get",
		Description: "Get a stored run by ID, including its full distribution",
	}, s.handleGet)
}
