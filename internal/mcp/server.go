// Package mcp provides an MCP (Model Context Protocol) server exposing the
// simulation engine as typed tools over stdio.
package mcp

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP SDK server with the qemd tools.
type Server struct {
	server *sdk.Server
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "qemd")
	Version string // Server version
}

// NewServer creates a new MCP server with the qemd tools registered.
func NewServer(cfg *Config) *Server {
	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	s := &Server{server: mcpServer}
	s.registerTools()
	return s
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

	return s.server.Run(ctx, &sdk.StdioTransport{})
}
