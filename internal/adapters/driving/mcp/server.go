package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/crhp-archive/internal/logger"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

const instructions = `Read-only access to the civil rights oral history archive.
Interview ids are logical ids such as "Fannie Lou Hamer"; they are normalized
for the active collection. Missing documents are reported as not found.`

// Server exposes archive reads and the lesson plan as MCP tools and resources.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer validates ports and registers tools and resources.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(
			&mcp.Implementation{Name: "crhp", Version: Version},
			&mcp.ServerOptions{Instructions: instructions},
		),
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// Run serves over stdio until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("mcp: serving on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP transport for the server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is done.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp: shutdown: %v", err)
		}
	}()

	logger.Debug("mcp: serving on %s", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
