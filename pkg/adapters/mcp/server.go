// Package mcp exposes the BOM tree service as an MCP server, so agent
// tooling can query assembly structures as tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/partstack/bomtree"
	"github.com/partstack/bomtree/pkg/builder"
	"github.com/partstack/bomtree/pkg/domain"
)

// TreeResponse is the structured result of the get_bom_tree tool.
type TreeResponse struct {
	Tree    *domain.TreeNode `json:"tree" jsonschema_description:"The built BOM tree, root node first"`
	Metrics domain.Metrics   `json:"metrics" jsonschema_description:"Max depth and total node count of the tree"`
}

// Engine defines the interface required by the MCP server.
type Engine interface {
	BuildTree(ctx context.Context, partID int, opts builder.Options) (*domain.TreeNode, error)
	ListAssemblies(ctx context.Context, limit int) ([]domain.Part, error)
	Defaults() builder.Options
}

// Server wraps the bomtree engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("bomtree-mcp", strings.TrimSpace(bomtree.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: get_bom_tree
	treeTool := mcp.NewTool("get_bom_tree",
		mcp.WithDescription("Build the BOM assembly tree for a part. Cycle edges are flagged and never expanded."),
		mcp.WithNumber("part_id", mcp.Required(), mcp.Description("The id of the root part")),
		mcp.WithNumber("max_depth", mcp.Description("Recursion limit (clamped to 0..25, default 10)")),
		mcp.WithBoolean("include_substitutes", mcp.Description("Resolve substitute part summaries on each edge")),
		mcp.WithOutputSchema[TreeResponse](),
	)
	s.mcpServer.AddTool(treeTool, mcp.NewStructuredToolHandler(s.handleGetTree))

	// TOOL: list_assemblies
	s.mcpServer.AddTool(mcp.NewTool("list_assemblies",
		mcp.WithDescription("List parts flagged as assemblies, ordered by name."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of parts to return (default 25)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := 25
		if raw, ok := request.GetArguments()["limit"].(float64); ok && raw > 0 {
			limit = int(raw)
		}

		assemblies, err := s.engine.ListAssemblies(ctx, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(assemblies)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleGetTree(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TreeResponse, error) {
	rawID, ok := args["part_id"].(float64)
	if !ok {
		return TreeResponse{}, fmt.Errorf("part_id is required and must be a number")
	}

	opts := s.engine.Defaults()
	if rawDepth, ok := args["max_depth"].(float64); ok {
		opts.MaxDepth = domain.ClampDepth(int(rawDepth))
	}
	if include, ok := args["include_substitutes"].(bool); ok {
		opts.IncludeSubstitutes = include
	}

	tree, err := s.engine.BuildTree(ctx, int(rawID), opts)
	if err != nil {
		if errors.Is(err, domain.ErrPartNotFound) {
			return TreeResponse{}, fmt.Errorf("part %d not found", int(rawID))
		}
		return TreeResponse{}, fmt.Errorf("tree build failed: %w", err)
	}

	return TreeResponse{
		Tree:    tree,
		Metrics: domain.ComputeMetrics(tree),
	}, nil
}
