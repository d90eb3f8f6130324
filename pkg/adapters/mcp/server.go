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

	"github.com/aretw0/nfasim"
	"github.com/aretw0/nfasim/internal/presentation/graph"
	"github.com/aretw0/nfasim/pkg/domain"
	"github.com/aretw0/nfasim/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// AutomataURI is the resource listing every available automaton.
const AutomataURI = "nfasim://automata"

// EvaluateArgs are the arguments of the evaluate tool.
type EvaluateArgs struct {
	Name  string `json:"name"`
	Input string `json:"input"`
}

// ClosureArgs are the arguments of the epsilon_closure tool.
type ClosureArgs struct {
	Name   string `json:"name"`
	States string `json:"states"`
}

// ClosureResponse is the structured result of the epsilon_closure tool.
type ClosureResponse struct {
	States []string `json:"states" jsonschema_description:"States reachable through epsilon transitions, seeds included"`
}

// DescribeArgs are the arguments of the describe tool.
type DescribeArgs struct {
	Name string `json:"name"`
}

// DescribeResponse is the structured result of the describe tool.
type DescribeResponse struct {
	Definition *domain.Definition `json:"definition" jsonschema_description:"Normalized automaton definition"`
	Mermaid    string             `json:"mermaid" jsonschema_description:"Mermaid flowchart of the automaton"`
}

// Server wraps the simulation engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.Simulator
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.Simulator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("nfasim-mcp", strings.TrimSpace(nfasim.Version)),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on port until ctx is done.
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
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
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

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_automata
	s.mcpServer.AddTool(mcp.NewTool("list_automata",
		mcp.WithDescription("List the names of every available automaton."),
	), s.handleList)

	// TOOL: evaluate
	evaluateTool := mcp.NewTool("evaluate",
		mcp.WithDescription("Run an input string through an automaton. Reports acceptance, the maximum number of parallel copies and the active states after each symbol."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Automaton name")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string; every character must belong to the alphabet")),
		mcp.WithOutputSchema[domain.Verdict](),
	)
	s.mcpServer.AddTool(evaluateTool, mcp.NewStructuredToolHandler(s.handleEvaluate))

	// TOOL: epsilon_closure
	closureTool := mcp.NewTool("epsilon_closure",
		mcp.WithDescription("Compute the epsilon-closure of one or more states."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Automaton name")),
		mcp.WithString("states", mcp.Required(), mcp.Description("Comma separated state names")),
		mcp.WithOutputSchema[ClosureResponse](),
	)
	s.mcpServer.AddTool(closureTool, mcp.NewStructuredToolHandler(s.handleClosure))

	// TOOL: describe
	describeTool := mcp.NewTool("describe",
		mcp.WithDescription("Return the normalized definition of an automaton and a Mermaid diagram."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Automaton name")),
		mcp.WithOutputSchema[DescribeResponse](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribe))
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.engine.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	if names == nil {
		names = []string{}
	}
	jsonBytes, _ := json.Marshal(names)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleEvaluate(ctx context.Context, request mcp.CallToolRequest, args EvaluateArgs) (domain.Verdict, error) {
	verdict, err := s.engine.Evaluate(ctx, args.Name, args.Input)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("evaluate failed: %w", err)
	}
	return verdict, nil
}

func (s *Server) handleClosure(ctx context.Context, request mcp.CallToolRequest, args ClosureArgs) (ClosureResponse, error) {
	var seeds []string
	for _, name := range strings.Split(args.States, ",") {
		if name = strings.TrimSpace(name); name != "" {
			seeds = append(seeds, name)
		}
	}

	states, err := s.engine.Closure(ctx, args.Name, seeds...)
	if err != nil {
		return ClosureResponse{}, fmt.Errorf("closure failed: %w", err)
	}
	return ClosureResponse{States: states}, nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args DescribeArgs) (DescribeResponse, error) {
	def, err := s.engine.Describe(ctx, args.Name)
	if err != nil {
		return DescribeResponse{}, fmt.Errorf("describe failed: %w", err)
	}
	return DescribeResponse{
		Definition: def,
		Mermaid:    graph.GenerateMermaid(*def, nil),
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: nfasim://automata
	s.mcpServer.AddResource(mcp.NewResource(AutomataURI, "Available automata",
		mcp.WithMIMEType("application/json"),
	), s.readAutomata)
}

func (s *Server) readAutomata(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names, err := s.engine.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list automata: %w", err)
	}

	defs := make([]*domain.Definition, 0, len(names))
	for _, name := range names {
		def, err := s.engine.Describe(ctx, name)
		if err != nil {
			s.logger.Warn("skipping automaton", "automaton", name, "error", err)
			continue
		}
		defs = append(defs, def)
	}
	jsonBytes, _ := json.Marshal(defs)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      AutomataURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
