package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/ThinkInAIXYZ/go-mcp/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nutristat/internal/reference"
	"nutristat/internal/storage"
)

type Config struct {
	Transport string
	Host      string
	Port      int
	DBPath    string
}

// NutritionServer serves the reference table and consumption analyses
// over MCP-style HTTP tool calls.
type NutritionServer struct {
	server     *server.Server
	httpServer *http.Server
	storage    *storage.SQLiteStore
	table      *reference.Table
	logger     *slog.Logger
	config     *Config
}

func NewNutritionServer(cfg *Config, logger *slog.Logger) (*NutritionServer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	table := reference.Default()

	stor, err := storage.NewSQLiteStore(cfg.DBPath, table)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	nutritionServer := &NutritionServer{
		storage: stor,
		table:   table,
		logger:  logger,
		config:  cfg,
	}

	// Create MCP server (without transport, we handle HTTP manually)
	mcpServer, err := server.NewServer(
		nil,
		server.WithServerInfo(protocol.Implementation{
			Name:    "nutristat",
			Version: "1.0.0",
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP server: %w", err)
	}

	nutritionServer.server = mcpServer

	if err := nutritionServer.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", nutritionServer.handleHTTP)
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	nutritionServer.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	return nutritionServer, nil
}

func (s *NutritionServer) handleHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	var request protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	handler, ok := s.toolHandlers()[request.Name]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown tool: %s", request.Name), http.StatusNotFound)
		return
	}

	toolCalls.WithLabelValues(request.Name).Inc()
	result, err := handler(&request)
	if err != nil {
		toolErrors.WithLabelValues(request.Name).Inc()
		s.logger.Warn("tool call failed", "tool", request.Name, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Error("failed to encode response", "tool", request.Name, "error", err)
	}
}

func (s *NutritionServer) Start(ctx context.Context) error {
	s.logger.Info("starting nutrition stats server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *NutritionServer) Stop() error {
	if s.storage != nil {
		s.storage.Close()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(context.Background())
	}
	return nil
}

func (s *NutritionServer) createJSONResponse(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
