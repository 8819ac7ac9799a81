// Package mcp exposes the model registry to MCP clients: decode tools for
// assistants plus a resource listing the registered models.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/lattice"
	"github.com/aretw0/lattice/pkg/registry"
	"github.com/aretw0/lattice/pkg/schema"
)

// DecodeResponse is the structured output of the decode_sequence tool.
type DecodeResponse struct {
	Model  string   `json:"model" jsonschema_description:"Name of the model that decoded the sequence"`
	Path   []int    `json:"path" jsonschema_description:"Most likely state sequence as indices"`
	States []string `json:"states,omitempty" jsonschema_description:"Most likely state sequence as labels, when the model declares them"`
}

// Service defines the registry operations the MCP server needs. Implemented
// by *registry.Registry.
type Service interface {
	DecodeTokens(ctx context.Context, name string, tokens []string) (*registry.DecodeResult, error)
	Document(ctx context.Context, name string) (*schema.Document, error)
	List(ctx context.Context) ([]string, error)
}

// Server wraps a model registry and exposes it as an MCP server.
type Server struct {
	service   Service
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance over a model service.
func NewServer(service Service) *Server {
	s := &Server{
		service:   service,
		mcpServer: server.NewMCPServer("lattice-mcp", strings.TrimSpace(lattice.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: decode_sequence
	decodeTool := mcp.NewTool("decode_sequence",
		mcp.WithDescription("Decode an observation sequence with a registered model, returning the most likely hidden state path. The sequence is whitespace-separated symbol labels, or one compact run of single-character symbols (e.g. a DNA string)."),
		mcp.WithString("model", mcp.Required(), mcp.Description("Name of the registered model")),
		mcp.WithString("sequence", mcp.Required(), mcp.Description("Observation sequence, e.g. \"H H T T T\" or \"GATTACA\"")),
		mcp.WithOutputSchema[DecodeResponse](),
	)
	s.mcpServer.AddTool(decodeTool, mcp.NewStructuredToolHandler(s.handleDecode))

	// TOOL: list_models
	s.mcpServer.AddTool(mcp.NewTool("list_models",
		mcp.WithDescription("List the names of all registered models."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := s.service.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(names)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: get_model
	s.mcpServer.AddTool(mcp.NewTool("get_model",
		mcp.WithDescription("Get the full definition of a registered model: state and symbol labels plus its probability tables."),
		mcp.WithString("model", mcp.Required(), mcp.Description("Name of the registered model")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("model")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		doc, err := s.service.Document(ctx, name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("get failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(doc)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleDecode(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DecodeResponse, error) {
	name, _ := args["model"].(string)
	sequence, _ := args["sequence"].(string)
	if name == "" {
		return DecodeResponse{}, fmt.Errorf("model is required")
	}

	tokens := strings.Fields(sequence)
	if len(tokens) == 0 {
		return DecodeResponse{}, fmt.Errorf("sequence is empty")
	}

	result, err := s.service.DecodeTokens(ctx, name, tokens)
	if err != nil {
		return DecodeResponse{}, fmt.Errorf("decode failed: %w", err)
	}

	return DecodeResponse{
		Model:  result.Model,
		Path:   result.Path,
		States: result.States,
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: lattice://models
	s.mcpServer.AddResource(mcp.NewResource("lattice://models", "Registered Models",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.service.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
		jsonBytes, _ := json.Marshal(names)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "lattice://models",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
