// Package mcp exposes stripehelper operations as Model Context Protocol
// tools over stdio, so agents can run billing lookups and exports without
// shelling out to the CLI. Only read-only operations are exposed; mutating
// endpoints stay CLI-only.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/billdeck/stripehelper"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the MCP server with stripehelper tools.
type Server struct {
	client    *stripehelper.Client
	mcpServer *server.MCPServer
}

// ToolResult represents the result of a tool call.
type ToolResult struct {
	Content string
	IsError bool
}

// ToolInfo represents a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

// NewServer creates a new MCP server with stripehelper tools registered.
func NewServer(client *stripehelper.Client) *Server {
	s := &Server{client: client}

	s.mcpServer = server.NewMCPServer(
		"stripehelper",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// Run starts the MCP server, reading from stdin and writing to stdout.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

// HandleMessage processes a raw JSON-RPC message and returns a response.
// This is primarily for testing the MCP protocol layer.
func (s *Server) HandleMessage(ctx context.Context, message json.RawMessage) mcp.JSONRPCMessage {
	return s.mcpServer.HandleMessage(ctx, message)
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	return []ToolInfo{
		{Name: "stripe_get_balance", Description: "Retrieve the Stripe account balance"},
		{Name: "stripe_get_customer", Description: "Retrieve a Stripe customer by ID"},
		{Name: "stripe_get_subscription", Description: "Retrieve a Stripe subscription by ID"},
		{Name: "stripe_export_subscriptions", Description: "Export a plan's subscriptions to enriched CSV"},
	}
}

// CallTool executes a tool by name with the given arguments.
// This is used for testing and direct invocation.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (*ToolResult, error) {
	switch name {
	case "stripe_get_balance":
		return s.handleGetBalance(ctx, args)
	case "stripe_get_customer":
		return s.handleGetCustomer(ctx, args)
	case "stripe_get_subscription":
		return s.handleGetSubscription(ctx, args)
	case "stripe_export_subscriptions":
		return s.handleExport(ctx, args)
	default:
		return &ToolResult{Content: fmt.Sprintf("unknown tool: %s", name), IsError: true}, nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("stripe_get_balance",
		mcp.WithDescription("Retrieve the Stripe account balance. Read-only."),
	), s.mcpHandleGetBalance)

	s.mcpServer.AddTool(mcp.NewTool("stripe_get_customer",
		mcp.WithDescription("Retrieve a Stripe customer by ID. Read-only."),
		mcp.WithString("id",
			mcp.Description("Customer ID (cus_...)"),
			mcp.Required(),
		),
	), s.mcpHandleGetCustomer)

	s.mcpServer.AddTool(mcp.NewTool("stripe_get_subscription",
		mcp.WithDescription("Retrieve a Stripe subscription by ID. Read-only."),
		mcp.WithString("id",
			mcp.Description("Subscription ID (sub_...)"),
			mcp.Required(),
		),
	), s.mcpHandleGetSubscription)

	s.mcpServer.AddTool(mcp.NewTool("stripe_export_subscriptions",
		mcp.WithDescription("Export every subscription for a plan created inside the inclusive date window as CSV, enriched with order/user metadata from the relational store."),
		mcp.WithString("plan",
			mcp.Description("Plan/price ID to filter by"),
			mcp.Required(),
		),
		mcp.WithString("gte",
			mcp.Description("Window lower bound, YYYY-MM-DD or RFC 3339"),
			mcp.Required(),
		),
		mcp.WithString("lte",
			mcp.Description("Window upper bound, YYYY-MM-DD or RFC 3339"),
			mcp.Required(),
		),
	), s.mcpHandleExport)
}

// MCP handlers that wrap internal handlers

func (s *Server) mcpHandleGetBalance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleGetBalance(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleGetCustomer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleGetCustomer(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleGetSubscription(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleGetSubscription(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleExport(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func toMCPResult(r *ToolResult) *mcp.CallToolResult {
	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: r.Content,
			},
		},
	}
	if r.IsError {
		result.IsError = true
	}
	return result
}

// Internal handlers

func (s *Server) handleGetBalance(ctx context.Context, _ map[string]any) (*ToolResult, error) {
	balance, err := s.client.GetBalance(ctx)
	if err != nil {
		return &ToolResult{Content: fmt.Sprintf("get balance: %v", err), IsError: true}, nil
	}
	return jsonResult(balance)
}

func (s *Server) handleGetCustomer(ctx context.Context, args map[string]any) (*ToolResult, error) {
	id, ok := args["id"].(string)
	if !ok || id == "" {
		return &ToolResult{Content: "id is required", IsError: true}, nil
	}

	customer, err := s.client.GetCustomer(ctx, id)
	if err != nil {
		return &ToolResult{Content: fmt.Sprintf("get customer %s: %v", id, err), IsError: true}, nil
	}
	return jsonResult(customer)
}

func (s *Server) handleGetSubscription(ctx context.Context, args map[string]any) (*ToolResult, error) {
	id, ok := args["id"].(string)
	if !ok || id == "" {
		return &ToolResult{Content: "id is required", IsError: true}, nil
	}

	sub, err := s.client.GetSubscription(ctx, id)
	if err != nil {
		return &ToolResult{Content: fmt.Sprintf("get subscription %s: %v", id, err), IsError: true}, nil
	}
	return jsonResult(sub)
}

func (s *Server) handleExport(ctx context.Context, args map[string]any) (*ToolResult, error) {
	plan, ok := args["plan"].(string)
	if !ok || plan == "" {
		return &ToolResult{Content: "plan is required", IsError: true}, nil
	}

	gte, err := parseToolDate(args, "gte")
	if err != nil {
		return &ToolResult{Content: err.Error(), IsError: true}, nil
	}
	lte, err := parseToolDate(args, "lte")
	if err != nil {
		return &ToolResult{Content: err.Error(), IsError: true}, nil
	}

	result, err := s.client.ExportSubscriptionsByPlan(ctx, stripehelper.ExportParams{
		PlanName: plan,
		GTE:      gte,
		LTE:      lte,
	})
	if err != nil {
		return &ToolResult{Content: fmt.Sprintf("export subscriptions for %s: %v", plan, err), IsError: true}, nil
	}

	return &ToolResult{Content: result.CSV}, nil
}

func parseToolDate(args map[string]any, key string) (time.Time, error) {
	raw, ok := args[key].(string)
	if !ok || raw == "" {
		return time.Time{}, fmt.Errorf("%s is required", key)
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: expected YYYY-MM-DD or RFC 3339, got %q", key, raw)
}

func jsonResult(v any) (*ToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return &ToolResult{Content: string(b)}, nil
}
