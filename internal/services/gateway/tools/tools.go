// Package tools exposes the gateway actions as MCP tools so hub agents can
// call them without going through the REST endpoints.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/agenthub/internal/services/gateway"
	"github.com/louisbranch/agenthub/internal/services/gateway/domain"
)

const (
	serverName    = "agenthub-gateway"
	serverVersion = "0.1.0"

	statusOK = "ok"
)

// ActionResult is the structured output shared by every tool.
type ActionResult struct {
	Status   string         `json:"status" jsonschema:"ok when the row was inserted"`
	Document map[string]any `json:"document,omitempty" jsonschema:"stored document row, for amendments"`
}

// FollowUpTool defines the follow-up tool.
func FollowUpTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "crm_followup",
		Description: "Logs an outbound follow-up message for a client",
		InputSchema: domain.FollowUpSchema,
	}
}

// AmendTool defines the contract amendment tool.
func AmendTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "crm_amend",
		Description: "Creates a draft contract amendment document for a client",
		InputSchema: domain.AmendSchema,
	}
}

// TaskTool defines the task creation tool.
func TaskTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "crm_task",
		Description: "Creates an open task event, optionally tied to a client",
		InputSchema: domain.TaskSchema,
	}
}

// ReminderTool defines the reminder tool.
func ReminderTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "crm_reminder",
		Description: "Schedules a recurring reminder event for a client",
		InputSchema: domain.ReminderSchema,
	}
}

// Arguments are raw tool arguments. Handlers decode them through the domain
// decoders so tools and REST endpoints accept exactly the same payloads.
type Arguments map[string]any

func decodeArgs[T any](args Arguments, decode func([]byte) (T, error)) (T, error) {
	body, err := json.Marshal(args)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("encode arguments: %w", err)
	}
	return decode(body)
}

// FollowUpHandler logs a follow-up. An empty channel falls back to email.
func FollowUpHandler(svc *gateway.Service) mcp.ToolHandlerFor[Arguments, ActionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args Arguments) (*mcp.CallToolResult, ActionResult, error) {
		input, err := decodeArgs(args, domain.DecodeFollowUp)
		if err != nil {
			return nil, ActionResult{}, err
		}
		if input.Channel == "" {
			input.Channel = domain.DefaultChannel
		}
		if err := svc.SubmitFollowUp(ctx, input); err != nil {
			return nil, ActionResult{}, err
		}
		return nil, ActionResult{Status: statusOK}, nil
	}
}

// AmendHandler creates a draft amendment and echoes the stored document.
func AmendHandler(svc *gateway.Service) mcp.ToolHandlerFor[Arguments, ActionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args Arguments) (*mcp.CallToolResult, ActionResult, error) {
		input, err := decodeArgs(args, domain.DecodeAmend)
		if err != nil {
			return nil, ActionResult{}, err
		}
		doc, err := svc.SubmitAmendment(ctx, input)
		if err != nil {
			return nil, ActionResult{}, err
		}
		return nil, ActionResult{Status: statusOK, Document: doc}, nil
	}
}

// TaskHandler creates an open task.
func TaskHandler(svc *gateway.Service) mcp.ToolHandlerFor[Arguments, ActionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args Arguments) (*mcp.CallToolResult, ActionResult, error) {
		input, err := decodeArgs(args, domain.DecodeTask)
		if err != nil {
			return nil, ActionResult{}, err
		}
		if err := svc.CreateTask(ctx, input); err != nil {
			return nil, ActionResult{}, err
		}
		return nil, ActionResult{Status: statusOK}, nil
	}
}

// ReminderHandler schedules a reminder.
func ReminderHandler(svc *gateway.Service) mcp.ToolHandlerFor[Arguments, ActionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args Arguments) (*mcp.CallToolResult, ActionResult, error) {
		input, err := decodeArgs(args, domain.DecodeReminder)
		if err != nil {
			return nil, ActionResult{}, err
		}
		if err := svc.SetReminder(ctx, input); err != nil {
			return nil, ActionResult{}, err
		}
		return nil, ActionResult{Status: statusOK}, nil
	}
}

// NewServer builds an MCP server with every gateway tool registered.
func NewServer(svc *gateway.Service) (*mcp.Server, error) {
	if svc == nil {
		return nil, errors.New("gateway service is required")
	}
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(server, FollowUpTool(), FollowUpHandler(svc))
	mcp.AddTool(server, AmendTool(), AmendHandler(svc))
	mcp.AddTool(server, TaskTool(), TaskHandler(svc))
	mcp.AddTool(server, ReminderTool(), ReminderHandler(svc))
	return server, nil
}

// NewHandler serves the gateway tools over streamable HTTP.
func NewHandler(svc *gateway.Service) (http.Handler, error) {
	server, err := NewServer(svc)
	if err != nil {
		return nil, err
	}
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil), nil
}
