package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(srv *mcp.Server, svc *Service) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_items",
		Description: "List agenda items in store order, optionally filtered by category, date range or completion.",
	}, handle(svc.ListItems))
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "items_for_date",
		Description: "List the items of one day: all-day items first, then timed items by time.",
	}, handle(svc.ItemsForDate))
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_item",
		Description: "Create an agenda item. Title is required; date defaults to today, category to work and priority to medium.",
	}, handle(svc.CreateItem))
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "update_item",
		Description: "Change the fields of an existing item. Fields left empty keep their value.",
	}, handle(svc.UpdateItem))
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_item",
		Description: "Delete an item by id.",
	}, handle(svc.DeleteItem))
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "toggle_item",
		Description: "Flip the completed flag of an item.",
	}, handle(svc.ToggleItem))
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "analyze_week",
		Description: "Weekly analysis (Monday to Sunday) of the week containing a date: totals, items per category, productivity and work/life balance.",
	}, handle(svc.AnalyzeWeek))
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "suggest",
		Description: "Planning suggestions for the week containing a date.",
	}, handle(svc.Suggest))
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "daily_quote",
		Description: "Today's motivational quote.",
	}, handle(func(ctx context.Context, _ QuoteInput) (QuoteResult, error) {
		return svc.Quote(ctx)
	}))
}

// handle adapts a service method to a tool handler. Service errors become
// tool errors so the model can read and correct them.
func handle[In, Out any](fn func(context.Context, In) (Out, error)) mcp.ToolHandlerFor[In, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		out, err := fn(ctx, in)
		if err != nil {
			return toolError("%v", err), nil, nil
		}
		return toolJSON(out)
	}
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("failed to encode result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
