// ABOUTME: MCP tool definitions and registration for the vitus server
// ABOUTME: Defines JSON schemas for the medication and cure tracking tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/vitus/internal/core"
	"github.com/harper/vitus/internal/llm"
)

// RegisterTools registers all MCP tools with the server. llmClient may be
// nil; enrichment then reports an error result.
func RegisterTools(server *mcpserver.MCPServer, svc *core.Service, llmClient *llm.Client) *Handlers {
	handlers := &Handlers{
		svc: svc,
		llm: llmClient,
	}

	server.AddTool(mcp.Tool{
		Name:        "list_medications",
		Description: "List all tracked medications with quantities, dosage and metadata.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListMedications)

	server.AddTool(mcp.Tool{
		Name:        "upsert_medication",
		Description: "Create or update a medication. Omitted fields keep their defaults; an omitted id creates a new record.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Medication id to update; omit to create",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Medication name (required)",
				},
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Form, e.g. tablets, drops",
				},
				"total_quantity": map[string]interface{}{
					"type":        "number",
					"description": "Nominal pack size",
				},
				"remaining_quantity": map[string]interface{}{
					"type":        "number",
					"description": "Doses left in the pack",
				},
				"dose_amount": map[string]interface{}{
					"type":        "number",
					"description": "Quantity consumed per dose (default 1)",
				},
				"dose_text": map[string]interface{}{
					"type":        "string",
					"description": "Free-form dosing instructions",
				},
				"expiration": map[string]interface{}{
					"type":        "string",
					"description": "Expiration date YYYY-MM-DD",
				},
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Category, e.g. Heart, Sleep, Other",
				},
				"notes": map[string]interface{}{
					"type":        "string",
					"description": "Free-form notes",
				},
			},
			Required: []string{"name"},
		},
	}, handlers.UpsertMedication)

	server.AddTool(mcp.Tool{
		Name:        "take_dose",
		Description: "Consume one dose of a medication, decrementing its remaining quantity.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"medication_id": map[string]interface{}{
					"type":        "string",
					"description": "Medication id",
				},
			},
			Required: []string{"medication_id"},
		},
	}, handlers.TakeDose)

	server.AddTool(mcp.Tool{
		Name:        "list_cures",
		Description: "List treatment cycles (cures). With active_only, only cures running today, annotated with days left.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"active_only": map[string]interface{}{
					"type":        "boolean",
					"description": "Only cures active today (default false)",
				},
			},
		},
	}, handlers.ListCures)

	server.AddTool(mcp.Tool{
		Name:        "upsert_cure",
		Description: "Create or update a cure: a named treatment cycle over a date range linking medication ids.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Cure id to update; omit to create",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Cure name (required)",
				},
				"start": map[string]interface{}{
					"type":        "string",
					"description": "Start date YYYY-MM-DD (required)",
				},
				"end": map[string]interface{}{
					"type":        "string",
					"description": "End date YYYY-MM-DD (required)",
				},
				"medication_ids": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Member medication ids",
				},
			},
			Required: []string{"name", "start", "end"},
		},
	}, handlers.UpsertCure)

	server.AddTool(mcp.Tool{
		Name:        "dose_slots",
		Description: "List the dose slots due on a date (default today), with taken flags.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"date": map[string]interface{}{
					"type":        "string",
					"description": "Date YYYY-MM-DD (default today)",
				},
			},
		},
	}, handlers.DoseSlots)

	server.AddTool(mcp.Tool{
		Name:        "mark_dose_taken",
		Description: "Mark a dose slot as taken; this also consumes inventory.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"medication_id": map[string]interface{}{
					"type":        "string",
					"description": "Medication id",
				},
				"date": map[string]interface{}{
					"type":        "string",
					"description": "Slot date YYYY-MM-DD",
				},
				"time": map[string]interface{}{
					"type":        "string",
					"description": "Slot time HH:MM",
				},
			},
			Required: []string{"medication_id", "date", "time"},
		},
	}, handlers.MarkDoseTaken)

	server.AddTool(mcp.Tool{
		Name:        "record_missed_dose",
		Description: "Record that a dose slot's time passed without being taken. Duplicates for the same slot are ignored.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"medication_id": map[string]interface{}{
					"type":        "string",
					"description": "Medication id",
				},
				"medication_name": map[string]interface{}{
					"type":        "string",
					"description": "Medication name snapshot",
				},
				"date": map[string]interface{}{
					"type":        "string",
					"description": "Slot date YYYY-MM-DD",
				},
				"time": map[string]interface{}{
					"type":        "string",
					"description": "Slot time HH:MM",
				},
			},
			Required: []string{"medication_id", "date", "time"},
		},
	}, handlers.RecordMissedDose)

	server.AddTool(mcp.Tool{
		Name:        "list_archive",
		Description: "List archived cures with their adherence summaries.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListArchive)

	server.AddTool(mcp.Tool{
		Name:        "enrich_medication",
		Description: "Enrich a medication with AI-suggested purpose, category, dosing and warnings, and store the result.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"medication_id": map[string]interface{}{
					"type":        "string",
					"description": "Medication id",
				},
			},
			Required: []string{"medication_id"},
		},
	}, handlers.EnrichMedication)

	return handlers
}
