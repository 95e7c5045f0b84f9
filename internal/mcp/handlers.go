// ABOUTME: MCP tool handler implementations for the vitus server
// ABOUTME: Validation failures become error results, never protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/vitus/internal/core"
	"github.com/harper/vitus/internal/llm"
	"github.com/harper/vitus/internal/models"
)

// Handlers contains the handler functions for all MCP tools.
type Handlers struct {
	svc *core.Service
	llm *llm.Client
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// ListMedications handles the list_medications tool.
func (h *Handlers) ListMedications(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]interface{}{
		"medications": h.svc.ListMeds(),
	})
}

// UpsertMedication handles the upsert_medication tool.
func (h *Handlers) UpsertMedication(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name argument is required and must be a string"), nil
	}

	med := models.Medication{
		ID:                request.GetString("id", ""),
		Name:              name,
		Type:              request.GetString("type", ""),
		TotalQuantity:     request.GetFloat("total_quantity", 0),
		RemainingQuantity: request.GetFloat("remaining_quantity", 0),
		Dosage: models.Dosage{
			Amount: request.GetFloat("dose_amount", 1),
			Text:   request.GetString("dose_text", ""),
		},
		Expiration: request.GetString("expiration", ""),
		Category:   request.GetString("category", ""),
		Notes:      request.GetString("notes", ""),
	}

	// An update should not silently wipe fields the schema does not
	// carry; merge over the stored record when the id is known.
	if med.ID != "" {
		if existing, err := h.svc.GetMed(med.ID); err == nil {
			existing.Name = med.Name
			if med.Type != "" {
				existing.Type = med.Type
			}
			if med.TotalQuantity > 0 {
				existing.TotalQuantity = med.TotalQuantity
			}
			if med.RemainingQuantity > 0 {
				existing.RemainingQuantity = med.RemainingQuantity
			}
			if med.Dosage.Text != "" {
				existing.Dosage.Text = med.Dosage.Text
			}
			existing.Dosage.Amount = med.Dosage.Amount
			if med.Expiration != "" {
				existing.Expiration = med.Expiration
			}
			if med.Category != "" {
				existing.Category = med.Category
			}
			if med.Notes != "" {
				existing.Notes = med.Notes
			}
			med = existing
		}
	}

	stored, err := h.svc.UpsertMed(med)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("upsert failed: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{"medication": stored})
}

// TakeDose handles the take_dose tool.
func (h *Handlers) TakeDose(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	medID, err := request.RequireString("medication_id")
	if err != nil {
		return mcp.NewToolResultError("medication_id argument is required and must be a string"), nil
	}

	med, err := h.svc.TakeDose(medID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("take dose failed: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{"medication": med})
}

// ListCures handles the list_cures tool.
func (h *Handlers) ListCures(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if request.GetBool("active_only", false) {
		return jsonResult(map[string]interface{}{"cures": h.svc.ListActiveCures()})
	}
	return jsonResult(map[string]interface{}{"cures": h.svc.ListCures()})
}

// UpsertCure handles the upsert_cure tool.
func (h *Handlers) UpsertCure(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name argument is required and must be a string"), nil
	}
	start, err := request.RequireString("start")
	if err != nil {
		return mcp.NewToolResultError("start argument is required and must be a string"), nil
	}
	end, err := request.RequireString("end")
	if err != nil {
		return mcp.NewToolResultError("end argument is required and must be a string"), nil
	}

	cure := models.Cure{
		ID:    request.GetString("id", ""),
		Name:  name,
		Start: start,
		End:   end,
	}

	if args, ok := request.Params.Arguments.(map[string]any); ok {
		if idsRaw, exists := args["medication_ids"]; exists {
			if idsArray, ok := idsRaw.([]interface{}); ok {
				for _, item := range idsArray {
					if id, ok := item.(string); ok {
						cure.MedIDs = append(cure.MedIDs, id)
					}
				}
			}
		}
	}

	// Keep an existing schedule on update.
	if cure.ID != "" {
		for _, existing := range h.svc.ListCures() {
			if existing.ID == cure.ID {
				cure.Schedule = existing.Schedule
				break
			}
		}
	}

	stored, err := h.svc.UpsertCure(cure)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("upsert failed: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{"cure": stored})
}

// DoseSlots handles the dose_slots tool.
func (h *Handlers) DoseSlots(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := request.GetString("date", "")
	if date == "" {
		date = h.svc.Today()
	}

	return jsonResult(map[string]interface{}{
		"date":  date,
		"slots": h.svc.DoseSlotsForDay(date),
	})
}

// MarkDoseTaken handles the mark_dose_taken tool.
func (h *Handlers) MarkDoseTaken(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	medID, err := request.RequireString("medication_id")
	if err != nil {
		return mcp.NewToolResultError("medication_id argument is required and must be a string"), nil
	}
	date, err := request.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date argument is required and must be a string"), nil
	}
	timeOfDay, err := request.RequireString("time")
	if err != nil {
		return mcp.NewToolResultError("time argument is required and must be a string"), nil
	}

	if err := h.svc.MarkDoseTaken(medID, date, timeOfDay); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("mark dose taken failed: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{"success": true})
}

// RecordMissedDose handles the record_missed_dose tool.
func (h *Handlers) RecordMissedDose(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	medID, err := request.RequireString("medication_id")
	if err != nil {
		return mcp.NewToolResultError("medication_id argument is required and must be a string"), nil
	}
	date, err := request.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date argument is required and must be a string"), nil
	}
	timeOfDay, err := request.RequireString("time")
	if err != nil {
		return mcp.NewToolResultError("time argument is required and must be a string"), nil
	}
	medName := request.GetString("medication_name", "")

	added := h.svc.RecordMissedDose(medID, medName, date, timeOfDay)
	return jsonResult(map[string]interface{}{"recorded": added})
}

// ListArchive handles the list_archive tool.
func (h *Handlers) ListArchive(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]interface{}{
		"archive": h.svc.ListArchive(),
	})
}

// EnrichMedication handles the enrich_medication tool.
func (h *Handlers) EnrichMedication(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.llm == nil {
		return mcp.NewToolResultError("enrichment is unavailable: no OpenAI API key configured"), nil
	}

	medID, err := request.RequireString("medication_id")
	if err != nil {
		return mcp.NewToolResultError("medication_id argument is required and must be a string"), nil
	}

	med, err := h.svc.GetMed(medID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("enrich failed: %v", err)), nil
	}

	suggestion, err := h.llm.EnrichMedication(med.Name, med.Type)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("enrich failed: %v", err)), nil
	}

	stored, err := h.svc.UpsertMed(suggestion.Apply(med))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("storing enriched medication failed: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"medication": stored,
		"suggestion": suggestion,
	})
}
