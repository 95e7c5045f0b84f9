// ABOUTME: Cure record (bounded treatment cycle) and its normalization
// ABOUTME: Links medications to a date range and per-medication dose times
package models

import (
	"strings"

	"github.com/google/uuid"
)

// Cure is a treatment cycle grouping one or more medications over an
// inclusive [Start, End] date range. Schedule maps a medication id to its
// daily dose times ("HH:MM"); medications absent from the map use the
// default schedule.
type Cure struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Start    string              `json:"start"`
	End      string              `json:"end"`
	MedIDs   []string            `json:"medIds"`
	Schedule map[string][]string `json:"schedule"`
}

// NewCureID generates a fresh cure identifier.
func NewCureID() string {
	return "cure_" + uuid.New().String()[:8]
}

// NormalizeCure coerces a raw cure record: trims name and dates, drops
// empty medication ids, and defaults the schedule to an empty mapping.
// Pure: the input is not modified.
func NormalizeCure(c Cure) Cure {
	out := Cure{
		ID:    strings.TrimSpace(c.ID),
		Name:  strings.TrimSpace(c.Name),
		Start: strings.TrimSpace(c.Start),
		End:   strings.TrimSpace(c.End),
	}
	if out.ID == "" {
		out.ID = NewCureID()
	}

	out.MedIDs = make([]string, 0, len(c.MedIDs))
	for _, id := range c.MedIDs {
		if id = strings.TrimSpace(id); id != "" {
			out.MedIDs = append(out.MedIDs, id)
		}
	}

	out.Schedule = make(map[string][]string, len(c.Schedule))
	for medID, times := range c.Schedule {
		kept := make([]string, 0, len(times))
		for _, t := range times {
			if t = strings.TrimSpace(t); t != "" {
				kept = append(kept, t)
			}
		}
		if len(kept) > 0 {
			out.Schedule[medID] = kept
		}
	}
	return out
}

// Clone returns a deep copy of the cure, safe to snapshot into the
// archive without aliasing the live record.
func (c Cure) Clone() Cure {
	out := c
	out.MedIDs = append([]string(nil), c.MedIDs...)
	out.Schedule = make(map[string][]string, len(c.Schedule))
	for medID, times := range c.Schedule {
		out.Schedule[medID] = append([]string(nil), times...)
	}
	return out
}
