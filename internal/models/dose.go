// ABOUTME: Dose log keys, dose slots, missed-dose records and archive entries
// ABOUTME: DoseKey is a tuple in memory, "date::medId::time" at the JSON boundary
package models

import (
	"encoding/json"
	"strings"
)

// DoseKeySeparator joins the dose key parts in the persisted form.
const DoseKeySeparator = "::"

// DoseKey identifies one scheduled dose: a medication at a time of day on
// a date. Dates are "YYYY-MM-DD", times zero-padded "HH:MM".
type DoseKey struct {
	Date  string
	MedID string
	Time  string
}

// String renders the persisted "date::medId::time" form.
func (k DoseKey) String() string {
	return k.Date + DoseKeySeparator + k.MedID + DoseKeySeparator + k.Time
}

// ParseDoseKey parses the persisted form. ok is false for anything that
// does not split into exactly three non-empty parts.
func ParseDoseKey(s string) (DoseKey, bool) {
	parts := strings.Split(s, DoseKeySeparator)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return DoseKey{}, false
	}
	return DoseKey{Date: parts[0], MedID: parts[1], Time: parts[2]}, true
}

// DoseLog records which dose slots have been marked taken. Absence means
// not taken. Serializes as {"date::medId::time": true}.
type DoseLog map[DoseKey]bool

// MarshalJSON writes the string-keyed persisted form.
func (l DoseLog) MarshalJSON() ([]byte, error) {
	out := make(map[string]bool, len(l))
	for k, taken := range l {
		out[k.String()] = taken
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the persisted form, silently dropping entries whose
// key does not parse.
func (l *DoseLog) UnmarshalJSON(data []byte) error {
	var raw map[string]bool
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(DoseLog, len(raw))
	for s, taken := range raw {
		if k, ok := ParseDoseKey(s); ok {
			out[k] = taken
		}
	}
	*l = out
	return nil
}

// DoseSlot is one scheduled opportunity to take a medication, derived
// from the active cures for a given day.
type DoseSlot struct {
	MedID    string `json:"medId"`
	MedName  string `json:"medName"`
	CureID   string `json:"cureId"`
	CureName string `json:"cureName"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Key      string `json:"key"`
	Taken    bool   `json:"taken"`
}

// MissedDose records a dose slot whose time passed unmarked. Deduplicated
// by (MedID, Date, Time).
type MissedDose struct {
	MedID      string `json:"medId"`
	MedName    string `json:"medName"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	RecordedAt string `json:"recordedAt"`
}

// Archive reasons.
const (
	ReasonCycleEnd    = "cycle_end"
	ReasonTabletsZero = "tablets_zero"
)

// DoseHistoryEntry is one taken dose replayed from the log while
// archiving a cure.
type DoseHistoryEntry struct {
	Date  string `json:"date"`
	MedID string `json:"medId"`
	Time  string `json:"time"`
}

// Adherence summarizes doses taken versus doses expected over a cure's
// full date range.
type Adherence struct {
	Total int `json:"total"`
	Taken int `json:"taken"`
}

// ArchiveEntry is an immutable snapshot of a concluded cure: the cure and
// its member medications as they existed at archival time, the replayed
// dose history, and the computed adherence.
type ArchiveEntry struct {
	ArchivedAt string             `json:"archivedAt"`
	Reason     string             `json:"reason"`
	Cure       Cure               `json:"cure"`
	Meds       []Medication       `json:"meds"`
	History    []DoseHistoryEntry `json:"history"`
	Adherence  Adherence          `json:"adherence"`
}
