// ABOUTME: The single persisted document holding all tracker state
// ABOUTME: Tolerant decoding: malformed fields default instead of failing the load
package models

import (
	"encoding/json"
	"time"
)

// Version tags the document layout.
const Version = 1

// DateLayout is the calendar-date format used throughout the document.
const DateLayout = "2006-01-02"

// Document is the whole persisted state, mirrored to storage on every
// mutation.
type Document struct {
	Version    int            `json:"version"`
	UpdatedAt  string         `json:"updatedAt"`
	Meds       []Medication   `json:"meds"`
	Cures      []Cure         `json:"cures"`
	DoseLogs   DoseLog        `json:"doseLogs"`
	DoseMissed []MissedDose   `json:"doseMissed"`
	Archive    []ArchiveEntry `json:"archive"`
}

// EmptyDocument returns a fresh document stamped with the given date.
func EmptyDocument(today string) Document {
	return Document{
		Version:    Version,
		UpdatedAt:  today,
		Meds:       []Medication{},
		Cures:      []Cure{},
		DoseLogs:   DoseLog{},
		DoseMissed: []MissedDose{},
		Archive:    []ArchiveEntry{},
	}
}

// ParseDate parses a "YYYY-MM-DD" calendar date.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DecodeDocument turns raw persisted bytes into a well-formed document.
// It never fails: corrupt JSON or a non-object yields a fresh empty
// document, and each malformed field is replaced by its empty default.
// Every medication and cure is run through its normalizer.
func DecodeDocument(data []byte, today string) Document {
	doc := EmptyDocument(today)
	if len(data) == 0 {
		return doc
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return doc
	}

	var meds []Medication
	if err := json.Unmarshal(raw["meds"], &meds); err == nil {
		for _, m := range meds {
			doc.Meds = append(doc.Meds, NormalizeMedication(m))
		}
	}

	var cures []Cure
	if err := json.Unmarshal(raw["cures"], &cures); err == nil {
		for _, c := range cures {
			doc.Cures = append(doc.Cures, NormalizeCure(c))
		}
	}

	var logs DoseLog
	if err := json.Unmarshal(raw["doseLogs"], &logs); err == nil && logs != nil {
		doc.DoseLogs = logs
	}

	var missed []MissedDose
	if err := json.Unmarshal(raw["doseMissed"], &missed); err == nil && missed != nil {
		doc.DoseMissed = missed
	}

	var archive []ArchiveEntry
	if err := json.Unmarshal(raw["archive"], &archive); err == nil && archive != nil {
		doc.Archive = archive
	}

	return doc
}
