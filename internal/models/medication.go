// ABOUTME: Medication record and its normalization rules
// ABOUTME: Coerces loose/partial input into a well-formed record with safe defaults
package models

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Dosage describes how much of a medication one dose consumes, plus
// free-form instructions.
type Dosage struct {
	Amount float64 `json:"amount"`
	Text   string  `json:"text"`
}

// UnmarshalJSON accepts both the current object form and the legacy plain
// string form ("take with food"), which upgrades to {amount:1, text:<s>}.
func (d *Dosage) UnmarshalJSON(data []byte) error {
	var legacy string
	if err := json.Unmarshal(data, &legacy); err == nil {
		d.Amount = 1
		d.Text = legacy
		return nil
	}

	type dosage Dosage
	var v dosage
	if err := json.Unmarshal(data, &v); err != nil {
		// Unknown shape falls back to an empty dosage; normalization
		// fills in the default amount.
		*d = Dosage{}
		return nil
	}
	*d = Dosage(v)
	return nil
}

// Medication is a trackable consumable with quantity and dosing metadata.
type Medication struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Type              string  `json:"type"`
	TotalQuantity     float64 `json:"totalQuantity"`
	RemainingQuantity float64 `json:"remainingQuantity"`
	Dosage            Dosage  `json:"dosage"`
	Expiration        string  `json:"expiration"`
	Purpose           string  `json:"purpose"`
	Prescription      string  `json:"prescription"`
	Notes             string  `json:"notes"`
	Warning           string  `json:"warning"`
	Category          string  `json:"category"`
	ForWhom           string  `json:"forWhom"`
	Absorbability     string  `json:"absorbability"`
	Interactions      string  `json:"interactions"`
	CoverImage        string  `json:"coverImage"`
	AIContext         string  `json:"aiContext"`
}

// DoseAmount returns the quantity consumed by a single dose, defaulting
// to 1 when the configured amount is unusable.
func (m Medication) DoseAmount() float64 {
	if m.Dosage.Amount > 0 && !math.IsInf(m.Dosage.Amount, 0) && !math.IsNaN(m.Dosage.Amount) {
		return m.Dosage.Amount
	}
	return 1
}

// NewMedicationID generates a fresh medication identifier.
func NewMedicationID() string {
	return "med_" + uuid.New().String()[:8]
}

// NormalizeMedication coerces a raw medication record into a well-formed
// one. It is pure: the input is not modified.
//
// Rules: quantities are clamped to >= 0 and remaining <= total when
// total > 0; dosage amount defaults to 1 when non-positive; all text
// fields are trimmed; a missing identifier is assigned.
func NormalizeMedication(m Medication) Medication {
	m.TotalQuantity = clampQuantity(m.TotalQuantity)
	m.RemainingQuantity = clampQuantity(m.RemainingQuantity)
	if m.TotalQuantity > 0 && m.RemainingQuantity > m.TotalQuantity {
		m.RemainingQuantity = m.TotalQuantity
	}

	if m.Dosage.Amount <= 0 || math.IsInf(m.Dosage.Amount, 0) || math.IsNaN(m.Dosage.Amount) {
		m.Dosage.Amount = 1
	}
	m.Dosage.Text = strings.TrimSpace(m.Dosage.Text)

	m.ID = strings.TrimSpace(m.ID)
	if m.ID == "" {
		m.ID = NewMedicationID()
	}
	m.Name = strings.TrimSpace(m.Name)
	m.Type = strings.TrimSpace(m.Type)
	m.Expiration = strings.TrimSpace(m.Expiration)
	m.Purpose = strings.TrimSpace(m.Purpose)
	m.Prescription = strings.TrimSpace(m.Prescription)
	m.Notes = strings.TrimSpace(m.Notes)
	m.Warning = strings.TrimSpace(m.Warning)
	m.Category = strings.TrimSpace(m.Category)
	m.ForWhom = strings.TrimSpace(m.ForWhom)
	m.Absorbability = strings.TrimSpace(m.Absorbability)
	m.Interactions = strings.TrimSpace(m.Interactions)
	return m
}

func clampQuantity(q float64) float64 {
	if q < 0 || math.IsInf(q, 0) || math.IsNaN(q) {
		return 0
	}
	return q
}
