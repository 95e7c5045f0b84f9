// ABOUTME: Dose log and missed-dose tracking
// ABOUTME: Marking a dose taken also consumes inventory; misses are deduplicated
package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/harper/vitus/internal/models"
)

// MarkDoseTaken records a dose slot as taken and decrements the
// medication's remaining quantity. All three key parts are required.
func (s *Service) MarkDoseTaken(medID, date, timeOfDay string) error {
	if medID == "" || date == "" || timeOfDay == "" {
		return &ValidationError{Message: "medication id, date and time are required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.takeDoseLocked(medID); err != nil {
		return err
	}
	s.doc.DoseLogs[models.DoseKey{Date: date, MedID: medID, Time: timeOfDay}] = true

	s.saveLocked()
	return nil
}

// RecordMissedDose appends a missed-dose record unless one already exists
// for the same (medID, date, time). It returns whether a record was
// added; nothing persists otherwise.
func (s *Service) RecordMissedDose(medID, medName, date, timeOfDay string) bool {
	if medID == "" || date == "" || timeOfDay == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.doc.DoseMissed {
		if d.MedID == medID && d.Date == date && d.Time == timeOfDay {
			return false
		}
	}

	s.doc.DoseMissed = append(s.doc.DoseMissed, models.MissedDose{
		MedID:      medID,
		MedName:    medName,
		Date:       date,
		Time:       timeOfDay,
		RecordedAt: s.now().Format(time.RFC3339),
	})

	s.saveLocked()
	return true
}

// MissedDoses returns all recorded missed doses.
func (s *Service) MissedDoses() []models.MissedDose {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.MissedDose(nil), s.doc.DoseMissed...)
}

// ClearMissedDoses removes every missed-dose record.
func (s *Service) ClearMissedDoses() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.DoseMissed = []models.MissedDose{}
	s.saveLocked()
}

// MissedDosesReport renders a bullet list of missed doses for human or
// collaborator consumption, or "" when there are none.
func (s *Service) MissedDosesReport() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.doc.DoseMissed) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Missed doses:\n")
	for _, d := range s.doc.DoseMissed {
		name := d.MedName
		if name == "" {
			name = d.MedID
		}
		fmt.Fprintf(&b, "- %s %s %s\n", d.Date, d.Time, name)
	}
	return b.String()
}
