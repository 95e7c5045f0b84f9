// ABOUTME: Cure CRUD and per-medication schedule editing
// ABOUTME: Upsert validates name and both dates; deletion never archives
package core

import (
	"strings"

	"github.com/harper/vitus/internal/models"
)

// ListCures returns all active-list cures, newest first.
func (s *Service) ListCures() []models.Cure {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Cure, 0, len(s.doc.Cures))
	for _, c := range s.doc.Cures {
		out = append(out, c.Clone())
	}
	return out
}

// UpsertCure normalizes and stores a cure: an existing record with the
// same id is replaced, a new one is prepended. Name, start and end are
// required.
func (s *Service) UpsertCure(cure models.Cure) (models.Cure, error) {
	c := models.NormalizeCure(cure)
	if c.Name == "" {
		return models.Cure{}, &ValidationError{Message: "cure name is required"}
	}
	if c.Start == "" || c.End == "" {
		return models.Cure{}, &ValidationError{Message: "cure start and end dates are required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.doc.Cures {
		if s.doc.Cures[i].ID == c.ID {
			s.doc.Cures[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		s.doc.Cures = append([]models.Cure{c}, s.doc.Cures...)
	}

	s.saveLocked()
	return c.Clone(), nil
}

// DeleteCure removes a cure from the active list without archiving it.
// Deleting an unknown id is a no-op that still persists.
func (s *Service) DeleteCure(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.doc.Cures[:0]
	for _, c := range s.doc.Cures {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.doc.Cures = kept

	s.saveLocked()
	return nil
}

// SetCureSchedule replaces the dose times for one medication within a
// cure. Empty time strings are dropped; at least one must remain.
func (s *Service) SetCureSchedule(cureID, medID string, times []string) error {
	kept := make([]string, 0, len(times))
	for _, t := range times {
		if t = strings.TrimSpace(t); t != "" {
			kept = append(kept, t)
		}
	}
	if medID == "" || len(kept) == 0 {
		return &ValidationError{Message: "medication id and at least one dose time are required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Cures {
		if s.doc.Cures[i].ID != cureID {
			continue
		}
		if s.doc.Cures[i].Schedule == nil {
			s.doc.Cures[i].Schedule = make(map[string][]string)
		}
		s.doc.Cures[i].Schedule[medID] = kept
		s.saveLocked()
		return nil
	}
	return ErrCureNotFound
}
