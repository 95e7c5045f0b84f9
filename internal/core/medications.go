// ABOUTME: Medication CRUD and dose-taking against the tracker document
// ABOUTME: Deleting a medication also detaches it from every cure
package core

import (
	"github.com/harper/vitus/internal/models"
)

// CategoryOther buckets medications with no category.
const CategoryOther = "Other"

// ListMeds returns all medications, newest first.
func (s *Service) ListMeds() []models.Medication {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Medication(nil), s.doc.Meds...)
}

// GetMed returns the medication with the given id.
func (s *Service) GetMed(id string) (models.Medication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.doc.Meds {
		if m.ID == id {
			return m, nil
		}
	}
	return models.Medication{}, ErrMedicationNotFound
}

// UpsertMed normalizes and stores a medication: an existing record with
// the same id is replaced in place, a new one is prepended. A medication
// without a name is rejected.
func (s *Service) UpsertMed(med models.Medication) (models.Medication, error) {
	m := models.NormalizeMedication(med)
	if m.Name == "" {
		return models.Medication{}, &ValidationError{Message: "medication name is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.doc.Meds {
		if s.doc.Meds[i].ID == m.ID {
			s.doc.Meds[i] = m
			replaced = true
			break
		}
	}
	if !replaced {
		s.doc.Meds = append([]models.Medication{m}, s.doc.Meds...)
	}

	s.saveLocked()
	return m, nil
}

// DeleteMed removes a medication and strips its id from every cure's
// member list. Cures themselves are never deleted by this. Deleting an
// unknown id is a no-op that still persists.
func (s *Service) DeleteMed(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.doc.Meds[:0]
	for _, m := range s.doc.Meds {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.doc.Meds = kept

	for i := range s.doc.Cures {
		ids := s.doc.Cures[i].MedIDs[:0]
		for _, mid := range s.doc.Cures[i].MedIDs {
			if mid != id {
				ids = append(ids, mid)
			}
		}
		s.doc.Cures[i].MedIDs = ids
	}

	s.saveLocked()
	return nil
}

// TakeDose decrements a medication's remaining quantity by its configured
// dose amount, floored at zero.
func (s *Service) TakeDose(id string) (models.Medication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.takeDoseLocked(id)
	if err != nil {
		return models.Medication{}, err
	}
	s.saveLocked()
	return m, nil
}

func (s *Service) takeDoseLocked(id string) (models.Medication, error) {
	for i := range s.doc.Meds {
		if s.doc.Meds[i].ID != id {
			continue
		}
		remaining := s.doc.Meds[i].RemainingQuantity - s.doc.Meds[i].DoseAmount()
		if remaining < 0 {
			remaining = 0
		}
		s.doc.Meds[i].RemainingQuantity = remaining
		return s.doc.Meds[i], nil
	}
	return models.Medication{}, ErrMedicationNotFound
}

// GroupMedsByCategory buckets medications by their category; the empty
// category maps to CategoryOther.
func (s *Service) GroupMedsByCategory() map[string][]models.Medication {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string][]models.Medication)
	for _, m := range s.doc.Meds {
		key := m.Category
		if key == "" {
			key = CategoryOther
		}
		out[key] = append(out[key], m)
	}
	return out
}
