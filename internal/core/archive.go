// ABOUTME: Auto-archival of finished or depleted cures
// ABOUTME: Replays the dose log over the cure's range to compute adherence
package core

import (
	"github.com/harper/vitus/internal/models"
)

// ListArchive returns the archive, newest entries first.
func (s *Service) ListArchive() []models.ArchiveEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ArchiveEntry(nil), s.doc.Archive...)
}

// AutoArchive scans the active cures and archives every one whose end
// date has passed (reason cycle_end) or whose member medication is fully
// depleted (reason tablets_zero). Each archived cure is snapshotted with
// its resolved medications, the replayed dose history for its full range
// and the computed adherence, then removed from the active list. Returns
// the archived cure ids. Runs after every load; idempotent per call
// boundary since archived cures leave the active list.
func (s *Service) AutoArchive() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := midnight(s.now())

	reasons := make(map[string]string)
	flagged := []string{}
	for _, c := range s.doc.Cures {
		end, ok := models.ParseDate(c.End)
		if ok && end.Before(today) {
			reasons[c.ID] = models.ReasonCycleEnd
			flagged = append(flagged, c.ID)
		}
	}

	for _, m := range s.doc.Meds {
		if m.RemainingQuantity > 0 {
			continue
		}
		for _, c := range s.doc.Cures {
			if reasons[c.ID] != "" {
				continue
			}
			for _, medID := range c.MedIDs {
				if medID == m.ID {
					reasons[c.ID] = models.ReasonTabletsZero
					flagged = append(flagged, c.ID)
					break
				}
			}
		}
	}

	if len(flagged) == 0 {
		return nil
	}

	medByID := make(map[string]models.Medication, len(s.doc.Meds))
	for _, m := range s.doc.Meds {
		medByID[m.ID] = m
	}

	archived := []string{}
	for _, cureID := range flagged {
		cure, ok := s.findCureLocked(cureID)
		if !ok {
			continue
		}

		meds := []models.Medication{}
		for _, medID := range cure.MedIDs {
			if m, exists := medByID[medID]; exists {
				meds = append(meds, m)
			}
		}

		history, adherence := s.replayLocked(cure, meds)

		entry := models.ArchiveEntry{
			ArchivedAt: s.today(),
			Reason:     reasons[cureID],
			Cure:       cure.Clone(),
			Meds:       meds,
			History:    history,
			Adherence:  adherence,
		}
		s.doc.Archive = append([]models.ArchiveEntry{entry}, s.doc.Archive...)

		kept := s.doc.Cures[:0]
		for _, c := range s.doc.Cures {
			if c.ID != cureID {
				kept = append(kept, c)
			}
		}
		s.doc.Cures = kept

		archived = append(archived, cureID)
	}

	if len(archived) > 0 {
		s.saveLocked()
	}
	return archived
}

func (s *Service) findCureLocked(id string) (models.Cure, bool) {
	for _, c := range s.doc.Cures {
		if c.ID == id {
			return c, true
		}
	}
	return models.Cure{}, false
}

// replayLocked walks the cure's full date range day by day, counting one
// expected dose per resolved member medication per scheduled time, and
// collecting the doses the log marks taken.
func (s *Service) replayLocked(cure models.Cure, meds []models.Medication) ([]models.DoseHistoryEntry, models.Adherence) {
	history := []models.DoseHistoryEntry{}
	adherence := models.Adherence{}

	start, okS := models.ParseDate(cure.Start)
	end, okE := models.ParseDate(cure.End)
	if !okS || !okE || end.Before(start) {
		return history, adherence
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(models.DateLayout)
		for _, med := range meds {
			for _, tod := range MedSchedule(cure, med.ID) {
				adherence.Total++
				key := models.DoseKey{Date: date, MedID: med.ID, Time: tod}
				if s.doc.DoseLogs[key] {
					adherence.Taken++
					history = append(history, models.DoseHistoryEntry{
						Date:  date,
						MedID: med.ID,
						Time:  tod,
					})
				}
			}
		}
	}
	return history, adherence
}
