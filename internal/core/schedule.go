// ABOUTME: Active-cure listing and daily dose-slot generation
// ABOUTME: Day-granularity date logic; depleted medications emit no slots
package core

import (
	"sort"
	"time"

	"github.com/harper/vitus/internal/models"
)

// DefaultDoseTimes is the schedule used for a cure member with no
// explicit time list.
var DefaultDoseTimes = []string{"08:00", "20:00"}

// MedSchedule returns the cure's dose times for a medication, falling
// back to the default two daily times.
func MedSchedule(cure models.Cure, medID string) []string {
	if times := cure.Schedule[medID]; len(times) > 0 {
		return append([]string(nil), times...)
	}
	return append([]string(nil), DefaultDoseTimes...)
}

// IsCureActive reports whether ref falls within the cure's inclusive
// [start, end] range, comparing at day granularity. Unparseable dates
// make the cure inactive.
func IsCureActive(cure models.Cure, ref time.Time) bool {
	start, okS := models.ParseDate(cure.Start)
	end, okE := models.ParseDate(cure.End)
	if !okS || !okE {
		return false
	}
	day := midnight(ref)
	return !day.Before(start) && !day.After(end)
}

// DaysLeftToEnd returns the days from ref until the cure's end,
// inclusive of today (a cure ending today has 0 days left), floored at
// zero. ok is false when the end date does not parse.
func DaysLeftToEnd(cure models.Cure, ref time.Time) (int, bool) {
	end, okE := models.ParseDate(cure.End)
	if !okE {
		return 0, false
	}
	days := int(end.Sub(midnight(ref)).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days, true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ActiveCure annotates a cure with the days remaining until its end.
type ActiveCure struct {
	Cure     models.Cure `json:"cure"`
	DaysLeft int         `json:"daysLeft"`
}

// ListActiveCures returns the cures active today, soonest-ending first.
// Ties keep the original order.
func (s *Service) ListActiveCures() []ActiveCure {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listActiveCuresLocked(s.now())
}

func (s *Service) listActiveCuresLocked(ref time.Time) []ActiveCure {
	out := []ActiveCure{}
	for _, c := range s.doc.Cures {
		if !IsCureActive(c, ref) {
			continue
		}
		days, _ := DaysLeftToEnd(c, ref)
		out = append(out, ActiveCure{Cure: c.Clone(), DaysLeft: days})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysLeft < out[j].DaysLeft
	})
	return out
}

// DoseSlotsForDay generates the dose slots due on the given date from
// every cure whose range contains it. Medications that no longer exist
// are silently skipped; medications with no remaining quantity emit no
// slots. Slots sort by time of day, ties by collated medication name.
func (s *Service) DoseSlotsForDay(date string) []models.DoseSlot {
	day, ok := models.ParseDate(date)
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	medByID := make(map[string]models.Medication, len(s.doc.Meds))
	for _, m := range s.doc.Meds {
		medByID[m.ID] = m
	}

	slots := []models.DoseSlot{}
	for _, cure := range s.doc.Cures {
		if !IsCureActive(cure, day) {
			continue
		}
		for _, medID := range cure.MedIDs {
			med, exists := medByID[medID]
			if !exists || med.RemainingQuantity <= 0 {
				continue
			}
			for _, tod := range MedSchedule(cure, medID) {
				key := models.DoseKey{Date: date, MedID: medID, Time: tod}
				slots = append(slots, models.DoseSlot{
					MedID:    medID,
					MedName:  med.Name,
					CureID:   cure.ID,
					CureName: cure.Name,
					Date:     date,
					Time:     tod,
					Key:      key.String(),
					Taken:    s.doc.DoseLogs[key],
				})
			}
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Time != slots[j].Time {
			return slots[i].Time < slots[j].Time
		}
		return s.collator.CompareString(slots[i].MedName, slots[j].MedName) < 0
	})
	return slots
}
