package schedule

import "github.com/jwalitptl/reception-gateway/internal/model"

// filterClinics keeps clinics whose category is on the allow-list. The
// result is never nil so the payload always carries a list.
func filterClinics(clinics []model.Clinic, categoryIDs []int) []model.Clinic {
	allowed := make(map[int]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		allowed[id] = struct{}{}
	}

	filtered := make([]model.Clinic, 0, len(clinics))
	for _, clinic := range clinics {
		if _, ok := allowed[clinic.CategoryID]; ok {
			filtered = append(filtered, clinic)
		}
	}
	return filtered
}

// joinSchedules keeps schedules that reference one of the given clinics.
// Unmatched schedules belong to records outside the grid's scope and are
// dropped silently.
func joinSchedules(schedules []model.Schedule, clinics []model.Clinic) []model.Schedule {
	ids := make(map[int]struct{}, len(clinics))
	for _, clinic := range clinics {
		ids[clinic.ID] = struct{}{}
	}

	joined := make([]model.Schedule, 0, len(schedules))
	for _, s := range schedules {
		if _, ok := ids[s.ClinicID]; ok {
			joined = append(joined, s)
		}
	}
	return joined
}
