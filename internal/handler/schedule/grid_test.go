package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/reception-gateway/internal/model"
)

func TestFilterClinicsAllowList(t *testing.T) {
	clinics := []model.Clinic{
		{ID: 1, CategoryID: 2},
		{ID: 2, CategoryID: 9},
		{ID: 3, CategoryID: 0}, // no category at all
		{ID: 4, CategoryID: 5},
	}

	filtered := filterClinics(clinics, []int{2, 3, 5, 6})

	assert.Len(t, filtered, 2)
	assert.Equal(t, 1, filtered[0].ID)
	assert.Equal(t, 4, filtered[1].ID)
}

func TestFilterClinicsPreservesOrder(t *testing.T) {
	clinics := []model.Clinic{
		{ID: 9, CategoryID: 6},
		{ID: 1, CategoryID: 2},
		{ID: 5, CategoryID: 3},
	}

	filtered := filterClinics(clinics, []int{2, 3, 5, 6})

	ids := []int{filtered[0].ID, filtered[1].ID, filtered[2].ID}
	assert.Equal(t, []int{9, 1, 5}, ids)
}

func TestFilterClinicsNeverNil(t *testing.T) {
	assert.NotNil(t, filterClinics(nil, []int{2}))
	assert.NotNil(t, filterClinics([]model.Clinic{}, nil))
}

func TestJoinSchedulesDropsUnmatched(t *testing.T) {
	clinics := []model.Clinic{{ID: 1}, {ID: 3}}
	schedules := []model.Schedule{
		{ID: 10, ClinicID: 1},
		{ID: 11, ClinicID: 2},
		{ID: 12, ClinicID: 3},
		{ID: 13, ClinicID: 99},
	}

	joined := joinSchedules(schedules, clinics)

	assert.Len(t, joined, 2)
	assert.Equal(t, 10, joined[0].ID)
	assert.Equal(t, 12, joined[1].ID)
}

func TestJoinSchedulesEmptyInputs(t *testing.T) {
	assert.NotNil(t, joinSchedules(nil, nil))
	assert.Empty(t, joinSchedules([]model.Schedule{{ID: 1, ClinicID: 1}}, nil))
}
