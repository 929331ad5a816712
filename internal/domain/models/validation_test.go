package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAssignment() *Assignment {
	return &Assignment{
		ID:    "asg-1",
		OrgID: "org-1",
		MustHaveSkills: []SkillRequirement{
			{SkillID: "python", MinLevel: LevelIntermediate, MinMonthsExperience: 12},
		},
		Location:     LocationPreference{WorkMode: WorkModeRemote},
		Compensation: CompensationRange{Min: 40000, Max: 60000, Currency: "usd"},
		Hours:        HoursRange{Min: 10, Max: 30},
		Status:       AssignmentActive,
	}
}

func validCandidate() *CandidateProfile {
	return &CandidateProfile{
		ID: "cand-1",
		Skills: []SkillClaim{
			{SkillID: "python", Level: LevelAdvanced, MonthsExperience: 36},
		},
		Location:     LocationPreference{WorkMode: WorkModeHybrid, Country: "DE", City: "Berlin"},
		Compensation: CompensationRange{Min: 30000, Max: 50000, Currency: "usd"},
		Hours:        HoursRange{Min: 10, Max: 30},
	}
}

func Test_AssignmentValidate_AcceptsValidAssignment(t *testing.T) {
	require.NoError(t, validAssignment().Validate())
}

func Test_AssignmentValidate_RejectsUnknownStatus(t *testing.T) {
	assignment := validAssignment()
	assignment.Status = AssignmentStatus("paused")

	assert.EqualError(t, assignment.Validate(), "invalid assignment status")
}

func Test_AssignmentValidate_RejectsUnknownWorkMode(t *testing.T) {
	assignment := validAssignment()
	assignment.Location.WorkMode = WorkMode("floating")

	assert.EqualError(t, assignment.Validate(), "invalid work mode")
}

func Test_AssignmentValidate_RejectsOutOfRangeSkillLevel(t *testing.T) {
	assignment := validAssignment()
	assignment.MustHaveSkills[0].MinLevel = SkillLevel(9)

	assert.Error(t, assignment.Validate())
}

func Test_CandidateValidate_AcceptsValidProfile(t *testing.T) {
	require.NoError(t, validCandidate().Validate())
}

func Test_CandidateValidate_RejectsUnknownWorkMode(t *testing.T) {
	candidate := validCandidate()
	candidate.Location.WorkMode = WorkMode("floating")

	assert.EqualError(t, candidate.Validate(), "invalid work mode")
}

func Test_CandidateValidate_RejectsOutOfRangeSkillLevel(t *testing.T) {
	candidate := validCandidate()
	candidate.Skills[0].Level = SkillLevel(-1)

	assert.Error(t, candidate.Validate())
}
