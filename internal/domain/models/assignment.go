package models

import (
	"errors"
	"strings"
	"time"

	"github.com/samber/lo"
)

type AssignmentStatus string

const (
	AssignmentDraft  AssignmentStatus = "draft"
	AssignmentActive AssignmentStatus = "active"
	AssignmentClosed AssignmentStatus = "closed"
)

func ToAssignmentStatus(s string) (AssignmentStatus, error) {
	switch s {
	case string(AssignmentDraft):
		return AssignmentDraft, nil
	case string(AssignmentActive):
		return AssignmentActive, nil
	case string(AssignmentClosed):
		return AssignmentClosed, nil
	default:
		return "", errors.New("invalid assignment status")
	}
}

// Assignment is an organization's posting. OrgName and ContactEmail
// are identifying fields and stay hidden until a match is revealed.
type Assignment struct {
	ID               string `gorm:"primaryKey" validate:"required"`
	OrgID            string `validate:"required"`
	OrgName          string
	ContactEmail     string
	Title            string
	MustHaveSkills   []SkillRequirement `gorm:"serializer:json" validate:"dive"`
	NiceToHaveSkills []SkillRequirement `gorm:"serializer:json" validate:"dive"`
	VerificationGates string            // comma-joined gate ids
	ValuesRequired   string             // comma-joined value tags
	CauseTags        string             // comma-joined cause tags
	Location         LocationPreference `gorm:"serializer:json"`
	Compensation     CompensationRange  `gorm:"serializer:json"`
	StartWindow      DateWindow         `gorm:"serializer:json"`
	MinLanguage      *LanguageRequirement `gorm:"serializer:json"`
	Hours            HoursRange         `gorm:"serializer:json"`
	Status           AssignmentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks the construction invariants declared in the data
// model: enum values, min<=max ranges and the date window ordering.
func (a *Assignment) Validate() error {
	if err := validate.Struct(a); err != nil {
		return err
	}
	if _, err := ToAssignmentStatus(string(a.Status)); err != nil {
		return err
	}
	if _, err := ToWorkMode(string(a.Location.WorkMode)); err != nil {
		return err
	}
	for _, req := range a.MustHaveSkills {
		if _, err := ToSkillLevel(int(req.MinLevel)); err != nil {
			return err
		}
	}
	for _, req := range a.NiceToHaveSkills {
		if _, err := ToSkillLevel(int(req.MinLevel)); err != nil {
			return err
		}
	}
	if err := validate.Struct(a.Compensation); err != nil {
		return err
	}
	if err := validate.Struct(a.Hours); err != nil {
		return err
	}
	if !a.StartWindow.Valid() {
		return errors.New("start window: earliest must not be after latest")
	}
	if a.MinLanguage != nil {
		if _, err := ToCEFRLevel(string(a.MinLanguage.Level)); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assignment) VerificationGatesAsArray() []string {
	return splitTags(a.VerificationGates)
}

func (a *Assignment) ValuesRequiredAsArray() []string {
	return splitTags(a.ValuesRequired)
}

func (a *Assignment) CauseTagsAsArray() []string {
	return splitTags(a.CauseTags)
}

func (a *Assignment) SetVerificationGates(gates []string) {
	a.VerificationGates = joinTags(gates)
}

func (a *Assignment) SetValuesRequired(tags []string) {
	a.ValuesRequired = joinTags(tags)
}

func (a *Assignment) SetCauseTags(tags []string) {
	a.CauseTags = joinTags(tags)
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return lo.Map(strings.Split(s, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
}

func joinTags(tags []string) string {
	return strings.Join(lo.Uniq(tags), ",")
}
