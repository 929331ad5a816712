package models

import (
	"errors"
	"time"
)

// CandidateProfile is the individual side of a pair. Name, Email and
// AvatarURL are identifying fields gated behind the reveal state.
type CandidateProfile struct {
	ID             string `gorm:"primaryKey" validate:"required"`
	Name           string
	Email          string
	AvatarURL      string
	Skills         []SkillClaim    `gorm:"serializer:json" validate:"dive"`
	ValuesTags     string          // comma-joined value tags
	CauseTags      string          // comma-joined cause tags
	Location       LocationPreference `gorm:"serializer:json"`
	Compensation   CompensationRange  `gorm:"serializer:json"`
	Availability   DateWindow         `gorm:"serializer:json"`
	Languages      []LanguageClaim    `gorm:"serializer:json" validate:"dive"`
	Hours          HoursRange         `gorm:"serializer:json"`
	VerifiedGates  string             // comma-joined gate ids, written by the verification workflow
	MatchingActive bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (c *CandidateProfile) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, err := ToWorkMode(string(c.Location.WorkMode)); err != nil {
		return err
	}
	for _, claim := range c.Skills {
		if _, err := ToSkillLevel(int(claim.Level)); err != nil {
			return err
		}
	}
	if err := validate.Struct(c.Compensation); err != nil {
		return err
	}
	if err := validate.Struct(c.Hours); err != nil {
		return err
	}
	if !c.Availability.Valid() {
		return errors.New("availability: earliest must not be after latest")
	}
	for _, claim := range c.Languages {
		if _, err := ToCEFRLevel(string(claim.Level)); err != nil {
			return err
		}
	}
	return nil
}

func (c *CandidateProfile) ValuesTagsAsArray() []string {
	return splitTags(c.ValuesTags)
}

func (c *CandidateProfile) CauseTagsAsArray() []string {
	return splitTags(c.CauseTags)
}

func (c *CandidateProfile) VerifiedGatesAsArray() []string {
	return splitTags(c.VerifiedGates)
}

func (c *CandidateProfile) SetValuesTags(tags []string) {
	c.ValuesTags = joinTags(tags)
}

func (c *CandidateProfile) SetCauseTags(tags []string) {
	c.CauseTags = joinTags(tags)
}

func (c *CandidateProfile) SetVerifiedGates(gates []string) {
	c.VerifiedGates = joinTags(gates)
}

// ClaimFor returns the candidate's claim for a skill id, if any.
func (c *CandidateProfile) ClaimFor(skillID string) (SkillClaim, bool) {
	for _, claim := range c.Skills {
		if claim.SkillID == skillID {
			return claim, true
		}
	}
	return SkillClaim{}, false
}

// LanguageFor returns the candidate's claim for a language code, if any.
func (c *CandidateProfile) LanguageFor(code string) (LanguageClaim, bool) {
	for _, claim := range c.Languages {
		if claim.Code == code {
			return claim, true
		}
	}
	return LanguageClaim{}, false
}
