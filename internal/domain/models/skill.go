package models

import "fmt"

// Skill levels are ordinal, 0 to 5. No fractional levels.
type SkillLevel int

const (
	LevelBeginner SkillLevel = iota
	LevelNovice
	LevelIntermediate
	LevelAdvanced
	LevelExpert
	LevelMaster
)

func ToSkillLevel(v int) (SkillLevel, error) {
	if v < int(LevelBeginner) || v > int(LevelMaster) {
		return 0, fmt.Errorf("invalid skill level: %d", v)
	}
	return SkillLevel(v), nil
}

type SkillRequirement struct {
	SkillID             string     `json:"skill_id" validate:"required"`
	MinLevel            SkillLevel `json:"min_level" validate:"min=0,max=5"`
	MinMonthsExperience int        `json:"min_months_experience" validate:"min=0"`
}

type SkillClaim struct {
	SkillID          string     `json:"skill_id" validate:"required"`
	Level            SkillLevel `json:"level" validate:"min=0,max=5"`
	MonthsExperience int        `json:"months_experience" validate:"min=0"`
}

// Satisfies reports whether the claim meets the requirement on both
// the level and the months-of-experience axes.
func (c SkillClaim) Satisfies(req SkillRequirement) bool {
	return c.SkillID == req.SkillID &&
		c.Level >= req.MinLevel &&
		c.MonthsExperience >= req.MinMonthsExperience
}
