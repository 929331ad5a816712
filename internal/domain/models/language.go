package models

import "errors"

// CEFRLevel is the six-point language proficiency scale, A1 lowest.
type CEFRLevel string

const (
	CEFRLevelA1 CEFRLevel = "A1"
	CEFRLevelA2 CEFRLevel = "A2"
	CEFRLevelB1 CEFRLevel = "B1"
	CEFRLevelB2 CEFRLevel = "B2"
	CEFRLevelC1 CEFRLevel = "C1"
	CEFRLevelC2 CEFRLevel = "C2"
)

var cefrOrder = map[CEFRLevel]int{
	CEFRLevelA1: 0,
	CEFRLevelA2: 1,
	CEFRLevelB1: 2,
	CEFRLevelB2: 3,
	CEFRLevelC1: 4,
	CEFRLevelC2: 5,
}

func ToCEFRLevel(s string) (CEFRLevel, error) {
	level := CEFRLevel(s)
	if _, ok := cefrOrder[level]; !ok {
		return "", errors.New("invalid CEFR level")
	}
	return level, nil
}

// StepsAbove returns how many CEFR steps the level sits above other.
// Negative when below.
func (l CEFRLevel) StepsAbove(other CEFRLevel) int {
	return cefrOrder[l] - cefrOrder[other]
}

func (l CEFRLevel) Meets(required CEFRLevel) bool {
	return l.StepsAbove(required) >= 0
}

type LanguageRequirement struct {
	Code  string    `json:"code" validate:"required"`
	Level CEFRLevel `json:"level" validate:"required"`
}

type LanguageClaim struct {
	Code  string    `json:"code" validate:"required"`
	Level CEFRLevel `json:"level" validate:"required"`
}

// Satisfies requires the same language code and a claimed level at or
// above the required one on the CEFR total order.
func (c LanguageClaim) Satisfies(req LanguageRequirement) bool {
	return c.Code == req.Code && c.Level.Meets(req.Level)
}
