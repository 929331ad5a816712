package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/impactlink/matchengine/internal/domain/models"
	"github.com/impactlink/matchengine/internal/taxonomy"
	"github.com/samber/lo"
)

// Result carries everything the match record needs from one scoring
// pass. Scores are rounded deterministically so recomputing unchanged
// inputs is byte-identical.
type Result struct {
	Overall          int
	Dimensions       models.DimensionScores
	MatchedExpertise []string
	Explanation      string
	CrossCurrency    bool
}

// Scorer computes soft-match scores for pairs that already passed the
// constraint evaluator. Each dimension lands in [0,100] independently;
// the overall score is their fixed weighted sum.
type Scorer struct {
	weights Weights
}

func NewScorer(weights Weights) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{weights: weights}, nil
}

func (s *Scorer) Score(candidate *models.CandidateProfile, assignment *models.Assignment,
	snap *taxonomy.Snapshot) Result {

	compensation, crossCurrency := scoreCompensation(candidate.Compensation, assignment.Compensation)

	dims := models.DimensionScores{
		Skill:        round2(scoreSkills(candidate, assignment.NiceToHaveSkills)),
		Values:       round2(scoreOverlap(candidate.ValuesTagsAsArray(), assignment.ValuesRequiredAsArray())),
		Causes:       round2(scoreOverlap(candidate.CauseTagsAsArray(), assignment.CauseTagsAsArray())),
		Compensation: round2(compensation),
		Location:     round2(scoreLocation(candidate.Location, assignment.Location)),
		Language:     round2(scoreLanguage(candidate, assignment.MinLanguage)),
	}

	overall := dims.Skill*s.weights.Skill +
		dims.Values*s.weights.Values +
		dims.Causes*s.weights.Causes +
		dims.Compensation*s.weights.Compensation +
		dims.Location*s.weights.Location +
		dims.Language*s.weights.Language

	expertise := matchedExpertise(candidate, assignment)

	return Result{
		Overall:          int(math.Round(overall)),
		Dimensions:       dims,
		MatchedExpertise: expertise,
		Explanation:      buildExplanation(candidate, assignment, dims, expertise, snap),
		CrossCurrency:    crossCurrency,
	}
}

// scoreSkills averages the level ratio over the nice-to-have
// requirements. Declaring no optional requirements is neutral, not a
// penalty.
func scoreSkills(candidate *models.CandidateProfile, niceToHave []models.SkillRequirement) float64 {
	if len(niceToHave) == 0 {
		return 100
	}
	var total float64
	for _, req := range niceToHave {
		claim, ok := candidate.ClaimFor(req.SkillID)
		if !ok {
			continue
		}
		minLevel := math.Max(float64(req.MinLevel), 1)
		total += math.Min(float64(claim.Level)/minLevel, 1.0)
	}
	return total / float64(len(niceToHave)) * 100
}

// scoreOverlap is the tag-set overlap relative to what the assignment
// asked for, scaled to 100.
func scoreOverlap(candidateTags, requiredTags []string) float64 {
	shared := lo.Intersect(lo.Uniq(candidateTags), lo.Uniq(requiredTags))
	denominator := math.Max(float64(len(lo.Uniq(requiredTags))), 1)
	return float64(len(shared)) / denominator * 100
}

// scoreCompensation: 100 on overlap, 0 on currency mismatch, linear
// falloff on the gap between the nearer range edges otherwise.
func scoreCompensation(candidate, assignment models.CompensationRange) (score float64, crossCurrency bool) {
	if !strings.EqualFold(candidate.Currency, assignment.Currency) {
		return 0, true
	}
	if candidate.Overlaps(assignment) {
		return 100, false
	}

	var gap float64
	if candidate.Min > assignment.Max {
		gap = float64(candidate.Min - assignment.Max)
	} else {
		gap = float64(assignment.Min - candidate.Max)
	}
	unionWidth := float64(max(candidate.Max, assignment.Max) - min(candidate.Min, assignment.Min))
	if unionWidth <= 0 {
		return 0, false
	}
	return math.Max(100*(1-gap/unionWidth), 0), false
}

// Cross-mode compatibility is an explicit table, not computed.
var crossModeScores = map[models.WorkMode]map[models.WorkMode]float64{
	models.WorkModeRemote: {models.WorkModeHybrid: 50, models.WorkModeOnsite: 0},
	models.WorkModeHybrid: {models.WorkModeRemote: 50, models.WorkModeOnsite: 50},
	models.WorkModeOnsite: {models.WorkModeRemote: 0, models.WorkModeHybrid: 50},
}

func scoreLocation(candidate, assignment models.LocationPreference) float64 {
	if candidate.WorkMode != assignment.WorkMode {
		return crossModeScores[candidate.WorkMode][assignment.WorkMode]
	}
	if candidate.WorkMode == models.WorkModeRemote {
		return 100
	}
	if samePlace(candidate, assignment) {
		return 100
	}
	return 0
}

// samePlace: same city always qualifies; different or unknown cities
// qualify on a country match when either side declared a commute
// radius, or when one side left the city open.
func samePlace(candidate, assignment models.LocationPreference) bool {
	sameCountry := assignment.Country != "" && strings.EqualFold(candidate.Country, assignment.Country)
	if candidate.City != "" && assignment.City != "" {
		if strings.EqualFold(candidate.City, assignment.City) {
			return true
		}
		return sameCountry && (candidate.RadiusKm > 0 || assignment.RadiusKm > 0)
	}
	return sameCountry
}

// scoreLanguage: 100 with no requirement or at least one CEFR step to
// spare, 80 when met exactly. Anything below was already rejected by
// the constraint evaluator.
func scoreLanguage(candidate *models.CandidateProfile, required *models.LanguageRequirement) float64 {
	if required == nil {
		return 100
	}
	claim, ok := candidate.LanguageFor(required.Code)
	if !ok {
		return 0
	}
	steps := claim.Level.StepsAbove(required.Level)
	switch {
	case steps >= 1:
		return 100
	case steps == 0:
		return 80
	default:
		return 0
	}
}

// matchedExpertise lists skill ids present both in the candidate's
// claims and in the assignment's must-have or nice-to-have
// requirements, sorted for determinism.
func matchedExpertise(candidate *models.CandidateProfile, assignment *models.Assignment) []string {
	wanted := make(map[string]bool)
	for _, req := range assignment.MustHaveSkills {
		wanted[req.SkillID] = true
	}
	for _, req := range assignment.NiceToHaveSkills {
		wanted[req.SkillID] = true
	}

	matched := lo.FilterMap(candidate.Skills, func(claim models.SkillClaim, _ int) (string, bool) {
		return claim.SkillID, wanted[claim.SkillID]
	})
	matched = lo.Uniq(matched)
	sort.Strings(matched)
	return matched
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
