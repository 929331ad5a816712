package matching

import (
	"fmt"
	"strings"

	"github.com/impactlink/matchengine/internal/domain/models"
	"github.com/impactlink/matchengine/internal/taxonomy"
	"github.com/samber/lo"
)

// buildExplanation renders the human-readable summary for a match.
// Template-generated and deterministic; there is no free-text
// generation anywhere in the engine. Skill ids render as their
// vocabulary labels.
func buildExplanation(candidate *models.CandidateProfile, assignment *models.Assignment,
	dims models.DimensionScores, expertise []string, snap *taxonomy.Snapshot) string {

	var parts []string

	mustHaves := len(assignment.MustHaveSkills)
	if mustHaves > 0 {
		parts = append(parts, fmt.Sprintf("meets all %d required skills", mustHaves))
	}
	if len(expertise) > 0 {
		labels := lo.Map(expertise, func(skillID string, _ int) string {
			return snap.Label(taxonomy.KindSkill, skillID)
		})
		parts = append(parts, fmt.Sprintf("shared expertise: %s", strings.Join(labels, ", ")))
	}
	if dims.Values > 0 {
		parts = append(parts, fmt.Sprintf("values alignment %.0f%%", dims.Values))
	}
	if dims.Causes > 0 {
		parts = append(parts, fmt.Sprintf("cause alignment %.0f%%", dims.Causes))
	}
	switch {
	case dims.Compensation == 100:
		parts = append(parts, "compensation ranges overlap")
	case dims.Compensation == 0:
		parts = append(parts, "compensation expectations apart")
	default:
		parts = append(parts, fmt.Sprintf("compensation close (%.0f%%)", dims.Compensation))
	}
	if !candidate.Availability.Overlaps(assignment.StartWindow) {
		parts = append(parts, "start window outside stated availability")
	} else if !candidate.Hours.Overlaps(assignment.Hours) {
		parts = append(parts, "weekly hours differ from the assignment's range")
	}
	parts = append(parts, fmt.Sprintf("location fit %.0f%%", dims.Location))
	if assignment.MinLanguage != nil {
		parts = append(parts, fmt.Sprintf("language requirement (%s %s) met",
			assignment.MinLanguage.Code, assignment.MinLanguage.Level))
	}

	return strings.Join(parts, "; ")
}
