package objective

import (
	"fmt"
	"sort"
	"strings"
)

// ClarityThreshold is the minimum score required to finalize an objective.
const ClarityThreshold = 80

// categoryPrefixes maps each category to the id prefix used when scoring.
// The problem and solution prefixes keep their trailing underscore so that
// ids are matched the same way the rubric defines them.
var categoryPrefixes = map[Category]string{
	CategoryProblem:     "problem_",
	CategoryTargetUser:  "target_user",
	CategorySolution:    "solution_",
	CategoryMetrics:     "success_metrics",
	CategoryConstraints: "constraints",
}

// ClarityScore computes the 0-100 objective clarity score: five independent
// category sub-scores of up to 20 points each, total capped at 100.
//
// Follow-up answers keep their parent's id prefix and therefore count toward
// the parent category — intentional, they add detail to it.
func ClarityScore(answers map[string]Answer) int {
	ids := sortedIDs(answers)
	score := 0

	// Problem specificity: length of the first problem answer.
	if id, ok := firstWithPrefix(ids, categoryPrefixes[CategoryProblem]); ok {
		switch n := len(answers[id].Text); {
		case n > 50:
			score += 20
		case n > 20:
			score += 10
		}
	}

	// Target user clarity: concrete examples beat length.
	if id, ok := firstWithPrefix(ids, categoryPrefixes[CategoryTargetUser]); ok {
		text := answers[id].Text
		switch {
		case digitRE.MatchString(text) || strings.Contains(strings.ToLower(text), "example"):
			score += 20
		case len(text) > 30:
			score += 10
		}
	}

	// Solution specificity: answer count.
	score += countSubScore(countWithPrefix(ids, categoryPrefixes[CategorySolution]))

	// Measurable metrics: numbers anywhere in the combined answers.
	var metrics []string
	for _, id := range ids {
		if strings.HasPrefix(id, categoryPrefixes[CategoryMetrics]) {
			metrics = append(metrics, answers[id].Text)
		}
	}
	if len(metrics) > 0 {
		joined := strings.Join(metrics, " ")
		switch {
		case digitRE.MatchString(joined):
			score += 20
		case len(joined) > 30:
			score += 10
		}
	}

	// Constraints defined: answer count.
	score += countSubScore(countWithPrefix(ids, categoryPrefixes[CategoryConstraints]))

	if score > 100 {
		score = 100
	}
	return score
}

// countSubScore maps an answer count to a category sub-score.
func countSubScore(n int) int {
	switch {
	case n >= 3:
		return 20
	case n == 2:
		return 15
	case n == 1:
		return 10
	default:
		return 0
	}
}

// WeakAreas lists categories needing more clarity, in category order.
// Zero answers is "Missing", exactly one is "Needs more detail", two or
// more is silent. Weakness is keyed off answer counts, not sub-scores, so
// the two views can disagree at the margins — a category with two terse
// answers is never weak even while its sub-score sits below the cap.
// Preserved as a characteristic of the rubric, not a defect.
func WeakAreas(answers map[string]Answer) []string {
	ids := sortedIDs(answers)
	var weak []string

	for _, cat := range CategoryOrder {
		n := 0
		for _, id := range ids {
			if strings.HasPrefix(id, string(cat)) {
				n++
			}
		}
		switch n {
		case 0:
			weak = append(weak, fmt.Sprintf("Missing: %s", cat))
		case 1:
			weak = append(weak, fmt.Sprintf("Needs more detail: %s", cat))
		}
	}

	return weak
}

// BuildSummary concatenates all non-follow-up answers per category into the
// five objective summary fields.
func BuildSummary(answers map[string]Answer) Summary {
	parts := make(map[Category][]string)

	for _, id := range sortedIDs(answers) {
		if IsFollowUpID(id) {
			continue
		}
		for _, cat := range CategoryOrder {
			if strings.HasPrefix(id, string(cat)) {
				parts[cat] = append(parts[cat], answers[id].Text)
				break
			}
		}
	}

	join := func(cat Category) string {
		return strings.TrimSpace(strings.Join(parts[cat], " "))
	}

	return Summary{
		Problem:        join(CategoryProblem),
		TargetUser:     join(CategoryTargetUser),
		Solution:       join(CategorySolution),
		SuccessMetrics: join(CategoryMetrics),
		Constraints:    join(CategoryConstraints),
	}
}

// sortedIDs returns answer ids in lexical order, making "first answer with
// prefix" deterministic over the map.
func sortedIDs(answers map[string]Answer) []string {
	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func firstWithPrefix(ids []string, prefix string) (string, bool) {
	for _, id := range ids {
		if strings.HasPrefix(id, prefix) {
			return id, true
		}
	}
	return "", false
}

func countWithPrefix(ids []string, prefix string) int {
	n := 0
	for _, id := range ids {
		if strings.HasPrefix(id, prefix) {
			n++
		}
	}
	return n
}
