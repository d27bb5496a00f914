package objective

import "fmt"

// Framework holds the canonical question texts per category, in the order
// they are asked. The sequencer indexes into these lists.
var Framework = map[Category][]string{
	CategoryProblem: {
		"What specific problem are you solving?",
		"Who exactly experiences this problem?",
		"How do they currently handle this problem?",
		"Why is the current solution inadequate?",
		"What happens if this problem isn't solved?",
	},
	CategoryTargetUser: {
		"Who will use this? Be specific.",
		"Can you name 3 specific examples of this type of person/company?",
		"What do they do for a living or in their role?",
		"What's their current workflow for this?",
	},
	CategorySolution: {
		"What will you build to solve this problem?",
		"What is the ONE core feature that solves the problem?",
		"What's the absolute minimum that would work?",
		"What features are you NOT building in version 1?",
	},
	CategoryMetrics: {
		"How will you know if this is successful?",
		"What specific number indicates success?",
		"How do you measure that?",
		"By when do you want to achieve this?",
	},
	CategoryConstraints: {
		"What's your timeline for version 1?",
		"What technologies must you use?",
		"What's non-negotiable? What cannot be compromised?",
		"What resources do you have (time, skills, budget)?",
	},
}

// FirstQuestion returns the fixed opening question of every session.
func FirstQuestion() Question {
	return Question{
		ID:       questionID(CategoryProblem, 1),
		Category: CategoryProblem,
		Text:     Framework[CategoryProblem][0],
	}
}

// questionID builds the stable, category-prefixed question identifier.
func questionID(cat Category, num int) string {
	return fmt.Sprintf("%s_%d", cat, num)
}

// NextQuestion decides the next question to ask, or nil when every category
// has at least one answered, non-follow-up question (the signal to switch
// to scoring).
//
// A category counts as answered only through a question that is both marked
// answered and not a follow-up. Within the first unanswered category, the
// next index is the count of that category's questions already in the
// session, answered or not. An index past the end of the canonical list
// means the category is exhausted and the scan moves on — only reachable
// when the caller bypasses normal flow.
//
// Pure function: appending the returned question to the session is the
// caller's job.
func NextQuestion(s *Session) *Question {
	answered := make(map[Category]bool)
	for _, q := range s.Questions {
		if q.Answered && q.Category != CategoryFollowUp {
			answered[q.Category] = true
		}
	}

	for _, cat := range CategoryOrder {
		if answered[cat] {
			continue
		}

		texts := Framework[cat]
		existing := 0
		for _, q := range s.Questions {
			if q.Category == cat {
				existing++
			}
		}

		num := existing + 1
		if num > len(texts) {
			continue // exhausted
		}

		return &Question{
			ID:       questionID(cat, num),
			Category: cat,
			Text:     texts[num-1],
		}
	}

	return nil
}
