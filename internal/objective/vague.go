package objective

import (
	"regexp"
	"strings"
)

// followUpSuffix marks follow-up question ids. Any id carrying it is exempt
// from vagueness detection — a follow-up answer is accepted unconditionally,
// which guarantees the follow-up chain never grows past depth 1.
const followUpSuffix = "_followup"

// IsFollowUpID reports whether a question id denotes a follow-up question.
// Deliberately a substring check, not a suffix check: the guard is broader
// than the generator.
func IsFollowUpID(questionID string) bool {
	return strings.Contains(questionID, followUpSuffix)
}

// FollowUpID builds the follow-up id for a parent question.
func FollowUpID(parentID string) string {
	return parentID + followUpSuffix
}

// vagueWords are checked in this fixed order; first match wins.
// Each maps to the canonical follow-up question for that word.
var vagueWords = []struct {
	word     string
	followUp string
}{
	{"people", "Which specific group of people? Can you name 3 examples?"},
	{"users", "What type of users exactly? Be specific."},
	{"better", "Better than what? By how much?"},
	{"faster", "How much faster? What's the current speed?"},
	{"easier", "Easier than what? How is it currently difficult?"},
	{"improve", "Improve what specific metric? By how much?"},
	{"help", "Help them do what exactly? What's the specific action?"},
	{"manage", "Manage what specifically? What data or process?"},
	{"track", "Track what data specifically? For what purpose?"},
	{"organize", "Organize what exactly? How is it currently disorganized?"},
}

// Indefinite pronoun patterns checked on short answers after the word list.
var vagueIndicators = []struct {
	re       *regexp.Regexp
	followUp string
}{
	{regexp.MustCompile(`\b(someone|anyone|everyone)\b`), "Who specifically? Give examples."},
	{regexp.MustCompile(`\b(something|anything|everything)\b`), "What specifically?"},
	{regexp.MustCompile(`\b(somewhere|anywhere|everywhere)\b`), "Where specifically?"},
	{regexp.MustCompile(`\b(somehow|anyhow)\b`), "How specifically?"},
}

var (
	digitRE      = regexp.MustCompile(`\d+`)
	properNounRE = regexp.MustCompile(`[A-Z][a-z]+\s+[A-Z][a-z]+`)
)

// specificityPhrases exempt a long answer from the standalone vague-word check.
var specificityPhrases = []string{"for example", "such as", "specifically", "including"}

// shortAnswerLimit splits the two detection modes: short answers get the
// strict substring check, longer ones only the standalone-token check with
// specificity exemptions.
const shortAnswerLimit = 100

// detailedAnswerLimit: above this, length alone counts as a specificity signal.
const detailedAnswerLimit = 200

// DetectVague classifies an answer as too vague to accept. When vague it
// returns the follow-up question text to ask instead of advancing.
//
// Follow-up answers are never vague, regardless of content. Short answers
// (<=100 chars) are assumed low-context: any vague term is suspect. Long
// answers trip only on a standalone vague token with zero specificity
// signals (digits, a two-word capitalized phrase, >200 chars total, or an
// example-introducing phrase). A deliberate heuristic — false positives and
// negatives are expected.
func DetectVague(answer, questionID string) (bool, string) {
	if IsFollowUpID(questionID) {
		return false, ""
	}

	lower := strings.ToLower(answer)

	if len(answer) > shortAnswerLimit {
		tokens := strings.Fields(lower)
		tokenSet := make(map[string]bool, len(tokens))
		for _, t := range tokens {
			tokenSet[t] = true
		}

		for _, v := range vagueWords {
			if !tokenSet[v.word] {
				continue
			}
			if hasSpecifics(answer, lower) {
				continue
			}
			return true, v.followUp
		}
		return false, ""
	}

	for _, v := range vagueWords {
		if strings.Contains(lower, v.word) {
			return true, v.followUp
		}
	}

	for _, ind := range vagueIndicators {
		if ind.re.MatchString(lower) {
			return true, ind.followUp
		}
	}

	return false, ""
}

// hasSpecifics reports whether an answer carries any specificity signal.
func hasSpecifics(answer, lower string) bool {
	if digitRE.MatchString(answer) {
		return true
	}
	if properNounRE.MatchString(answer) {
		return true
	}
	if len(answer) > detailedAnswerLimit {
		return true
	}
	for _, phrase := range specificityPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
