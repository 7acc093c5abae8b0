package classifier

import "strings"

// Keyword sets for the rule fallback. Matching is substring-based on the
// lowercased question. Precedence is info > condition > recommend: a
// question mentioning a professor's email is a lookup even if it also
// says "추천해줘".
var (
	infoKeywords = []string{
		"교수",  // professor
		"강의명", // course name
		"이메일", // email
		"연락처", // contact / phone
	}

	conditionKeywords = []string{
		"학년",   // year / grade
		"과제",   // assignment
		"실습",   // practicum
		"조건",   // condition / prerequisite
		"전공",   // major
		"수강신청", // course registration
	}

	recommendKeywords = []string{
		"추천",  // recommend
		"어떤",  // which
		"뭐가",  // what's good
		"알려줘", // tell me
		"괜찮은", // decent
		"좋은",  // good
	}
)

// RuleClassifier assigns labels by ordered keyword matching. It is fully
// deterministic and never fails, which makes it the fallback of last
// resort when the model path is unavailable or not confident enough.
type RuleClassifier struct{}

// NewRuleClassifier creates a rule-based classifier.
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

// Classify returns the first matching category in precedence order,
// or LabelOther when no keyword matches (including the empty question).
func (r *RuleClassifier) Classify(question string) Label {
	q := strings.ToLower(question)

	if containsAny(q, infoKeywords) {
		return LabelInfo
	}
	if containsAny(q, conditionKeywords) {
		return LabelCondition
	}
	if containsAny(q, recommendKeywords) {
		return LabelRecommend
	}
	return LabelOther
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
