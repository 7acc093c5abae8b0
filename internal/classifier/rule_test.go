package classifier

import "testing"

func TestRuleClassifier(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     Label
	}{
		{"professor lookup", "이 수업 교수님 이메일 알려줘", LabelInfo},
		{"contact lookup", "담당 교수 연락처 뭐야", LabelInfo},
		{"course name lookup", "그 강의명이 뭐였지", LabelInfo},
		{"year filter", "2학년이 들을만한 수업", LabelCondition},
		{"assignment filter", "과제 없는 수업 있어?", LabelCondition},
		{"practicum filter", "실습 위주 수업 추천해줘", LabelCondition},
		{"major filter", "컴퓨터공학 전공 수업", LabelCondition},
		{"registration", "수강신청 조건이 어떻게 돼", LabelCondition},
		{"plain recommend", "AI 관련 괜찮은 수업 추천", LabelRecommend},
		{"which", "어떤 수업이 들을만해?", LabelRecommend},
		{"tell me", "재미있는 수업 알려줘", LabelRecommend},
		{"no match", "안녕하세요", LabelOther},
		{"empty question", "", LabelOther},
	}

	r := NewRuleClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Classify(tt.question); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.question, got, tt.want)
			}
		})
	}
}

// A question matching both an info keyword and a recommend keyword must
// resolve to info: precedence is total and ordered.
func TestRuleClassifier_Precedence(t *testing.T) {
	r := NewRuleClassifier()

	if got := r.Classify("교수님이 좋은 수업 추천해줘"); got != LabelInfo {
		t.Errorf("info+recommend question = %v, want %v", got, LabelInfo)
	}
	if got := r.Classify("3학년 추천 수업 알려줘"); got != LabelCondition {
		t.Errorf("condition+recommend question = %v, want %v", got, LabelCondition)
	}
}

func TestLabelString(t *testing.T) {
	tests := []struct {
		label Label
		want  string
	}{
		{LabelRecommend, "recommend"},
		{LabelCondition, "condition"},
		{LabelInfo, "info"},
		{LabelOther, "other"},
		{Label(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.label.String(); got != tt.want {
			t.Errorf("Label(%d).String() = %q, want %q", tt.label, got, tt.want)
		}
	}
}
