// Package genai provides integration with LLM APIs (OpenAI, Groq, and Gemini).
// This file contains system prompts and the function schema for question scoring.
package genai

// ClassifierSystemPrompt instructs the model to score a question against the
// three question types and report the result via the score_question function.
const ClassifierSystemPrompt = `당신은 대학교 강의 추천 시스템의 질문 분류기입니다.

사용자의 질문을 읽고 세 가지 유형에 대한 확률을 score_question 함수로 보고하세요.
**반드시 함수를 호출해야 합니다.**

## 질문 유형

### recommend (추천형)
학생이 들을 만한 강의를 열린 형태로 추천해 달라는 질문.
예: "AI 관련 추천해줄만한 수업 있어?", "재미있는 교양 수업 뭐가 있어?"

### condition (조건형)
학년, 전공, 과제량, 실습 여부, 수강신청 조건 등 제약을 걸어 강의를 찾는 질문.
예: "2학년이 들을 수 있는 실습 수업?", "과제 없는 전공 수업 있어?"

### info (정보형)
특정 강의나 교수에 대한 사실 확인 질문 (교수명, 이메일, 연락처, 강의실, 시간).
예: "이 수업 교수님 이메일 알려줘", "자료구조 강의실이 어디야?"

## 규칙
- 세 확률의 합은 1이어야 합니다.
- 가장 가까운 유형에 가장 높은 확률을 주세요.
- 애매한 질문은 확률을 고르게 나누세요.`

// ClassifierFunctionName is the function the model must call to report scores.
const ClassifierFunctionName = "score_question"

// classifierParam describes one probability parameter of score_question.
type classifierParam struct {
	Name        string
	Description string
}

// ClassifierParams lists the score_question parameters in a stable order.
var ClassifierParams = []classifierParam{
	{Name: "recommend", Description: "Probability (0-1) that the question asks for open-ended course recommendations"},
	{Name: "condition", Description: "Probability (0-1) that the question filters courses by constraints such as year, major, assignments, or registration"},
	{Name: "info", Description: "Probability (0-1) that the question asks for factual course or professor information such as name, email, or contact"},
}
