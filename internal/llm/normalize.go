package llm

import (
	"fmt"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/model"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/util"
)

// GenericCaution is used when the exam predictor's reply could not be
// structured and the model-provided caution is lost with it.
const GenericCaution = "Predictions could not be fully structured. Treat this as rough guidance only."

const maxMCQOptions = 4

// NormalizeStudyPack coerces parsed model output into a contract-stable
// study pack. A nil parse degrades to the raw text as the summary so the
// caller never fails the request.
func NormalizeStudyPack(parsed map[string]interface{}, raw string) model.StudyPackResponse {
	resp := model.StudyPackResponse{
		Summary:    raw,
		Keywords:   []string{},
		MCQs:       []model.MCQ{},
		PPTOutline: []model.SlideOutline{},
		Flashcards: []model.Flashcard{},
	}
	if parsed == nil {
		return resp
	}

	if s, ok := parsed["summary"].(string); ok {
		resp.Summary = s
	}
	resp.Keywords = toStringSlice(parsed["keywords"])
	resp.Mindmap = toString(parsed["mindmap"])

	for _, v := range toSlice(parsed["mcqs"]) {
		if mcq, ok := normalizeMCQ(v); ok {
			resp.MCQs = append(resp.MCQs, mcq)
		}
	}
	for _, v := range toSlice(parsed["pptOutline"]) {
		if slide, ok := normalizeSlide(v); ok {
			resp.PPTOutline = append(resp.PPTOutline, slide)
		}
	}
	for _, v := range toSlice(parsed["flashcards"]) {
		if card, ok := normalizeFlashcard(v); ok {
			resp.Flashcards = append(resp.Flashcards, card)
		}
	}

	return resp
}

// NormalizeQuiz coerces parsed model output into quiz questions. Unlike the
// other kinds there is no degraded form: zero usable questions is a terminal
// error for the request.
func NormalizeQuiz(parsed map[string]interface{}) ([]model.QuizQuestion, error) {
	if parsed == nil {
		return nil, util.ErrQuizGenerationFailed
	}

	var questions []model.QuizQuestion
	for _, v := range toSlice(parsed["questions"]) {
		if mcq, ok := normalizeMCQ(v); ok {
			questions = append(questions, model.QuizQuestion(mcq))
		}
	}

	if len(questions) == 0 {
		return nil, util.ErrQuizGenerationFailed
	}
	return questions, nil
}

// NormalizeExam coerces parsed model output into an exam prediction,
// degrading to the raw text as the overview when the parse failed.
func NormalizeExam(parsed map[string]interface{}, raw string) model.ExamPrediction {
	if parsed == nil {
		return model.ExamPrediction{
			Overview: raw,
			Topics:   []model.PredictedTopic{},
			Meta:     model.PredictionMeta{Caution: GenericCaution},
		}
	}

	pred := model.ExamPrediction{
		Overview: toString(parsed["overview"]),
		Strategy: toString(parsed["strategy"]),
		Topics:   []model.PredictedTopic{},
	}
	if meta, ok := parsed["meta"].(map[string]interface{}); ok {
		pred.Meta.Caution = toString(meta["caution"])
	}

	for _, v := range toSlice(parsed["topics"]) {
		entry, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		topic := model.PredictedTopic{
			Topic:           toString(entry["topic"]),
			Reason:          toString(entry["reason"]),
			SampleQuestions: toStringSlice(entry["sampleQuestions"]),
		}
		if p, ok := entry["probability"].(float64); ok {
			// Range clamping is left to presentation; only the type is enforced.
			topic.Probability = p
		}
		if len(topic.SampleQuestions) > maxMCQOptions {
			topic.SampleQuestions = topic.SampleQuestions[:maxMCQOptions]
		}
		pred.Topics = append(pred.Topics, topic)
	}

	return pred
}

// normalizeMCQ validates one question entry. Entries missing a question,
// an answer, or a second option are dropped entirely. The answer is
// appended to the options when absent, and options are deduplicated and
// capped at four.
func normalizeMCQ(v interface{}) (model.MCQ, bool) {
	entry, ok := v.(map[string]interface{})
	if !ok {
		return model.MCQ{}, false
	}

	question, _ := entry["question"].(string)
	answer, _ := entry["answer"].(string)
	options := dedupe(toStringSlice(entry["options"]))

	if question == "" || len(options) < 2 || answer == "" {
		return model.MCQ{}, false
	}

	if !contains(options, answer) {
		options = append(options, answer)
	}
	if len(options) > maxMCQOptions {
		options = options[:maxMCQOptions]
	}

	explanation, _ := entry["explanation"].(string)

	return model.MCQ{
		Question:    question,
		Options:     options,
		Answer:      answer,
		Explanation: explanation,
	}, true
}

func normalizeSlide(v interface{}) (model.SlideOutline, bool) {
	entry, ok := v.(map[string]interface{})
	if !ok {
		return model.SlideOutline{}, false
	}
	return model.SlideOutline{
		Title:   toString(entry["title"]),
		Bullets: toStringSlice(entry["bullets"]),
	}, true
}

func normalizeFlashcard(v interface{}) (model.Flashcard, bool) {
	entry, ok := v.(map[string]interface{})
	if !ok {
		return model.Flashcard{}, false
	}
	card := model.Flashcard{
		Front: toString(entry["front"]),
		Back:  toString(entry["back"]),
	}
	if card.Front == "" && card.Back == "" {
		return model.Flashcard{}, false
	}
	return card, true
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func toSlice(v interface{}) []interface{} {
	if arr, ok := v.([]interface{}); ok {
		return arr
	}
	return nil
}

// toStringSlice stringifies every array element, matching the permissive
// element coercion of the upstream contract (numbers become their decimal
// rendering rather than being dropped).
func toStringSlice(v interface{}) []string {
	arr := toSlice(v)
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprintf("%v", e))
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func contains(in []string, s string) bool {
	for _, e := range in {
		if e == s {
			return true
		}
	}
	return false
}
