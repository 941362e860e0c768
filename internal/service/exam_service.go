package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/llm"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/model"
)

const examSystemPrompt = "You are AI Study Buddy acting as an exam prediction assistant. " +
	"You analyse official syllabus, past papers and marking patterns. " +
	"You ONLY return STRICT JSON (no markdown, no backticks, no extra commentary). " +
	"The JSON must be a single object with fields: overview (string, a short explanation of the pattern you see), " +
	"strategy (string, how the student should prepare), topics (array of objects), and meta (object). " +
	"Each item in topics must have: topic (string, a specific area or chapter), reason (string, why it is high probability), " +
	"probability (number between 0 and 1 representing rough probability of appearance), " +
	"and sampleQuestions (array of 1-4 short exam-style questions as strings). " +
	"The meta object must have: caution (string reminding that this is not a guarantee and the student must still cover the full syllabus). " +
	"Be concrete, exam-focused, and conservative in probability values."

type ExamRequest struct {
	Syllabus   string `json:"syllabus"`
	PastPapers string `json:"pastPapers"`
	ExamName   string `json:"examName"`
}

type ExamService struct {
	AI *AIService
}

func NewExamService(ai *AIService) *ExamService {
	return &ExamService{AI: ai}
}

// Predict analyses a syllabus and/or past papers. Either input alone is
// enough; an unstructured reply degrades to a raw overview with the
// generic caution.
func (s *ExamService) Predict(ctx context.Context, req ExamRequest) (model.ExamPrediction, error) {
	syllabus := strings.TrimSpace(req.Syllabus)
	pastPapers := strings.TrimSpace(req.PastPapers)
	if syllabus == "" && pastPapers == "" {
		return model.ExamPrediction{}, errors.New("paste your syllabus and/or past paper questions")
	}

	parsed, raw, err := s.AI.CompleteJSON(ctx, "exam", examSystemPrompt,
		examUserPrompt(strings.TrimSpace(req.ExamName), syllabus, pastPapers), 0.5)
	if err != nil {
		return model.ExamPrediction{}, err
	}

	return llm.NormalizeExam(parsed, raw), nil
}

func examUserPrompt(examName, syllabus, pastPapers string) string {
	var b strings.Builder
	if examName != "" {
		fmt.Fprintf(&b, "Exam name: %s.", examName)
	}
	b.WriteString("\nSyllabus / official topics:\n")
	b.WriteString(orNotProvided(syllabus))
	b.WriteString("\n\nPast papers and observed patterns (you may see raw questions, topics, or notes):\n")
	b.WriteString(orNotProvided(pastPapers))
	b.WriteString("\n\nFrom this, predict high-probability topics and question angles, with probabilities and sample questions.")
	return b.String()
}

func orNotProvided(s string) string {
	if s == "" {
		return "(not provided)"
	}
	return s
}
