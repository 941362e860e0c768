package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/llm"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/model"
)

const (
	minQuizQuestions     = 3
	maxQuizQuestions     = 15
	defaultQuizQuestions = 5
)

type QuizService struct {
	AI *AIService
}

func NewQuizService(ai *AIService) *QuizService {
	return &QuizService{AI: ai}
}

// ClampQuestionCount bounds a requested question count to the supported range.
func ClampQuestionCount(n int) int {
	if n <= 0 {
		return defaultQuizQuestions
	}
	if n < minQuizQuestions {
		return minQuizQuestions
	}
	if n > maxQuizQuestions {
		return maxQuizQuestions
	}
	return n
}

// Generate asks the model for a question set on a topic. Harder difficulties
// run hotter so the questions vary more.
func (s *QuizService) Generate(ctx context.Context, topic string, difficulty model.Difficulty, count int, mood model.Mood) ([]model.QuizQuestion, error) {
	count = ClampQuestionCount(count)

	parsed, _, err := s.AI.CompleteJSON(ctx, "quiz",
		quizSystemPrompt(difficulty, count, mood),
		"Topic or syllabus: "+topic, quizTemperature(difficulty))
	if err != nil {
		return nil, err
	}

	return llm.NormalizeQuiz(parsed)
}

func quizTemperature(difficulty model.Difficulty) float32 {
	switch difficulty {
	case model.DifficultyEasy:
		return 0.5
	case model.DifficultyHard:
		return 0.9
	default:
		return 0.7
	}
}

func quizSystemPrompt(difficulty model.Difficulty, count int, mood model.Mood) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a quiz master. Produce a JSON object with a \"questions\" array of exactly %d %s multiple-choice questions on the given topic.\n", count, difficulty)
	b.WriteString("Each question has \"question\", \"options\" (4 distinct strings), \"answer\" (must be one of the options verbatim), and \"explanation\".\n")

	switch mood {
	case model.MoodSleepy:
		b.WriteString("The player is tired: favour recall questions with short option texts.\n")
	case model.MoodEnergized:
		b.WriteString("The player is energized: favour application and reasoning questions.\n")
	}

	b.WriteString("Respond with the JSON object only, no markdown fences, no commentary.")
	return b.String()
}
