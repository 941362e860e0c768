package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/llm"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/model"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/repository"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/util"
	"github.com/priya-tenac/Ai-Study-Buddy/pkg/logger"
)

const (
	defaultWordLimit  = 200
	maxWordLimit      = 400
	summaryPreviewLen = 120
)

type StudyPackRequest struct {
	Text      string            `json:"text" binding:"required"`
	Mode      model.SessionMode `json:"mode"`
	Title     string            `json:"title"`
	WordLimit int               `json:"wordLimit"`
	Mood      model.Mood        `json:"mood"`
	Language  string            `json:"language"`
}

type StudyPackService struct {
	AI       *AIService
	Sessions *repository.StudySessionRepository
}

func NewStudyPackService(ai *AIService, sessions *repository.StudySessionRepository) *StudyPackService {
	return &StudyPackService{AI: ai, Sessions: sessions}
}

// Generate produces the full study pack for a piece of source material and
// records the session. Extraction failure degrades to a plain summary
// rather than failing the request.
func (s *StudyPackService) Generate(ctx context.Context, userID uint, req StudyPackRequest) (model.StudyPackResponse, error) {
	wordLimit := req.WordLimit
	if wordLimit <= 0 {
		wordLimit = defaultWordLimit
	}
	if wordLimit > maxWordLimit {
		wordLimit = maxWordLimit
	}
	if req.Mode == "" {
		req.Mode = model.SessionText
	}

	parsed, raw, err := s.AI.CompleteJSON(ctx, "studypack",
		studyPackSystemPrompt(wordLimit, req.Mood, req.Language),
		req.Text, 0.7)
	if err != nil {
		return model.StudyPackResponse{}, err
	}

	pack := llm.NormalizeStudyPack(parsed, raw)

	session := &model.StudySession{
		UserID:         userID,
		Mode:           req.Mode,
		Title:          sessionTitle(req.Title, req.Text),
		SummaryPreview: preview(pack.Summary, summaryPreviewLen),
	}
	if err := s.Sessions.Append(session, util.MaxRetainedSessions); err != nil {
		// The pack was generated; a bookkeeping failure should not lose it.
		logger.Log.Error("failed to record study session",
			zap.Uint("user_id", userID),
			zap.Error(err))
	}

	return pack, nil
}

func studyPackSystemPrompt(wordLimit int, mood model.Mood, language string) string {
	var b strings.Builder
	b.WriteString("You are a study assistant. From the provided material, produce a JSON object with exactly these keys:\n")
	fmt.Fprintf(&b, "\"summary\" (a clear summary of at most %d words), ", wordLimit)
	b.WriteString("\"keywords\" (8-15 short important terms), ")
	b.WriteString("\"mcqs\" (5 multiple-choice questions, each with \"question\", \"options\" (4 strings), \"answer\", \"explanation\"), ")
	b.WriteString("\"pptOutline\" (slides, each with \"title\" and \"bullets\"), ")
	b.WriteString("\"mindmap\" (Mermaid mind-map source using 'mindmap' syntax: one central node for the main topic, 3-6 big branches for major ideas, 2-4 sub-branches each, short phrases), ")
	b.WriteString("\"flashcards\" (8-12 cards with \"front\" and \"back\").\n")

	switch mood {
	case model.MoodSleepy:
		b.WriteString("The student is tired: keep the language simple, short sentences, gentle tone.\n")
	case model.MoodEnergized:
		b.WriteString("The student is energized: be dense and challenging, include harder questions.\n")
	}
	if language != "" {
		fmt.Fprintf(&b, "Write all output in %s.\n", language)
	}

	b.WriteString("Respond with the JSON object only, no markdown fences, no commentary.")
	return b.String()
}

func sessionTitle(title, text string) string {
	if t := strings.TrimSpace(title); t != "" {
		return preview(t, 80)
	}
	return preview(text, 80)
}

// preview collapses whitespace and truncates to n characters.
func preview(s string, n int) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	runes := []rune(collapsed)
	if len(runes) <= n {
		return collapsed
	}
	return string(runes[:n])
}
