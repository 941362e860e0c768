package service

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type Personality string

const (
	PersonalityFriendly     Personality = "friendly"
	PersonalityProfessional Personality = "professional"
	PersonalitySimple       Personality = "simple"
	PersonalityDetailed     Personality = "detailed"
	PersonalityMotivational Personality = "motivational"
)

type Subject string

const (
	SubjectMath        Subject = "math"
	SubjectScience     Subject = "science"
	SubjectHistory     Subject = "history"
	SubjectEnglish     Subject = "english"
	SubjectProgramming Subject = "programming"
	SubjectGeneral     Subject = "general"
)

var personalityPrompts = map[Personality]string{
	PersonalityFriendly:     "You are a friendly and encouraging AI tutor. Explain concepts clearly with examples and analogies. Use casual language and emojis occasionally. Break down complex topics into simple, digestible parts. Always check if the student understands before moving forward.",
	PersonalityProfessional: "You are a professional academic tutor. Provide structured, clear explanations with proper terminology. Use formal language and cite concepts accurately. Focus on building strong foundational understanding.",
	PersonalitySimple:       "You are a patient tutor who explains things in the simplest way possible. Use everyday examples, avoid technical jargon, and relate concepts to real-life situations. Perfect for beginners. Always use analogies and metaphors.",
	PersonalityDetailed:     "You are a thorough tutor who provides comprehensive explanations. Include examples, step-by-step breakdowns, multiple perspectives, and visual descriptions. Help students understand the 'why' behind concepts, not just the 'what'.",
	PersonalityMotivational: "You are an inspiring mentor who teaches and motivates. Include study tips, encouragement, and real-world applications. Show students why the topic matters and how it connects to their goals.",
}

var subjectPrompts = map[Subject]string{
	SubjectMath:        "Focus on mathematical concepts with clear explanations. Show step-by-step solutions with reasoning for each step. Use visual descriptions (like 'imagine a number line') and relate to practical scenarios. Always explain WHY a formula works, not just HOW to use it.",
	SubjectScience:     "Explain scientific concepts using real-world examples and everyday observations. Use analogies to make complex ideas simple (e.g., 'atoms are like tiny solar systems'). Connect theory to practical applications students can see around them.",
	SubjectHistory:     "Tell history as an engaging story with context and connections. Explain cause and effect, show how events relate to each other, and make it relevant to today. Use memorable details and interesting facts to help retention.",
	SubjectEnglish:     "Help with grammar, literature, and writing by explaining rules with clear examples. Show correct vs incorrect usage. For literature, explain themes and symbolism in relatable terms. Make language learning practical and applicable.",
	SubjectProgramming: "Explain code concepts using simple analogies first, then show code examples. Break down complex logic into small steps. Use comments to explain what each part does. Relate programming concepts to everyday tasks (e.g., 'a loop is like doing dishes - repeat until done').",
	SubjectGeneral:     "Adapt to any subject. Focus on clarity and understanding. Use examples, analogies, and step-by-step explanations. Always check comprehension and encourage questions.",
}

const (
	maxChatContextChars = 7000
	practiceMaxTokens   = 2000
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages           []ChatMessage `json:"messages" binding:"required"`
	Context            string        `json:"context"`
	Personality        Personality   `json:"personality"`
	Subject            Subject       `json:"subject"`
	GeneratePractice   bool          `json:"generatePractice"`
	ExplainDifferently bool          `json:"explainDifferently"`
}

type ChatService struct {
	AI *AIService
}

func NewChatService(ai *AIService) *ChatService {
	return &ChatService{AI: ai}
}

// Reply runs one tutoring turn. The system prompt is assembled from the
// chosen personality and subject, an optional slice of the student's own
// study material, and the practice or re-explain modifiers.
func (s *ChatService) Reply(ctx context.Context, req ChatRequest) (string, error) {
	system := buildChatSystemPrompt(req)

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == openai.ChatMessageRoleAssistant || m.Role == openai.ChatMessageRoleSystem {
			role = m.Role
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	temperature := float32(0.5)
	if req.ExplainDifferently {
		temperature = 0.8
	}
	maxTokens := 0
	if req.GeneratePractice {
		maxTokens = practiceMaxTokens
	}

	reply, err := s.AI.CompleteChat(ctx, "chat", messages, temperature, maxTokens)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = "Sorry, I couldn't generate a response."
	}
	return reply, nil
}

func buildChatSystemPrompt(req ChatRequest) string {
	personality, ok := personalityPrompts[req.Personality]
	if !ok {
		personality = personalityPrompts[PersonalityFriendly]
	}
	subject, ok := subjectPrompts[req.Subject]
	if !ok {
		subject = subjectPrompts[SubjectGeneral]
	}

	var b strings.Builder
	b.WriteString(personality)
	b.WriteString("\n\n")
	b.WriteString(subject)

	if req.GeneratePractice {
		b.WriteString("\n\nThe student wants practice problems. First, briefly explain the concept they asked about. Then generate 2-3 practice questions with clear instructions. For each question, provide: 1) The problem statement, 2) A hint to guide them, 3) The solution with step-by-step explanation. Make it educational, not just a list.")
	}
	if req.ExplainDifferently {
		b.WriteString("\n\nThe student didn't understand the previous explanation. Try a COMPLETELY different approach: 1) Use a real-world analogy or metaphor, 2) Explain it like you're talking to a 10-year-old, 3) Use a story or scenario, 4) Draw comparisons to something familiar. Make it crystal clear and engaging.")
	}

	if trimmed := collapseContext(req.Context); trimmed != "" {
		b.WriteString("\n\nStudy context from student's materials (use when relevant):\n")
		b.WriteString(trimmed)
	}
	return b.String()
}

func collapseContext(s string) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	if len(collapsed) > maxChatContextChars {
		collapsed = collapsed[:maxChatContextChars]
	}
	return collapsed
}
