package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/config"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/llm"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/util"
	"github.com/priya-tenac/Ai-Study-Buddy/pkg/logger"
	"github.com/priya-tenac/Ai-Study-Buddy/pkg/monitoring"
)

// AIService wraps the chat-completion provider. Every feature that talks to
// the model goes through CompleteJSON or Complete so the timeout, metrics and
// logging treatment stay uniform.
type AIService struct {
	client  *openai.Client
	model   string
	whisper string
	timeout time.Duration
}

func NewAIService(cfg config.AIConfig) *AIService {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	return &AIService{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		whisper: cfg.WhisperModel,
		timeout: timeout,
	}
}

// Complete sends one system+user exchange and returns the raw text reply.
func (s *AIService) Complete(ctx context.Context, kind, system, user string, temperature float32) (string, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
	})
	monitoring.ObserveAICall(kind, start, err)
	if err != nil {
		logger.Log.Error("ai completion failed",
			zap.String("kind", kind),
			zap.Error(err))
		return "", fmt.Errorf("%w: %v", util.ErrUpstreamAI, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", util.ErrUpstreamAI)
	}
	return resp.Choices[0].Message.Content, nil
}

// CompleteChat sends a full message history, for the conversational buddy.
// maxTokens 0 leaves the provider default in place.
func (s *AIService) CompleteChat(ctx context.Context, kind string, messages []openai.ChatCompletionMessage, temperature float32, maxTokens int) (string, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	monitoring.ObserveAICall(kind, start, err)
	if err != nil {
		logger.Log.Error("ai chat failed",
			zap.String("kind", kind),
			zap.Error(err))
		return "", fmt.Errorf("%w: %v", util.ErrUpstreamAI, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", util.ErrUpstreamAI)
	}
	return resp.Choices[0].Message.Content, nil
}

// CompleteJSON runs a completion and extracts the embedded JSON object.
// The raw reply is always returned so callers can degrade when extraction
// fails; parsed is nil in that case.
func (s *AIService) CompleteJSON(ctx context.Context, kind, system, user string, temperature float32) (map[string]interface{}, string, error) {
	raw, err := s.Complete(ctx, kind, system, user, temperature)
	if err != nil {
		return nil, "", err
	}

	parsed, ok := llm.Extract(raw)
	if !ok {
		logger.Log.Warn("ai reply was not parseable json",
			zap.String("kind", kind),
			zap.Int("raw_len", len(raw)))
		return nil, raw, nil
	}
	return parsed, raw, nil
}

// Transcribe runs speech-to-text over an uploaded audio stream.
func (s *AIService) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	if s.whisper == "" {
		return "", errors.New("transcription model is not configured")
	}
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    s.whisper,
		FilePath: filename,
		Reader:   audio,
	})
	monitoring.ObserveAICall("transcribe", start, err)
	if err != nil {
		logger.Log.Error("audio transcription failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", util.ErrUpstreamAI, err)
	}
	return resp.Text, nil
}
