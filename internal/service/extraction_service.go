package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/config"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/util"
	"github.com/priya-tenac/Ai-Study-Buddy/pkg/logger"
)

const (
	maxPDFPages    = 150
	maxPDFChars    = 60000
	ocrHTTPTimeout = 60 * time.Second
)

// ExtractionService turns uploaded source material (PDFs, images, audio)
// into plain text that can feed the study-pack pipeline.
type ExtractionService struct {
	AI         *AIService
	Storage    *StorageService
	OCR        config.OCRConfig
	httpClient *http.Client
}

func NewExtractionService(ai *AIService, storage *StorageService, ocr config.OCRConfig) *ExtractionService {
	return &ExtractionService{
		AI:         ai,
		Storage:    storage,
		OCR:        ocr,
		httpClient: &http.Client{Timeout: ocrHTTPTimeout},
	}
}

// PDFText extracts readable text from PDF bytes. Parsing is capped at 150
// pages and the result at 60k characters so huge books still return fast.
// Image-only scans produce no text and surface ErrNoReadableText.
func (s *ExtractionService) PDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	pages := reader.NumPage()
	if pages > maxPDFPages {
		pages = maxPDFPages
	}

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Log.Debug("pdf page unreadable", zap.Int("page", i), zap.Error(err))
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
		if b.Len() > maxPDFChars {
			break
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", util.ErrNoReadableText
	}
	if len(text) > maxPDFChars {
		text = text[:maxPDFChars]
	}
	return text, nil
}

type ocrSpaceResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool        `json:"IsErroredOnProcessing"`
	ErrorMessage          interface{} `json:"ErrorMessage"`
}

// ImageText runs OCR over image bytes through the OCR.space API using its
// engine 2 and a base64 data URI payload.
func (s *ExtractionService) ImageText(ctx context.Context, data []byte, mimeType string) (string, error) {
	if s.OCR.APIKey == "" {
		return "", fmt.Errorf("ocr backend is not configured")
	}
	if mimeType == "" {
		mimeType = "image/png"
	}

	form := url.Values{}
	form.Set("apikey", s.OCR.APIKey)
	form.Set("language", "eng")
	form.Set("isOverlayRequired", "false")
	form.Set("OCREngine", "2")
	form.Set("base64Image", fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.OCR.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ocr request failed with status %d", resp.StatusCode)
	}

	var result ocrSpaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode ocr response: %w", err)
	}
	if result.IsErroredOnProcessing {
		return "", fmt.Errorf("ocr processing error: %v", result.ErrorMessage)
	}

	if len(result.ParsedResults) == 0 {
		return "", util.ErrNoReadableText
	}
	text := strings.TrimSpace(result.ParsedResults[0].ParsedText)
	if text == "" {
		return "", util.ErrNoReadableText
	}
	return text, nil
}

// AudioText transcribes an uploaded audio file. Containers the speech
// model does not accept are transcoded to mp3 first.
func (s *ExtractionService) AudioText(ctx context.Context, filename string, data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "audio-*"+filepath.Ext(filename))
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	tmp.Close()

	path := tmpPath
	if needsTranscode(filename) {
		transcoded, err := transcodeToMP3(tmpPath)
		if err != nil {
			return "", fmt.Errorf("transcode audio: %w", err)
		}
		defer os.Remove(transcoded)
		path = transcoded
	}

	audio, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer audio.Close()

	text, err := s.AI.Transcribe(ctx, filepath.Base(path), audio)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", util.ErrNoReadableText
	}
	return text, nil
}

// needsTranscode reports whether the container must be converted before
// transcription. The common speech-API formats pass through untouched.
func needsTranscode(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp3", ".wav", ".m4a", ".ogg", ".flac", ".webm", ".mp4":
		return false
	}
	return true
}

func transcodeToMP3(path string) (string, error) {
	if _, err := ffmpeg.Probe(path); err != nil {
		return "", fmt.Errorf("probe audio: %w", err)
	}

	out := path + ".mp3"
	err := ffmpeg.Input(path).
		Output(out, ffmpeg.KwArgs{"vn": "", "acodec": "libmp3lame", "q:a": "4"}).
		OverWriteOutput().
		Run()
	if err != nil {
		return "", err
	}
	return out, nil
}

// Archive stores the original upload alongside the extraction, named by
// user and timestamp so repeat uploads never collide.
func (s *ExtractionService) Archive(ctx context.Context, userID uint, filename, contentType string, data []byte) {
	name := fmt.Sprintf("%d/%d-%s", userID, time.Now().UnixNano(), filepath.Base(filename))
	if _, err := s.Storage.Upload(ctx, name, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		logger.Log.Warn("failed to archive upload",
			zap.Uint("user_id", userID),
			zap.String("file", filename),
			zap.Error(err))
	}
}
