package llm

import (
	"errors"
	"reflect"
	"testing"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/util"
)

func TestNormalizeStudyPackDegradesToRaw(t *testing.T) {
	raw := "no json in here at all"
	pack := NormalizeStudyPack(nil, raw)

	if pack.Summary != raw {
		t.Fatalf("summary = %q, want raw text", pack.Summary)
	}
	if pack.Keywords == nil || pack.MCQs == nil || pack.PPTOutline == nil || pack.Flashcards == nil {
		t.Fatal("degraded pack must carry empty, non-nil collections")
	}
	if len(pack.Keywords)+len(pack.MCQs)+len(pack.PPTOutline)+len(pack.Flashcards) != 0 {
		t.Fatal("degraded pack must carry no content beyond the summary")
	}
}

func TestNormalizeStudyPackCoercion(t *testing.T) {
	parsed, ok := Extract(`{
		"summary": "photosynthesis basics",
		"keywords": ["light", 42, "chlorophyll"],
		"mindmap": "root -> leaves",
		"pptOutline": [{"title": "Intro", "bullets": ["a", "b"]}, "not a slide"],
		"flashcards": [{"front": "ATP?", "back": "energy currency"}, {"front": "", "back": ""}],
		"mcqs": [{"question": "Q1", "options": ["x", "y"], "answer": "x"}]
	}`)
	if !ok {
		t.Fatal("fixture failed to parse")
	}

	pack := NormalizeStudyPack(parsed, "raw fallback")

	if pack.Summary != "photosynthesis basics" {
		t.Fatalf("summary = %q", pack.Summary)
	}
	if want := []string{"light", "42", "chlorophyll"}; !reflect.DeepEqual(pack.Keywords, want) {
		t.Fatalf("keywords = %v, want %v", pack.Keywords, want)
	}
	if len(pack.PPTOutline) != 1 || pack.PPTOutline[0].Title != "Intro" {
		t.Fatalf("pptOutline = %v", pack.PPTOutline)
	}
	if len(pack.Flashcards) != 1 {
		t.Fatalf("blank flashcard should be dropped: %v", pack.Flashcards)
	}
	if len(pack.MCQs) != 1 {
		t.Fatalf("mcqs = %v", pack.MCQs)
	}
}

func TestNormalizeMCQ(t *testing.T) {
	tests := []struct {
		name        string
		entry       map[string]interface{}
		wantOK      bool
		wantOptions []string
	}{
		{
			name: "answer appended when absent",
			entry: map[string]interface{}{
				"question": "Capital of France?",
				"options":  []interface{}{"Berlin", "Madrid"},
				"answer":   "Paris",
			},
			wantOK:      true,
			wantOptions: []string{"Berlin", "Madrid", "Paris"},
		},
		{
			name: "duplicate options collapsed",
			entry: map[string]interface{}{
				"question": "2+2?",
				"options":  []interface{}{"4", "4", "5"},
				"answer":   "4",
			},
			wantOK:      true,
			wantOptions: []string{"4", "5"},
		},
		{
			name: "cap at four options",
			entry: map[string]interface{}{
				"question": "Pick one",
				"options":  []interface{}{"a", "b", "c", "d", "e"},
				"answer":   "a",
			},
			wantOK:      true,
			wantOptions: []string{"a", "b", "c", "d"},
		},
		{
			name: "empty question dropped",
			entry: map[string]interface{}{
				"question": "",
				"options":  []interface{}{"a", "b"},
				"answer":   "a",
			},
			wantOK: false,
		},
		{
			name: "single option dropped",
			entry: map[string]interface{}{
				"question": "Q",
				"options":  []interface{}{"only"},
				"answer":   "only",
			},
			wantOK: false,
		},
		{
			name: "empty answer dropped",
			entry: map[string]interface{}{
				"question": "Q",
				"options":  []interface{}{"a", "b"},
				"answer":   "",
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mcq, ok := normalizeMCQ(tt.entry)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !reflect.DeepEqual(mcq.Options, tt.wantOptions) {
				t.Fatalf("options = %v, want %v", mcq.Options, tt.wantOptions)
			}
			if !contains(mcq.Options, mcq.Answer) && len(mcq.Options) == maxMCQOptions {
				// The cap may evict the appended answer only when the model
				// already supplied four distinct wrong options.
				return
			}
			if !contains(mcq.Options, mcq.Answer) {
				t.Fatalf("answer %q missing from options %v", mcq.Answer, mcq.Options)
			}
		})
	}
}

func TestNormalizeQuiz(t *testing.T) {
	t.Run("nil parse is terminal", func(t *testing.T) {
		if _, err := NormalizeQuiz(nil); !errors.Is(err, util.ErrQuizGenerationFailed) {
			t.Fatalf("err = %v, want ErrQuizGenerationFailed", err)
		}
	})

	t.Run("all questions dropped is terminal", func(t *testing.T) {
		parsed := map[string]interface{}{
			"questions": []interface{}{
				map[string]interface{}{"question": "", "options": []interface{}{"a", "b"}, "answer": "a"},
				"not even an object",
			},
		}
		if _, err := NormalizeQuiz(parsed); !errors.Is(err, util.ErrQuizGenerationFailed) {
			t.Fatalf("err = %v, want ErrQuizGenerationFailed", err)
		}
	})

	t.Run("usable questions survive", func(t *testing.T) {
		parsed := map[string]interface{}{
			"questions": []interface{}{
				map[string]interface{}{"question": "Q1", "options": []interface{}{"a", "b"}, "answer": "a"},
				map[string]interface{}{"question": "Q2", "options": []interface{}{"c"}, "answer": "c"},
			},
		}
		questions, err := NormalizeQuiz(parsed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(questions) != 1 || questions[0].Question != "Q1" {
			t.Fatalf("questions = %v", questions)
		}
	})
}

func TestNormalizeExam(t *testing.T) {
	t.Run("degrades to raw overview with generic caution", func(t *testing.T) {
		pred := NormalizeExam(nil, "the model rambled")
		if pred.Overview != "the model rambled" {
			t.Fatalf("overview = %q", pred.Overview)
		}
		if pred.Meta.Caution != GenericCaution {
			t.Fatalf("caution = %q", pred.Meta.Caution)
		}
		if pred.Topics == nil || len(pred.Topics) != 0 {
			t.Fatalf("topics = %v, want empty non-nil", pred.Topics)
		}
	})

	t.Run("structured prediction", func(t *testing.T) {
		parsed, ok := Extract(`{
			"overview": "expect mechanics-heavy paper",
			"strategy": "revise derivations first",
			"meta": {"caution": "based on two past papers only"},
			"topics": [
				{"topic": "Kinematics", "reason": "appears every year", "probability": 0.9,
				 "sampleQuestions": ["q1", "q2"]},
				"garbage entry"
			]
		}`)
		if !ok {
			t.Fatal("fixture failed to parse")
		}

		pred := NormalizeExam(parsed, "raw")
		if pred.Overview != "expect mechanics-heavy paper" {
			t.Fatalf("overview = %q", pred.Overview)
		}
		if pred.Meta.Caution != "based on two past papers only" {
			t.Fatalf("caution = %q", pred.Meta.Caution)
		}
		if len(pred.Topics) != 1 {
			t.Fatalf("topics = %v", pred.Topics)
		}
		if pred.Topics[0].Probability != 0.9 {
			t.Fatalf("probability = %v", pred.Topics[0].Probability)
		}
	})
}
