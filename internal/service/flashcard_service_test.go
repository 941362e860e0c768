package service

import (
	"testing"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/model"
)

func testCards() []model.Flashcard {
	return []model.Flashcard{
		{Front: "A", Back: "a"},
		{Front: "B", Back: "b"},
		{Front: "C", Back: "c"},
	}
}

func TestRevealToggles(t *testing.T) {
	svc := NewFlashcardService()
	deck := svc.StartDeck(1, testCards())

	view, err := svc.Reveal(1, deck.ID)
	if err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	if !view.ShowBack || view.Card.Back != "a" {
		t.Fatalf("back not revealed: %+v", view)
	}

	view, _ = svc.Reveal(1, deck.ID)
	if view.ShowBack || view.Card.Back != "" {
		t.Fatalf("back not hidden again: %+v", view)
	}
}

func TestGradeAgainRequeuesCard(t *testing.T) {
	svc := NewFlashcardService()
	deck := svc.StartDeck(1, testCards())

	svc.Reveal(1, deck.ID)
	view, err := svc.Grade(1, deck.ID, GradeAgain)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}

	// A moves one slot later: deck is now B, A, C and we stay at slot 0.
	if view.Total != 3 {
		t.Fatalf("deck length changed: %d", view.Total)
	}
	if view.Index != 0 || view.Card.Front != "B" {
		t.Fatalf("current card = %q at %d, want B at 0", view.Card.Front, view.Index)
	}
	if view.ShowBack {
		t.Fatal("grading must hide the back")
	}

	// Advancing past B brings A straight back.
	view, _ = svc.Grade(1, deck.ID, GradeGood)
	if view.Card.Front != "A" {
		t.Fatalf("requeued card = %q, want A", view.Card.Front)
	}
}

func TestGradeAgainOnLastCardKeepsLength(t *testing.T) {
	svc := NewFlashcardService()
	deck := svc.StartDeck(1, testCards())

	svc.Grade(1, deck.ID, GradeGood)
	svc.Grade(1, deck.ID, GradeEasy)

	view, _ := svc.GetDeck(1, deck.ID)
	if view.Index != 2 {
		t.Fatalf("index = %d, want 2", view.Index)
	}

	view, _ = svc.Grade(1, deck.ID, GradeAgain)
	if view.Total != 3 {
		t.Fatalf("deck length changed: %d", view.Total)
	}
	if view.Card.Front != "C" {
		t.Fatalf("current card = %q, want C", view.Card.Front)
	}
}

func TestGoodAndEasyClampAtLastCard(t *testing.T) {
	svc := NewFlashcardService()
	deck := svc.StartDeck(1, testCards())

	for i := 0; i < 5; i++ {
		if _, err := svc.Grade(1, deck.ID, GradeEasy); err != nil {
			t.Fatalf("Grade: %v", err)
		}
	}

	view, _ := svc.GetDeck(1, deck.ID)
	if view.Index != 2 || view.Card.Front != "C" {
		t.Fatalf("index = %d card = %q, want last card", view.Index, view.Card.Front)
	}
}

func TestSingleCardDeckAgainIsNoop(t *testing.T) {
	svc := NewFlashcardService()
	deck := svc.StartDeck(1, []model.Flashcard{{Front: "only", Back: "one"}})

	view, _ := svc.Grade(1, deck.ID, GradeAgain)
	if view.Total != 1 || view.Card.Front != "only" {
		t.Fatalf("single-card deck disturbed: %+v", view)
	}
}
