package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/model"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/util"
)

// Grade is the self-assessment a student gives a card after revealing it.
type Grade string

const (
	GradeAgain Grade = "again"
	GradeGood  Grade = "good"
	GradeEasy  Grade = "easy"
)

// DeckSession is an in-memory review pass over a study pack's flashcards.
// The deck order mutates as cards are graded but its length never changes.
type DeckSession struct {
	mu sync.Mutex

	ID       string
	UserID   uint
	Cards    []model.Flashcard
	Index    int
	ShowBack bool
}

// FlashcardService holds live deck sessions keyed by UUID.
type FlashcardService struct {
	mu    sync.RWMutex
	decks map[string]*DeckSession
}

func NewFlashcardService() *FlashcardService {
	return &FlashcardService{decks: make(map[string]*DeckSession)}
}

// StartDeck opens a review session over the given cards.
func (s *FlashcardService) StartDeck(userID uint, cards []model.Flashcard) *DeckSession {
	deck := &DeckSession{
		ID:     uuid.NewString(),
		UserID: userID,
		Cards:  append([]model.Flashcard(nil), cards...),
	}
	s.mu.Lock()
	s.decks[deck.ID] = deck
	s.mu.Unlock()
	return deck
}

func (s *FlashcardService) lookup(userID uint, id string) (*DeckSession, error) {
	s.mu.RLock()
	deck, ok := s.decks[id]
	s.mu.RUnlock()
	if !ok || deck.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	return deck, nil
}

// Reveal toggles whether the current card's back is showing.
func (s *FlashcardService) Reveal(userID uint, id string) (*DeckView, error) {
	deck, err := s.lookup(userID, id)
	if err != nil {
		return nil, err
	}

	deck.mu.Lock()
	defer deck.mu.Unlock()

	deck.ShowBack = !deck.ShowBack
	return deck.viewLocked(), nil
}

// Grade applies a review grade to the current card. Again re-queues the
// card one slot later so it comes straight back; Good and Easy move on,
// stopping at the last card. Every grade hides the back again.
func (s *FlashcardService) Grade(userID uint, id string, grade Grade) (*DeckView, error) {
	deck, err := s.lookup(userID, id)
	if err != nil {
		return nil, err
	}

	deck.mu.Lock()
	defer deck.mu.Unlock()

	switch grade {
	case GradeAgain:
		if len(deck.Cards) > 1 {
			idx := deck.Index
			card := deck.Cards[idx]
			rest := make([]model.Flashcard, 0, len(deck.Cards))
			rest = append(rest, deck.Cards[:idx]...)
			rest = append(rest, deck.Cards[idx+1:]...)

			insert := idx + 1
			if insert > len(rest) {
				insert = len(rest)
			}
			cards := make([]model.Flashcard, 0, len(deck.Cards))
			cards = append(cards, rest[:insert]...)
			cards = append(cards, card)
			cards = append(cards, rest[insert:]...)
			deck.Cards = cards
		}
	case GradeGood, GradeEasy:
		if deck.Index+1 < len(deck.Cards) {
			deck.Index++
		}
	}

	deck.ShowBack = false
	return deck.viewLocked(), nil
}

func (s *FlashcardService) GetDeck(userID uint, id string) (*DeckView, error) {
	deck, err := s.lookup(userID, id)
	if err != nil {
		return nil, err
	}

	deck.mu.Lock()
	defer deck.mu.Unlock()

	return deck.viewLocked(), nil
}

func (s *FlashcardService) DiscardDeck(userID uint, id string) error {
	if _, err := s.lookup(userID, id); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.decks, id)
	s.mu.Unlock()
	return nil
}

type DeckView struct {
	ID       string          `json:"id"`
	Card     model.Flashcard `json:"card"`
	Index    int             `json:"index"`
	Total    int             `json:"total"`
	ShowBack bool            `json:"showBack"`
}

func (d *DeckSession) viewLocked() *DeckView {
	view := &DeckView{
		ID:       d.ID,
		Index:    d.Index,
		Total:    len(d.Cards),
		ShowBack: d.ShowBack,
	}
	if d.Index < len(d.Cards) {
		view.Card = d.Cards[d.Index]
		if !d.ShowBack {
			view.Card.Back = ""
		}
	}
	return view
}
