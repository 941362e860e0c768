package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/model"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/util"
)

type fakeGenerator struct {
	mu        sync.Mutex
	questions []model.QuizQuestion
	err       error
	blocked   []chan struct{} // per-call gates, consumed in order
	calls     int
}

func (f *fakeGenerator) Generate(ctx context.Context, topic string, difficulty model.Difficulty, count int, mood model.Mood) ([]model.QuizQuestion, error) {
	f.mu.Lock()
	f.calls++
	var gate chan struct{}
	if len(f.blocked) > 0 {
		gate = f.blocked[0]
		f.blocked = f.blocked[1:]
	}
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return f.questions, f.err
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testQuestions(n int) []model.QuizQuestion {
	questions := make([]model.QuizQuestion, n)
	for i := range questions {
		questions[i] = model.QuizQuestion{
			Question: "Q",
			Options:  []string{"right", "wrong"},
			Answer:   "right",
		}
	}
	return questions
}

func waitForState(t *testing.T, e *QuizSessionEngine, userID uint, id string, want SessionState) *QuizSessionView {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		view, err := e.GetSession(userID, id)
		if err != nil {
			t.Fatalf("GetSession: %v", err)
		}
		if view.State == want {
			return view
		}
		time.Sleep(5 * time.Millisecond)
	}
	view, _ := e.GetSession(userID, id)
	t.Fatalf("session never reached %s, stuck at %s", want, view.State)
	return nil
}

func startedSoloSession(t *testing.T, gen *fakeGenerator) (*QuizSessionEngine, string) {
	t.Helper()
	engine := NewQuizSessionEngine(gen, nil)
	session := engine.CreateSession(1)

	cfg := QuizConfig{Topic: "physics", Mode: model.QuizSolo, NumQuestions: 3}
	if err := engine.Configure(1, session.ID, cfg); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := engine.StartRound(context.Background(), 1, session.ID); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	waitForState(t, engine, 1, session.ID, StateInRound)
	return engine, session.ID
}

func TestSoloGameFlow(t *testing.T) {
	gen := &fakeGenerator{questions: testQuestions(3)}
	engine, id := startedSoloSession(t, gen)

	// Answer all three correctly; the third NextQuestion ends the game.
	for i := 0; i < 3; i++ {
		if err := engine.SelectOption(1, id, 0); err != nil {
			t.Fatalf("SelectOption: %v", err)
		}
		if err := engine.NextQuestion(1, id); err != nil {
			t.Fatalf("NextQuestion: %v", err)
		}
	}

	view := waitForState(t, engine, 1, id, StateFinished)
	if view.Scores[0] != 3 {
		t.Fatalf("score = %d, want 3", view.Scores[0])
	}
}

func TestSelectOptionIsIdempotent(t *testing.T) {
	gen := &fakeGenerator{questions: testQuestions(3)}
	engine, id := startedSoloSession(t, gen)

	if err := engine.SelectOption(1, id, 0); err != nil {
		t.Fatalf("SelectOption: %v", err)
	}
	// Re-selecting, even a different option, must not change the score.
	if err := engine.SelectOption(1, id, 1); err != nil {
		t.Fatalf("repeat SelectOption: %v", err)
	}

	view, _ := engine.GetSession(1, id)
	if view.Scores[0] != 1 {
		t.Fatalf("score = %d, want 1", view.Scores[0])
	}
	if view.Selected == nil || *view.Selected != 0 {
		t.Fatalf("selected = %v, want 0", view.Selected)
	}
}

func TestFinishIsIdempotent(t *testing.T) {
	gen := &fakeGenerator{questions: testQuestions(3)}
	engine, id := startedSoloSession(t, gen)

	if err := engine.Finish(1, id); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if err := engine.Finish(1, id); err != nil {
		t.Fatalf("repeat Finish: %v", err)
	}

	view, _ := engine.GetSession(1, id)
	if view.State != StateFinished {
		t.Fatalf("state = %s, want finished", view.State)
	}
}

func TestFriendBattleReusesQuestionsAndPicksWinner(t *testing.T) {
	gen := &fakeGenerator{questions: testQuestions(2)}
	engine := NewQuizSessionEngine(gen, nil)
	session := engine.CreateSession(1)

	cfg := QuizConfig{Topic: "biology", Mode: model.QuizFriend, NumQuestions: 3}
	if err := engine.Configure(1, session.ID, cfg); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := engine.StartRound(context.Background(), 1, session.ID); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	waitForState(t, engine, 1, session.ID, StateInRound)

	// Player 1 gets both right.
	engine.SelectOption(1, session.ID, 0)
	engine.NextQuestion(1, session.ID)
	engine.SelectOption(1, session.ID, 0)
	engine.NextQuestion(1, session.ID)

	view := waitForState(t, engine, 1, session.ID, StateRoundComplete)
	if view.CurrentPlayer != 2 {
		t.Fatalf("current player = %d, want 2", view.CurrentPlayer)
	}

	// Player 2's round reuses the same set without regenerating.
	callsBefore := gen.callCount()
	if err := engine.StartRound(context.Background(), 1, session.ID); err != nil {
		t.Fatalf("StartRound (player 2): %v", err)
	}
	view = waitForState(t, engine, 1, session.ID, StateInRound)
	if gen.callCount() != callsBefore {
		t.Fatalf("player 2 round regenerated questions")
	}
	if view.CurrentIndex != 0 {
		t.Fatalf("player 2 starts at question %d", view.CurrentIndex)
	}

	// Player 2 gets one right.
	engine.SelectOption(1, session.ID, 0)
	engine.NextQuestion(1, session.ID)
	engine.SelectOption(1, session.ID, 1)
	engine.NextQuestion(1, session.ID)

	view = waitForState(t, engine, 1, session.ID, StateFinished)
	if view.Winner != "Player 1" {
		t.Fatalf("winner = %q, want Player 1", view.Winner)
	}
	if view.Scores != [2]int{2, 1} {
		t.Fatalf("scores = %v", view.Scores)
	}
}

func TestGenerationFailureReturnsToConfiguring(t *testing.T) {
	gen := &fakeGenerator{err: util.ErrQuizGenerationFailed}
	engine := NewQuizSessionEngine(gen, nil)
	session := engine.CreateSession(1)

	engine.Configure(1, session.ID, QuizConfig{Topic: "chemistry"})
	engine.StartRound(context.Background(), 1, session.ID)

	view := waitForState(t, engine, 1, session.ID, StateConfiguring)
	if view.LastError == "" {
		t.Fatal("expected a recorded generation error")
	}
}

func TestStaleGenerationIsDiscarded(t *testing.T) {
	slow := make(chan struct{})
	gen := &fakeGenerator{questions: testQuestions(2), blocked: []chan struct{}{slow}}
	engine := NewQuizSessionEngine(gen, nil)
	session := engine.CreateSession(1)

	engine.Configure(1, session.ID, QuizConfig{Topic: "maths", NumQuestions: 5})
	engine.StartRound(context.Background(), 1, session.ID)

	// Wait for the slow fetch to be in flight, then supersede it with one
	// that completes immediately.
	deadline := time.Now().Add(2 * time.Second)
	for gen.callCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	engine.StartRound(context.Background(), 1, session.ID)
	view := waitForState(t, engine, 1, session.ID, StateInRound)
	budget := view.BudgetSeconds

	close(slow) // first fetch lands late and must be ignored

	time.Sleep(20 * time.Millisecond)
	view, _ = engine.GetSession(1, session.ID)
	if view.State != StateInRound || view.BudgetSeconds != budget {
		t.Fatalf("stale generation disturbed the live round: state=%s", view.State)
	}
}

func TestReconfigureCancelsPendingGeneration(t *testing.T) {
	slow := make(chan struct{})
	gen := &fakeGenerator{questions: testQuestions(2), blocked: []chan struct{}{slow}}
	engine := NewQuizSessionEngine(gen, nil)
	session := engine.CreateSession(1)

	engine.Configure(1, session.ID, QuizConfig{Topic: "maths", NumQuestions: 5})
	engine.StartRound(context.Background(), 1, session.ID)

	// Wait until the fetch is in flight, then reconfigure past it.
	deadline := time.Now().Add(2 * time.Second)
	for gen.callCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if err := engine.Configure(1, session.ID, QuizConfig{Topic: "history", NumQuestions: 3}); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	close(slow) // the superseded fetch lands late

	time.Sleep(20 * time.Millisecond)
	view, _ := engine.GetSession(1, session.ID)
	if view.State != StateConfiguring {
		t.Fatalf("state = %s, want configuring", view.State)
	}
	if len(view.Questions) != 0 || view.BudgetSeconds != 0 {
		t.Fatalf("superseded fetch was applied: questions=%d budget=%d",
			len(view.Questions), view.BudgetSeconds)
	}
	if view.Config.Topic != "history" {
		t.Fatalf("config topic = %q, want history", view.Config.Topic)
	}
}

func TestWinnerTiebreakByDuration(t *testing.T) {
	gen := &fakeGenerator{questions: testQuestions(2)}
	engine := NewQuizSessionEngine(gen, nil)
	session := engine.CreateSession(1)

	engine.Configure(1, session.ID, QuizConfig{Topic: "biology", Mode: model.QuizFriend, NumQuestions: 3})
	engine.StartRound(context.Background(), 1, session.ID)
	waitForState(t, engine, 1, session.ID, StateInRound)

	// Player 1 answers both right, using 10 seconds of the budget.
	engine.SelectOption(1, session.ID, 0)
	engine.NextQuestion(1, session.ID)
	engine.SelectOption(1, session.ID, 0)
	session.mu.Lock()
	session.RemainingSeconds = session.BudgetSeconds - 10
	session.mu.Unlock()
	engine.NextQuestion(1, session.ID)

	waitForState(t, engine, 1, session.ID, StateRoundComplete)
	if err := engine.StartRound(context.Background(), 1, session.ID); err != nil {
		t.Fatalf("StartRound (player 2): %v", err)
	}
	waitForState(t, engine, 1, session.ID, StateInRound)

	// Player 2 matches the score but only needs 4 seconds.
	engine.SelectOption(1, session.ID, 0)
	engine.NextQuestion(1, session.ID)
	engine.SelectOption(1, session.ID, 0)
	session.mu.Lock()
	session.RemainingSeconds = session.BudgetSeconds - 4
	session.mu.Unlock()
	engine.NextQuestion(1, session.ID)

	view := waitForState(t, engine, 1, session.ID, StateFinished)
	if view.Scores != [2]int{2, 2} {
		t.Fatalf("scores = %v, want [2 2]", view.Scores)
	}
	if view.Winner != "Player 2" {
		t.Fatalf("winner = %q, want Player 2 (faster round)", view.Winner)
	}
}

func TestTimerExpiryEndsRound(t *testing.T) {
	gen := &fakeGenerator{questions: testQuestions(3)}
	engine := NewQuizSessionEngine(gen, nil)
	session := engine.CreateSession(1)

	engine.Configure(1, session.ID, QuizConfig{Topic: "physics", Mode: model.QuizSolo, NumQuestions: 3})
	engine.StartRound(context.Background(), 1, session.ID)
	waitForState(t, engine, 1, session.ID, StateInRound)

	engine.SelectOption(1, session.ID, 0)

	// Let the clock run out on the next tick.
	session.mu.Lock()
	session.RemainingSeconds = 1
	session.mu.Unlock()

	view := waitForState(t, engine, 1, session.ID, StateFinished)
	if view.RemainingSeconds != 0 {
		t.Fatalf("remaining = %d after expiry", view.RemainingSeconds)
	}
	if view.Scores[0] != 1 {
		t.Fatalf("score = %d, want the answer given before expiry", view.Scores[0])
	}
}

func TestSessionOwnership(t *testing.T) {
	gen := &fakeGenerator{questions: testQuestions(2)}
	engine := NewQuizSessionEngine(gen, nil)
	session := engine.CreateSession(1)

	if _, err := engine.GetSession(2, session.ID); !errors.Is(err, util.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}
