package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/model"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/repository"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/util"
	"github.com/priya-tenac/Ai-Study-Buddy/pkg/logger"
)

type SessionState string

const (
	StateIdle          SessionState = "idle"
	StateConfiguring   SessionState = "configuring"
	StateGenerating    SessionState = "generating"
	StateInRound       SessionState = "in_round"
	StateRoundComplete SessionState = "round_complete"
	StateFinished      SessionState = "finished"
)

const secondsPerQuestion = 30

type QuizConfig struct {
	Topic        string           `json:"topic" binding:"required"`
	Difficulty   model.Difficulty `json:"difficulty"`
	Mood         model.Mood       `json:"mood"`
	Mode         model.QuizMode   `json:"mode"`
	NumQuestions int              `json:"numQuestions"`
}

// QuizSession is one quiz game owned by a user. In friend mode the two
// players take turns on the same device against the same question set;
// solo collapses to a single player.
type QuizSession struct {
	mu sync.Mutex

	ID     string
	UserID uint
	State  SessionState
	Config QuizConfig

	Questions     []model.QuizQuestion
	CurrentIndex  int
	CurrentPlayer int // 1-based
	Selected      *int

	Scores    [2]int
	Durations [2]*int // seconds used; nil until the round ends

	BudgetSeconds    int
	RemainingSeconds int

	Winner    string // friend mode: "Player 1", "Player 2" or "Tie"
	LastError string

	// generation invalidates in-flight question fetches when a newer
	// round starts; stale results are discarded on arrival.
	generation uint64
	stopTimer  chan struct{}
	persisted  bool
}

// QuestionGenerator produces the question set for one round.
type QuestionGenerator interface {
	Generate(ctx context.Context, topic string, difficulty model.Difficulty, count int, mood model.Mood) ([]model.QuizQuestion, error)
}

// QuizSessionEngine holds all live sessions in memory. Finished sessions
// stay addressable until the user discards them.
type QuizSessionEngine struct {
	mu       sync.RWMutex
	sessions map[string]*QuizSession

	Quiz    QuestionGenerator
	Results *repository.QuizResultRepository
}

func NewQuizSessionEngine(quiz QuestionGenerator, results *repository.QuizResultRepository) *QuizSessionEngine {
	return &QuizSessionEngine{
		sessions: make(map[string]*QuizSession),
		Quiz:     quiz,
		Results:  results,
	}
}

func (e *QuizSessionEngine) CreateSession(userID uint) *QuizSession {
	session := &QuizSession{
		ID:            uuid.NewString(),
		UserID:        userID,
		State:         StateIdle,
		CurrentPlayer: 1,
	}
	e.mu.Lock()
	e.sessions[session.ID] = session
	e.mu.Unlock()
	return session
}

func (e *QuizSessionEngine) lookup(userID uint, id string) (*QuizSession, error) {
	e.mu.RLock()
	session, ok := e.sessions[id]
	e.mu.RUnlock()
	if !ok || session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	return session, nil
}

// Configure sets or replaces the game parameters. Not allowed while a
// round is being played; reconfiguring a finished session starts a fresh
// game.
func (e *QuizSessionEngine) Configure(userID uint, id string, cfg QuizConfig) error {
	session, err := e.lookup(userID, id)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.State == StateInRound {
		return util.ErrSessionNotActive
	}

	cfg.NumQuestions = ClampQuestionCount(cfg.NumQuestions)
	if cfg.Difficulty == "" {
		cfg.Difficulty = model.DifficultyMedium
	}
	if cfg.Mode == "" {
		cfg.Mode = model.QuizSolo
	}

	session.generation++ // a fetch started before reconfiguring must not land
	e.stopCountdownLocked(session)

	session.Config = cfg
	session.State = StateConfiguring
	session.Questions = nil
	session.CurrentIndex = 0
	session.CurrentPlayer = 1
	session.Selected = nil
	session.Scores = [2]int{}
	session.Durations = [2]*int{}
	session.Winner = ""
	session.LastError = ""
	session.persisted = false
	return nil
}

// StartRound begins the upcoming round. From Configuring it kicks off
// question generation, superseding any in-flight fetch; from RoundComplete
// it starts player 2 on the same question set with a fresh time budget.
func (e *QuizSessionEngine) StartRound(ctx context.Context, userID uint, id string) error {
	session, err := e.lookup(userID, id)
	if err != nil {
		return err
	}

	session.mu.Lock()
	switch session.State {
	case StateConfiguring, StateGenerating:
		session.generation++
		gen := session.generation
		session.State = StateGenerating
		session.LastError = ""
		cfg := session.Config
		session.mu.Unlock()
		// The fetch outlives the HTTP request that started it.
		go e.generate(context.WithoutCancel(ctx), session, gen, cfg)
		return nil

	case StateRoundComplete:
		session.generation++
		session.CurrentIndex = 0
		session.Selected = nil
		session.RemainingSeconds = session.BudgetSeconds
		session.State = StateInRound
		e.startCountdownLocked(session, session.generation)
		session.mu.Unlock()
		return nil

	default:
		session.mu.Unlock()
		return util.ErrSessionNotActive
	}
}

func (e *QuizSessionEngine) generate(ctx context.Context, session *QuizSession, gen uint64, cfg QuizConfig) {
	questions, err := e.Quiz.Generate(ctx, cfg.Topic, cfg.Difficulty, cfg.NumQuestions, cfg.Mood)

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.generation != gen {
		// A newer round superseded this fetch.
		return
	}

	if err != nil {
		session.State = StateConfiguring
		session.LastError = err.Error()
		logger.Log.Warn("quiz generation failed",
			zap.String("session_id", session.ID),
			zap.Error(err))
		return
	}

	session.Questions = questions
	session.CurrentIndex = 0
	session.Selected = nil
	session.BudgetSeconds = cfg.NumQuestions * secondsPerQuestion
	session.RemainingSeconds = session.BudgetSeconds
	session.State = StateInRound
	e.startCountdownLocked(session, gen)
}

// startCountdownLocked runs the per-second round timer. The goroutine
// exits when the round ends, the session moves on, or a newer generation
// takes over.
func (e *QuizSessionEngine) startCountdownLocked(session *QuizSession, gen uint64) {
	stop := make(chan struct{})
	session.stopTimer = stop

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				session.mu.Lock()
				if session.generation != gen || session.State != StateInRound {
					session.mu.Unlock()
					return
				}
				session.RemainingSeconds--
				if session.RemainingSeconds <= 0 {
					session.RemainingSeconds = 0
					e.endRoundLocked(session)
					session.mu.Unlock()
					return
				}
				session.mu.Unlock()
			}
		}
	}()
}

func (e *QuizSessionEngine) stopCountdownLocked(session *QuizSession) {
	if session.stopTimer != nil {
		close(session.stopTimer)
		session.stopTimer = nil
	}
}

// SelectOption records the current player's answer for the current
// question. Repeat selections for the same question are ignored.
func (e *QuizSessionEngine) SelectOption(userID uint, id string, optionIndex int) error {
	session, err := e.lookup(userID, id)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.State != StateInRound {
		return util.ErrSessionNotActive
	}
	if session.Selected != nil {
		return nil
	}
	if optionIndex < 0 || optionIndex >= len(session.Questions[session.CurrentIndex].Options) {
		return nil
	}

	session.Selected = &optionIndex

	question := session.Questions[session.CurrentIndex]
	if question.Options[optionIndex] == question.Answer {
		session.Scores[session.CurrentPlayer-1]++
	}
	return nil
}

// NextQuestion advances past the current question; past the last question
// it ends the player's round.
func (e *QuizSessionEngine) NextQuestion(userID uint, id string) error {
	session, err := e.lookup(userID, id)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.State != StateInRound {
		return util.ErrSessionNotActive
	}

	if session.CurrentIndex+1 >= len(session.Questions) {
		e.endRoundLocked(session)
		return nil
	}
	session.CurrentIndex++
	session.Selected = nil
	return nil
}

// Finish ends the current round early. Finishing an already-finished
// session is a no-op.
func (e *QuizSessionEngine) Finish(userID uint, id string) error {
	session, err := e.lookup(userID, id)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	switch session.State {
	case StateFinished:
		return nil
	case StateInRound:
		e.endRoundLocked(session)
		return nil
	default:
		return util.ErrSessionNotActive
	}
}

func (e *QuizSessionEngine) endRoundLocked(session *QuizSession) {
	duration := session.BudgetSeconds - session.RemainingSeconds
	if duration < 0 {
		duration = 0
	}

	e.stopCountdownLocked(session)
	session.Selected = nil

	if session.Config.Mode == model.QuizFriend && session.CurrentPlayer == 1 {
		session.Durations[0] = &duration
		session.CurrentPlayer = 2
		session.CurrentIndex = 0
		session.State = StateRoundComplete
		return
	}

	if session.Config.Mode == model.QuizFriend {
		session.Durations[1] = &duration
	} else {
		session.Durations[0] = &duration
	}
	e.finishLocked(session)
}

// finishLocked settles the game: in friend mode the winner is decided by
// accuracy, then by who finished faster, and the winner's score and time
// are what goes on the board.
func (e *QuizSessionEngine) finishLocked(session *QuizSession) {
	if session.State == StateFinished {
		return
	}
	session.State = StateFinished
	e.stopCountdownLocked(session)

	total := len(session.Questions)
	score := session.Scores[0]
	duration := durationOrBudget(session.Durations[0], session.BudgetSeconds)

	if session.Config.Mode == model.QuizFriend {
		p1Duration := durationOrBudget(session.Durations[0], session.BudgetSeconds)
		p2Duration := durationOrBudget(session.Durations[1], session.BudgetSeconds)

		var p1Accuracy, p2Accuracy float64
		if total > 0 {
			p1Accuracy = float64(session.Scores[0]) / float64(total)
			p2Accuracy = float64(session.Scores[1]) / float64(total)
		}

		session.Winner = "Tie"
		switch {
		case p1Accuracy > p2Accuracy:
			session.Winner = "Player 1"
		case p2Accuracy > p1Accuracy:
			session.Winner = "Player 2"
		case p1Duration < p2Duration:
			session.Winner = "Player 1"
		case p2Duration < p1Duration:
			session.Winner = "Player 2"
		}

		if session.Winner == "Player 2" {
			score = session.Scores[1]
			duration = p2Duration
		} else {
			duration = p1Duration
		}
	}

	if session.persisted || total == 0 || e.Results == nil {
		return
	}
	session.persisted = true

	result := &model.QuizResult{
		UserID:          session.UserID,
		Mode:            session.Config.Mode,
		Difficulty:      session.Config.Difficulty,
		Topic:           preview(session.Config.Topic, 120),
		Score:           score,
		TotalQuestions:  total,
		DurationSeconds: duration,
	}
	go func() {
		if err := e.Results.Append(result, util.MaxRetainedQuizResults); err != nil {
			logger.Log.Error("failed to record quiz result",
				zap.Uint("user_id", result.UserID),
				zap.Error(err))
		}
	}()
}

// GetSession returns a snapshot safe to serialize while the game runs.
func (e *QuizSessionEngine) GetSession(userID uint, id string) (*QuizSessionView, error) {
	session, err := e.lookup(userID, id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	view := &QuizSessionView{
		ID:               session.ID,
		State:            session.State,
		Config:           session.Config,
		Questions:        session.Questions,
		CurrentIndex:     session.CurrentIndex,
		CurrentPlayer:    session.CurrentPlayer,
		Selected:         session.Selected,
		Scores:           session.Scores,
		RemainingSeconds: session.RemainingSeconds,
		BudgetSeconds:    session.BudgetSeconds,
		Winner:           session.Winner,
		LastError:        session.LastError,
	}
	return view, nil
}

// DiscardSession drops a session from the store.
func (e *QuizSessionEngine) DiscardSession(userID uint, id string) error {
	session, err := e.lookup(userID, id)
	if err != nil {
		return err
	}

	session.mu.Lock()
	session.generation++ // stale fetches have nowhere to land
	e.stopCountdownLocked(session)
	session.mu.Unlock()

	e.mu.Lock()
	delete(e.sessions, id)
	e.mu.Unlock()
	return nil
}

type QuizSessionView struct {
	ID               string               `json:"id"`
	State            SessionState         `json:"state"`
	Config           QuizConfig           `json:"config"`
	Questions        []model.QuizQuestion `json:"questions"`
	CurrentIndex     int                  `json:"currentIndex"`
	CurrentPlayer    int                  `json:"currentPlayer"`
	Selected         *int                 `json:"selected"`
	Scores           [2]int               `json:"scores"`
	RemainingSeconds int                  `json:"remainingSeconds"`
	BudgetSeconds    int                  `json:"budgetSeconds"`
	Winner           string               `json:"winner,omitempty"`
	LastError        string               `json:"lastError,omitempty"`
}

func durationOrBudget(d *int, budget int) int {
	if d == nil {
		return budget
	}
	return *d
}
