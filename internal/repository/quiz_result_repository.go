package repository

import (
	"gorm.io/gorm"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/model"
)

type QuizResultRepository struct {
	DB *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) *QuizResultRepository {
	return &QuizResultRepository{DB: db}
}

// Append stores a finished quiz and evicts the user's oldest results
// beyond maxRetained.
func (r *QuizResultRepository) Append(result *model.QuizResult, maxRetained int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		return trimOldest(tx, &model.QuizResult{}, result.UserID, maxRetained)
	})
}

// ListByUser returns the user's quiz results, newest first.
func (r *QuizResultRepository) ListByUser(userID uint) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error
	return results, err
}

// Leaderboard returns the user's best results ranked by score, faster
// runs breaking ties.
func (r *QuizResultRepository) Leaderboard(userID uint, limit int) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Where("user_id = ?", userID).
		Order("score DESC").
		Order("duration_seconds ASC").
		Limit(limit).
		Find(&results).Error
	return results, err
}
