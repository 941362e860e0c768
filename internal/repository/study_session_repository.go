package repository

import (
	"gorm.io/gorm"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/model"
)

type StudySessionRepository struct {
	DB *gorm.DB
}

func NewStudySessionRepository(db *gorm.DB) *StudySessionRepository {
	return &StudySessionRepository{DB: db}
}

// Append stores a new session entry and evicts the user's oldest entries
// beyond maxRetained, keeping the per-user log bounded.
func (r *StudySessionRepository) Append(session *model.StudySession, maxRetained int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(session).Error; err != nil {
			return err
		}
		return trimOldest(tx, &model.StudySession{}, session.UserID, maxRetained)
	})
}

// ListByUser returns the user's sessions, newest first.
func (r *StudySessionRepository) ListByUser(userID uint) ([]model.StudySession, error) {
	var sessions []model.StudySession
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *StudySessionRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.StudySession{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// trimOldest deletes a user's rows past the retention cap, oldest first.
// Shared by the append-only logs.
func trimOldest(tx *gorm.DB, mdl interface{}, userID uint, maxRetained int) error {
	if maxRetained <= 0 {
		return nil
	}
	var stale []string
	err := tx.Model(mdl).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(maxRetained).
		Pluck("id", &stale).Error
	if err != nil || len(stale) == 0 {
		return err
	}
	return tx.Where("id IN ?", stale).Delete(mdl).Error
}
