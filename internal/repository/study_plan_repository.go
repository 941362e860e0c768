package repository

import (
	"gorm.io/gorm"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/model"
)

type StudyPlanRepository struct {
	DB *gorm.DB
}

func NewStudyPlanRepository(db *gorm.DB) *StudyPlanRepository {
	return &StudyPlanRepository{DB: db}
}

func (r *StudyPlanRepository) Create(plan *model.StudyPlan) error {
	return r.DB.Create(plan).Error
}

func (r *StudyPlanRepository) CreateBatch(plans []model.StudyPlan) error {
	if len(plans) == 0 {
		return nil
	}
	return r.DB.Create(&plans).Error
}

// ListByUser returns the user's plan items ordered by date, then insertion.
func (r *StudyPlanRepository) ListByUser(userID uint) ([]model.StudyPlan, error) {
	var plans []model.StudyPlan
	err := r.DB.Where("user_id = ?", userID).
		Order("date ASC").
		Order("created_at ASC").
		Find(&plans).Error
	return plans, err
}

func (r *StudyPlanRepository) FindByID(userID uint, id string) (*model.StudyPlan, error) {
	var plan model.StudyPlan
	err := r.DB.Where("user_id = ? AND id = ?", userID, id).First(&plan).Error
	return &plan, err
}

// ToggleDone flips the completion flag and reports the new value.
func (r *StudyPlanRepository) ToggleDone(userID uint, id string) (*model.StudyPlan, error) {
	plan, err := r.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	plan.Done = !plan.Done
	if err := r.DB.Model(plan).Update("done", plan.Done).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

func (r *StudyPlanRepository) Delete(userID uint, id string) error {
	return r.DB.Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.StudyPlan{}).Error
}
