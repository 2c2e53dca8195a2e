package dao

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/models"
)

// TaskDAO handles task-catalog database operations
type TaskDAO struct {
	db *gorm.DB
}

func NewTaskDAO(db *gorm.DB) *TaskDAO {
	return &TaskDAO{db: db}
}

func (d *TaskDAO) WithTx(tx *gorm.DB) *TaskDAO {
	return &TaskDAO{db: tx}
}

func (d *TaskDAO) Create(t *models.Task) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return d.db.Create(t).Error
}

func (d *TaskDAO) GetByID(id uuid.UUID) (*models.Task, error) {
	var t models.Task
	if err := d.db.Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (d *TaskDAO) ListActive() ([]models.Task, error) {
	var list []models.Task
	err := d.db.Where("is_active = ?", true).Order("created_at ASC").Find(&list).Error
	return list, err
}

// Update edits catalog fields. Past payouts are unaffected because the
// paid reward is frozen onto each submission at its approval time.
func (d *TaskDAO) Update(id uuid.UUID, fields map[string]interface{}) error {
	return d.db.Model(&models.Task{}).Where("id = ?", id).Updates(fields).Error
}

// TaskSubmissionDAO handles task-submission database operations
type TaskSubmissionDAO struct {
	db *gorm.DB
}

func NewTaskSubmissionDAO(db *gorm.DB) *TaskSubmissionDAO {
	return &TaskSubmissionDAO{db: db}
}

func (d *TaskSubmissionDAO) WithTx(tx *gorm.DB) *TaskSubmissionDAO {
	return &TaskSubmissionDAO{db: tx}
}

func (d *TaskSubmissionDAO) Create(s *models.TaskSubmission) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return d.db.Create(s).Error
}

func (d *TaskSubmissionDAO) GetByID(id uuid.UUID) (*models.TaskSubmission, error) {
	var s models.TaskSubmission
	if err := d.db.Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Resolve flips a pending submission to a terminal status and, on
// approval, freezes the paid reward onto the row.
func (d *TaskSubmissionDAO) Resolve(id uuid.UUID, to string, reward float64) (bool, error) {
	res := d.db.Model(&models.TaskSubmission{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(map[string]interface{}{"status": to, "reward": reward})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (d *TaskSubmissionDAO) ListByUser(userID uint64) ([]models.TaskSubmission, error) {
	var list []models.TaskSubmission
	err := d.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (d *TaskSubmissionDAO) ListByStatus(status string) ([]models.TaskSubmission, error) {
	var list []models.TaskSubmission
	err := d.db.Where("status = ?", status).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (d *TaskSubmissionDAO) CountPending() (int64, error) {
	return countPending(d.db, &models.TaskSubmission{})
}

func (d *TaskSubmissionDAO) DeletePending(id uuid.UUID, userID uint64) (bool, error) {
	res := d.db.Where("id = ? AND user_id = ? AND status = ?", id, userID, models.StatusPending).
		Delete(&models.TaskSubmission{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
