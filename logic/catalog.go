package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/dao"
	"github.com/mdarif551578/hasmi-coin-mining-sub000/models"
)

var ErrTaskInactive = errors.New("task is not active")

// CatalogLogic handles the task catalog, task submissions and plan
// purchase requests.
type CatalogLogic struct {
	store         *dao.Store
	userDAO       *dao.UserDAO
	taskDAO       *dao.TaskDAO
	submissionDAO *dao.TaskSubmissionDAO
	planDAO       *dao.PlanPurchaseDAO
	settingsDAO   *dao.SettingsDAO
	notifier      Notifier
}

func NewCatalogLogic(
	store *dao.Store,
	userDAO *dao.UserDAO,
	taskDAO *dao.TaskDAO,
	submissionDAO *dao.TaskSubmissionDAO,
	planDAO *dao.PlanPurchaseDAO,
	settingsDAO *dao.SettingsDAO,
	notifier Notifier,
) *CatalogLogic {
	return &CatalogLogic{
		store:         store,
		userDAO:       userDAO,
		taskDAO:       taskDAO,
		submissionDAO: submissionDAO,
		planDAO:       planDAO,
		settingsDAO:   settingsDAO,
		notifier:      notifier,
	}
}

// ActiveTasks returns the tasks users can currently work on.
func (l *CatalogLogic) ActiveTasks() ([]models.Task, error) {
	return l.taskDAO.ListActive()
}

// SubmitTask files a pending submission against an active task. The
// reward is deliberately not copied here; it is resolved from the
// task row at approval time.
func (l *CatalogLogic) SubmitTask(ctx context.Context, userID uint64, taskID uuid.UUID, text, screenshotURL string) (*models.TaskSubmission, error) {
	task, err := l.taskDAO.GetByID(taskID)
	if err != nil {
		return nil, notFoundOr(err, "task")
	}
	if !task.IsActive {
		return nil, ErrTaskInactive
	}
	sub := &models.TaskSubmission{
		UserID:         userID,
		TaskID:         taskID,
		SubmissionText: text,
		ScreenshotURL:  screenshotURL,
		Status:         models.StatusPending,
	}
	if err := l.submissionDAO.Create(sub); err != nil {
		return nil, err
	}
	l.notify()
	return sub, nil
}

// MySubmissions returns the user's submission history.
func (l *CatalogLogic) MySubmissions(userID uint64) ([]models.TaskSubmission, error) {
	return l.submissionDAO.ListByUser(userID)
}

// CancelSubmission deletes the user's own still-pending submission.
func (l *CatalogLogic) CancelSubmission(ctx context.Context, userID uint64, id uuid.UUID) error {
	ok, err := l.submissionDAO.DeletePending(id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyResolved
	}
	l.notify()
	return nil
}

// Plans returns the plan catalog from settings.
func (l *CatalogLogic) Plans() ([]models.PlanSpec, error) {
	settings, err := l.settingsDAO.Get()
	if err != nil {
		return nil, err
	}
	return settings.Plans, nil
}

// PurchasePlan files a pending purchase with cost, profit and duration
// snapshotted from the catalog. The cost is debited at approval time.
func (l *CatalogLogic) PurchasePlan(ctx context.Context, userID uint64, planName string) (*models.PlanPurchase, error) {
	settings, err := l.settingsDAO.Get()
	if err != nil {
		return nil, err
	}
	spec, found := settings.Plan(planName)
	if !found {
		return nil, fmt.Errorf("plan %q: %w", planName, ErrNotFound)
	}
	p := &models.PlanPurchase{
		UserID:       userID,
		PlanName:     spec.Name,
		PlanType:     spec.Type,
		Cost:         spec.Cost,
		Profit:       spec.Profit,
		DurationDays: spec.DurationDays,
		Status:       models.StatusPending,
	}
	if err := l.planDAO.Create(p); err != nil {
		return nil, err
	}
	l.notify()
	return p, nil
}

// MyPurchases returns the user's plan purchase history.
func (l *CatalogLogic) MyPurchases(userID uint64) ([]models.PlanPurchase, error) {
	return l.planDAO.ListByUser(userID)
}

// CancelPurchase deletes the user's own still-pending plan purchase.
// No compensating balance effect: the cost is only debited at approval.
func (l *CatalogLogic) CancelPurchase(ctx context.Context, userID uint64, id uuid.UUID) error {
	ok, err := l.planDAO.DeletePending(id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyResolved
	}
	l.notify()
	return nil
}

// CreateTask adds a catalog entry. Admin only, checked in-transaction
// like every other privileged mutation.
func (l *CatalogLogic) CreateTask(ctx context.Context, adminID uint64, title string, reward float64, link string) (*models.Task, error) {
	task := &models.Task{
		Title:    title,
		Reward:   reward,
		Link:     link,
		IsActive: true,
	}
	err := l.store.RunTransaction(ctx, func(tx *gorm.DB) error {
		if err := requireAdmin(l.userDAO.WithTx(tx), adminID); err != nil {
			return err
		}
		return l.taskDAO.WithTx(tx).Create(task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask edits a catalog entry. Past payouts keep the reward that
// was frozen onto their submissions.
func (l *CatalogLogic) UpdateTask(ctx context.Context, adminID uint64, id uuid.UUID, fields map[string]interface{}) error {
	return l.store.RunTransaction(ctx, func(tx *gorm.DB) error {
		if err := requireAdmin(l.userDAO.WithTx(tx), adminID); err != nil {
			return err
		}
		if _, err := l.taskDAO.WithTx(tx).GetByID(id); err != nil {
			return notFoundOr(err, "task")
		}
		return l.taskDAO.WithTx(tx).Update(id, fields)
	})
}

func (l *CatalogLogic) notify() {
	if l.notifier != nil {
		l.notifier.Notify()
	}
}
