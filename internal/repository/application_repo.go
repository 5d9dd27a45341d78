package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alumnihub/alumni-backend/internal/model"
	"github.com/alumnihub/alumni-backend/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteResult is the outcome of one recorded approval vote.
type VoteResult struct {
	Application     *model.MemberApplication
	ApprovalCount   int
	Finalized       bool
	ProfileComplete bool
}

type ApplicationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.MemberApplication, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.MemberApplication, error)
	FindPending(ctx context.Context, limit, offset int) ([]*model.MemberApplication, error)

	// RecordApproval appends the admin's vote to the application's vote set
	// and finalizes the membership once the threshold is met, all in a single
	// transaction. The application row is locked for the duration, so two
	// concurrent votes cannot both read the same count.
	RecordApproval(ctx context.Context, applicationID, adminID uuid.UUID) (*VoteResult, error)

	// RecordRejection marks the application rejected and mirrors the status
	// onto the user row in the same transaction.
	RecordRejection(ctx context.Context, applicationID, adminID uuid.UUID, reason *string) (*model.MemberApplication, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MemberApplication, error) {
	var app model.MemberApplication
	if err := r.db.WithContext(ctx).
		Preload("Votes").
		Preload("User").
		Preload("User.Profile").
		Where("id = ?", id).
		First(&app).Error; err != nil {
		return nil, err
	}

	return &app, nil
}

func (r *applicationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.MemberApplication, error) {
	var app model.MemberApplication
	if err := r.db.WithContext(ctx).
		Preload("Votes").
		Where("user_id = ?", userID).
		First(&app).Error; err != nil {
		return nil, err
	}

	return &app, nil
}

func (r *applicationRepository) FindPending(ctx context.Context, limit, offset int) ([]*model.MemberApplication, error) {
	var apps []*model.MemberApplication
	if err := r.db.WithContext(ctx).
		Preload("Votes").
		Preload("User").
		Preload("User.Profile").
		Where("status = ?", model.ApplicationPending).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// lockedApplication loads the application row under FOR UPDATE where the
// dialect supports it (SQLite, used in tests, does not).
func lockedApplication(tx *gorm.DB, id uuid.UUID) (*model.MemberApplication, error) {
	query := tx
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var app model.MemberApplication
	if err := query.Where("id = ?", id).First(&app).Error; err != nil {
		return nil, err
	}

	return &app, nil
}

func (r *applicationRepository) RecordApproval(ctx context.Context, applicationID, adminID uuid.UUID) (*VoteResult, error) {
	var result *VoteResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		app, err := lockedApplication(tx, applicationID)
		if err != nil {
			return err
		}

		// Terminal states stay terminal.
		if app.Status != model.ApplicationPending {
			return apperror.ErrTerminalState
		}

		var existing int64
		if err := tx.Model(&model.ApprovalVote{}).
			Where("application_id = ? AND admin_id = ?", applicationID, adminID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperror.ErrAlreadyApproved
		}

		vote := model.ApprovalVote{ApplicationID: applicationID, AdminID: adminID}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.ApprovalVote{}).
			Where("application_id = ?", applicationID).
			Count(&count).Error; err != nil {
			return err
		}
		app.ApprovalCount = int(count)

		var profile model.Profile
		profileComplete := false
		if err := tx.Where("user_id = ?", app.UserID).First(&profile).Error; err == nil {
			profileComplete = profile.IsComplete()
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		finalized := profileComplete && app.ApprovalCount >= model.ApprovalThreshold
		if finalized {
			now := time.Now()
			app.Status = model.ApplicationApproved
			app.ApprovedAt = &now

			// Mirror the status onto the user row in the same transaction.
			if err := tx.Model(&model.User{}).
				Where("id = ?", app.UserID).
				Update("membership_status", model.ApplicationApproved).Error; err != nil {
				return err
			}
		}

		if err := tx.Save(app).Error; err != nil {
			return err
		}

		result = &VoteResult{
			Application:     app,
			ApprovalCount:   app.ApprovalCount,
			Finalized:       finalized,
			ProfileComplete: profileComplete,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *applicationRepository) RecordRejection(ctx context.Context, applicationID, adminID uuid.UUID, reason *string) (*model.MemberApplication, error) {
	var rejected *model.MemberApplication

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		app, err := lockedApplication(tx, applicationID)
		if err != nil {
			return err
		}

		// Re-rejecting rewrites the same terminal state; rejecting an
		// approved member is refused.
		if app.Status == model.ApplicationApproved {
			return apperror.ErrTerminalState
		}

		now := time.Now()
		app.Status = model.ApplicationRejected
		app.RejectedBy = &adminID
		app.RejectedAt = &now
		app.RejectionReason = reason

		if err := tx.Save(app).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.User{}).
			Where("id = ?", app.UserID).
			Update("membership_status", model.ApplicationRejected).Error; err != nil {
			return err
		}

		rejected = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rejected, nil
}
