package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/alumnihub/alumni-backend/internal/dto"
	"github.com/alumnihub/alumni-backend/internal/model"
	"github.com/alumnihub/alumni-backend/internal/repository"
	"github.com/alumnihub/alumni-backend/pkg/apperror"
	"github.com/alumnihub/alumni-backend/pkg/mailer"
	"github.com/alumnihub/alumni-backend/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApprovalResult is returned to the admin UI so it can render
// "need N more approvals" vs "approved".
type ApprovalResult struct {
	ApprovalCount   int
	Approved        bool
	ProfileComplete bool
}

type MembershipService interface {
	Approve(ctx context.Context, adminID, memberID uuid.UUID) (*ApprovalResult, error)
	Reject(ctx context.Context, adminID, memberID uuid.UUID, reason *string) error
	ListPending(ctx context.Context, limit, offset int) ([]*dto.PendingMemberResponse, error)
}

type membershipService struct {
	appRepo     repository.ApplicationRepository
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
	mail        mailer.Mailer
	search      SearchService
	notifier    NotificationService
}

func NewMembershipService(
	appRepo repository.ApplicationRepository,
	userRepo repository.UserRepository,
	fileStorage storage.FileStorage,
	mail mailer.Mailer,
	search SearchService,
	notifier NotificationService,
) MembershipService {
	return &membershipService{
		appRepo:     appRepo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
		mail:        mail,
		search:      search,
		notifier:    notifier,
	}
}

// Approve records one admin's vote on a pending member and finalizes the
// membership once two distinct admins have voted and the profile is complete.
// Finalization purges uploaded verification documents and notifies the member;
// both side effects are best-effort and never roll back the approval.
func (s *membershipService) Approve(ctx context.Context, adminID, memberID uuid.UUID) (*ApprovalResult, error) {
	app, err := s.appRepo.FindByUserID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	vote, err := s.appRepo.RecordApproval(ctx, app.ID, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if vote.Finalized {
		s.purgeDocuments(ctx, memberID)

		if err := s.sendApprovalEmail(vote.Application); err != nil {
			log.Printf("failed to send approval email for member %s: %v", memberID, err)
		}

		s.indexApprovedMember(ctx, memberID)

		if s.notifier != nil {
			notification := &model.Notification{
				UserID:     memberID,
				EntityID:   vote.Application.ID,
				EntityType: "application",
				Type:       "member_approved",
				Message:    "Your membership has been approved. Welcome aboard!",
			}
			if err := s.notifier.CreateNotification(ctx, notification); err != nil {
				log.Printf("failed to create approval notification for member %s: %v", memberID, err)
			}
		}
	}

	return &ApprovalResult{
		ApprovalCount:   vote.ApprovalCount,
		Approved:        vote.Finalized,
		ProfileComplete: vote.ProfileComplete,
	}, nil
}

// Reject marks the application rejected. Uploaded verification documents are
// purged only once the rejection is recorded, so a refused rejection (member
// already approved) leaves them untouched. No email is sent on rejection.
func (s *membershipService) Reject(ctx context.Context, adminID, memberID uuid.UUID, reason *string) error {
	app, err := s.appRepo.FindByUserID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if _, err := s.appRepo.RecordRejection(ctx, app.ID, adminID, reason); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	s.purgeDocuments(ctx, memberID)

	return nil
}

func (s *membershipService) ListPending(ctx context.Context, limit, offset int) ([]*dto.PendingMemberResponse, error) {
	apps, err := s.appRepo.FindPending(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.PendingMemberResponse, 0, len(apps))
	for _, app := range apps {
		complete := false
		if app.User != nil {
			complete = app.User.Profile.IsComplete()
		}
		response = append(response, &dto.PendingMemberResponse{
			Application:     app,
			ProfileComplete: complete,
		})
	}

	return response, nil
}

// purgeDocuments removes every uploaded verification document from object
// storage, then clears the rows. A failure to delete any single document is
// logged and skipped, not fatal.
func (s *membershipService) purgeDocuments(ctx context.Context, memberID uuid.UUID) {
	docs, err := s.userRepo.FindDocumentsByUserID(ctx, memberID)
	if err != nil {
		log.Printf("failed to load verification documents for member %s: %v", memberID, err)
		return
	}

	for _, doc := range docs {
		if s.fileStorage == nil {
			continue
		}
		if err := s.fileStorage.Delete(ctx, doc.URL); err != nil {
			log.Printf("failed to delete verification document %s for member %s: %v", doc.Name, memberID, err)
		}
	}

	if err := s.userRepo.DeleteDocumentsByUserID(ctx, memberID); err != nil {
		log.Printf("failed to clear verification document records for member %s: %v", memberID, err)
	}
}

func (s *membershipService) sendApprovalEmail(app *model.MemberApplication) error {
	if s.mail == nil {
		return nil
	}

	name := app.DisplayName
	if name == "" {
		name = "Alumni member"
	}

	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>Your alumni membership application has been approved. "+
			"You now have full access to the member directory, events and community features.</p>"+
			"<p>Warm regards,<br>The Alumni Association</p>",
		name,
	)

	return s.mail.Send(app.Email, "Your membership has been approved", body)
}

func (s *membershipService) indexApprovedMember(ctx context.Context, memberID uuid.UUID) {
	if s.search == nil {
		return
	}

	user, err := s.userRepo.FindByID(ctx, memberID.String())
	if err != nil {
		log.Printf("failed to load member %s for search indexing: %v", memberID, err)
		return
	}

	if err := s.search.IndexMember(user); err != nil {
		log.Printf("failed to index member %s in search: %v", memberID, err)
	}
}
