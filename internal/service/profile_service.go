package service

import (
	"context"
	"errors"
	"log"

	"github.com/alumnihub/alumni-backend/internal/dto"
	"github.com/alumnihub/alumni-backend/internal/model"
	"github.com/alumnihub/alumni-backend/internal/repository"
	"github.com/alumnihub/alumni-backend/pkg/apperror"
	"github.com/alumnihub/alumni-backend/pkg/storage"
	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, input dto.UpdateProfileInput, photo *dto.UploadFile) (*dto.ProfileResponse, error)
	UploadDocument(ctx context.Context, userID string, file *dto.UploadFile) (*model.VerificationDocument, error)
}

type profileService struct {
	repo        repository.UserRepository
	fileStorage storage.FileStorage
	search      SearchService
}

func NewProfileService(repo repository.UserRepository, fileStorage storage.FileStorage, search SearchService) ProfileService {
	return &profileService{
		repo:        repo,
		fileStorage: fileStorage,
		search:      search,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	user.PasswordHash = ""

	return &dto.ProfileResponse{
		User:            user,
		Profile:         user.Profile,
		ProfileComplete: user.Profile.IsComplete(),
	}, nil
}

// UpdateProfile applies the submitted fields, recomputes completeness from
// the six mandatory fields and persists the denormalized flag on the user row
// in the same transaction as the profile write.
func (s *profileService) UpdateProfile(ctx context.Context, userID string, input dto.UpdateProfileInput, photo *dto.UploadFile) (*dto.ProfileResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if user.Profile == nil {
		user.Profile = &model.Profile{UserID: user.ID}
	}
	profile := user.Profile

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&profile.FullName, input.FullName)
	applyString(&profile.Nickname, input.Nickname)
	applyString(&profile.Department, input.Department)
	applyString(&profile.Hall, input.Hall)
	applyString(&profile.ContactNumber, input.ContactNumber)
	applyString(&profile.BloodGroup, input.BloodGroup)

	if input.Address != nil {
		profile.Address = normalizeOptional(input.Address)
	}
	if input.Profession != nil {
		profile.Profession = normalizeOptional(input.Profession)
	}
	if input.Bio != nil {
		profile.Bio = normalizeOptional(input.Bio)
	}

	if photo != nil && photo.Reader != nil && s.fileStorage != nil {
		url, err := s.fileStorage.Upload(ctx, photo.Reader, "profiles", photo.FileName)
		if err != nil {
			return nil, err
		}
		profile.PhotoURL = &url
		user.AvatarURL = &url
	}

	// Completeness is recomputed on every write, never trusted from the
	// stored flag.
	user.ProfileComplete = profile.IsComplete()

	if err := s.repo.Update(ctx, user, profile); err != nil {
		return nil, err
	}

	// Approved members show up in the directory; keep the index current.
	if s.search != nil && user.MembershipStatus == model.ApplicationApproved {
		if err := s.search.IndexMember(user); err != nil {
			log.Printf("failed to reindex member %s: %v", user.ID, err)
		}
	}

	updatedUser, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	updatedUser.PasswordHash = ""

	return &dto.ProfileResponse{
		User:            updatedUser,
		Profile:         updatedUser.Profile,
		ProfileComplete: updatedUser.Profile.IsComplete(),
	}, nil
}

func (s *profileService) UploadDocument(ctx context.Context, userID string, file *dto.UploadFile) (*model.VerificationDocument, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if file == nil || file.Reader == nil {
		return nil, apperror.ErrBadRequest
	}

	if s.fileStorage == nil {
		return nil, apperror.ErrInternal
	}

	url, err := s.fileStorage.Upload(ctx, file.Reader, "documents", file.FileName)
	if err != nil {
		return nil, err
	}

	doc := &model.VerificationDocument{
		UserID:   user.ID,
		Name:     file.FileName,
		URL:      url,
		MimeType: file.MimeType,
	}

	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func normalizeOptional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
