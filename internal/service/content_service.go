package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/alumnihub/alumni-backend/internal/dto"
	"github.com/alumnihub/alumni-backend/internal/model"
	"github.com/alumnihub/alumni-backend/internal/repository"
	"github.com/alumnihub/alumni-backend/pkg/apperror"
	"github.com/alumnihub/alumni-backend/pkg/storage"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type ContentService interface {
	CreateNews(ctx context.Context, authorID uuid.UUID, input dto.CreateNewsInput) (*model.NewsPost, error)
	UpdateNews(ctx context.Context, id uuid.UUID, input dto.UpdateNewsInput) (*model.NewsPost, error)
	DeleteNews(ctx context.Context, id uuid.UUID) error
	GetNewsBySlug(ctx context.Context, slug string) (*model.NewsPost, error)
	ListNews(ctx context.Context, limit, offset int) ([]*model.NewsPost, error)

	CreateEvent(ctx context.Context, input dto.CreateEventInput) (*model.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	ListEvents(ctx context.Context, limit, offset int) ([]*model.Event, error)

	AddGalleryPhoto(ctx context.Context, uploadedBy uuid.UUID, input dto.CreateGalleryPhotoInput, file *dto.UploadFile) (*model.GalleryPhoto, error)
	DeleteGalleryPhoto(ctx context.Context, id uuid.UUID) error
	ListGalleryPhotos(ctx context.Context, limit, offset int) ([]*model.GalleryPhoto, error)
}

type contentService struct {
	repo        repository.ContentRepository
	fileStorage storage.FileStorage
	search      SearchService
	sanitizer   *bluemonday.Policy
}

func NewContentService(repo repository.ContentRepository, fileStorage storage.FileStorage, search SearchService) ContentService {
	return &contentService{
		repo:        repo,
		fileStorage: fileStorage,
		search:      search,
		sanitizer:   bluemonday.UGCPolicy(),
	}
}

func (s *contentService) CreateNews(ctx context.Context, authorID uuid.UUID, input dto.CreateNewsInput) (*model.NewsPost, error) {
	post := &model.NewsPost{
		Title:     input.Title,
		Slug:      s.generateUniqueSlug(ctx, input.Title),
		Body:      s.sanitizer.Sanitize(input.Body),
		CoverURL:  input.CoverURL,
		AuthorID:  authorID,
		Published: input.Publish,
	}

	if input.Publish {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.repo.CreateNews(ctx, post); err != nil {
		return nil, err
	}

	if s.search != nil && post.Published {
		if err := s.search.IndexNews(post); err != nil {
			log.Printf("failed to index news post %s: %v", post.ID, err)
		}
	}

	return post, nil
}

func (s *contentService) UpdateNews(ctx context.Context, id uuid.UUID, input dto.UpdateNewsInput) (*model.NewsPost, error) {
	post, err := s.repo.FindNewsByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if input.Title != nil && *input.Title != "" {
		post.Title = *input.Title
	}
	if input.Body != nil {
		post.Body = s.sanitizer.Sanitize(*input.Body)
	}
	if input.CoverURL != nil {
		post.CoverURL = normalizeOptional(input.CoverURL)
	}
	if input.Publish != nil {
		post.Published = *input.Publish
		if post.Published && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
	}

	if err := s.repo.UpdateNews(ctx, post); err != nil {
		return nil, err
	}

	if s.search != nil {
		if post.Published {
			if err := s.search.IndexNews(post); err != nil {
				log.Printf("failed to index news post %s: %v", post.ID, err)
			}
		} else {
			if err := s.search.RemoveNews(post.ID.String()); err != nil {
				log.Printf("failed to remove news post %s from index: %v", post.ID, err)
			}
		}
	}

	return post, nil
}

func (s *contentService) DeleteNews(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteNews(ctx, id); err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.RemoveNews(id.String()); err != nil {
			log.Printf("failed to remove news post %s from index: %v", id, err)
		}
	}

	return nil
}

func (s *contentService) GetNewsBySlug(ctx context.Context, slug string) (*model.NewsPost, error) {
	post, err := s.repo.FindNewsBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if post.Author != nil {
		post.Author.PasswordHash = ""
	}

	return post, nil
}

func (s *contentService) ListNews(ctx context.Context, limit, offset int) ([]*model.NewsPost, error) {
	return s.repo.FindPublishedNews(ctx, limit, offset)
}

func (s *contentService) CreateEvent(ctx context.Context, input dto.CreateEventInput) (*model.Event, error) {
	startsAt, err := time.Parse(time.RFC3339, input.StartsAt)
	if err != nil {
		return nil, fmt.Errorf("%w: starts_at must be RFC 3339", apperror.ErrInvalidInput)
	}

	event := &model.Event{
		Title:    input.Title,
		Slug:     s.generateUniqueSlug(ctx, input.Title),
		Body:     s.sanitizer.Sanitize(input.Body),
		Venue:    input.Venue,
		CoverURL: input.CoverURL,
		StartsAt: startsAt,
	}

	if input.EndsAt != nil && *input.EndsAt != "" {
		endsAt, err := time.Parse(time.RFC3339, *input.EndsAt)
		if err != nil {
			return nil, fmt.Errorf("%w: ends_at must be RFC 3339", apperror.ErrInvalidInput)
		}
		event.EndsAt = &endsAt
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *contentService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteEvent(ctx, id)
}

func (s *contentService) ListEvents(ctx context.Context, limit, offset int) ([]*model.Event, error) {
	return s.repo.FindUpcomingEvents(ctx, limit, offset)
}

func (s *contentService) AddGalleryPhoto(ctx context.Context, uploadedBy uuid.UUID, input dto.CreateGalleryPhotoInput, file *dto.UploadFile) (*model.GalleryPhoto, error) {
	if file == nil || file.Reader == nil {
		return nil, apperror.ErrBadRequest
	}
	if s.fileStorage == nil {
		return nil, apperror.ErrInternal
	}

	url, err := s.fileStorage.Upload(ctx, file.Reader, "gallery", file.FileName)
	if err != nil {
		return nil, err
	}

	photo := &model.GalleryPhoto{
		Title:      input.Title,
		URL:        url,
		Caption:    normalizeOptional(input.Caption),
		UploadedBy: uploadedBy,
	}

	if err := s.repo.CreatePhoto(ctx, photo); err != nil {
		return nil, err
	}

	return photo, nil
}

func (s *contentService) DeleteGalleryPhoto(ctx context.Context, id uuid.UUID) error {
	photo, err := s.repo.FindPhotoByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if s.fileStorage != nil {
		if err := s.fileStorage.Delete(ctx, photo.URL); err != nil {
			log.Printf("failed to delete gallery photo %s from storage: %v", id, err)
		}
	}

	return s.repo.DeletePhoto(ctx, id)
}

func (s *contentService) ListGalleryPhotos(ctx context.Context, limit, offset int) ([]*model.GalleryPhoto, error) {
	return s.repo.FindPhotos(ctx, limit, offset)
}

var slugInvalidChars = regexp.MustCompile("[^a-z0-9 ]+")

func (s *contentService) generateUniqueSlug(ctx context.Context, title string) string {
	slug := strings.ToLower(title)
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.Trim(slug, "-")

	// Basic slug uniqueness check
	existing, _ := s.repo.FindNewsBySlug(ctx, slug)
	if existing != nil {
		slug = fmt.Sprintf("%s-%s", slug, uuid.New().String()[:8])
	}
	return slug
}
