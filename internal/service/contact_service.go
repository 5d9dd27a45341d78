package service

import (
	"context"
	"errors"

	"github.com/alumnihub/alumni-backend/internal/dto"
	"github.com/alumnihub/alumni-backend/internal/model"
	"github.com/alumnihub/alumni-backend/internal/repository"
	"github.com/alumnihub/alumni-backend/pkg/apperror"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ContactService interface {
	SubmitMessage(ctx context.Context, senderKey string, input dto.ContactInput) (*model.ContactMessage, error)
	ListMessages(ctx context.Context, limit, offset int) ([]*model.ContactMessage, error)
	Subscribe(ctx context.Context, input dto.NewsletterInput) error
}

type contactService struct {
	repo        repository.ContactRepository
	redisClient *redis.Client
}

func NewContactService(repo repository.ContactRepository, redisClient *redis.Client) ContactService {
	return &contactService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// SubmitMessage stores a contact-form message. Anonymous senders are
// rate-limited per client key (IP) via Redis to keep the public form from
// being flooded.
func (s *contactService) SubmitMessage(ctx context.Context, senderKey string, input dto.ContactInput) (*model.ContactMessage, error) {
	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, senderKey, "contact", contactCooldown)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.ErrRateLimitExceeded
	}

	msg := &model.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	}

	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

func (s *contactService) ListMessages(ctx context.Context, limit, offset int) ([]*model.ContactMessage, error) {
	return s.repo.FindMessages(ctx, limit, offset)
}

func (s *contactService) Subscribe(ctx context.Context, input dto.NewsletterInput) error {
	if _, err := s.repo.FindSubscriberByEmail(ctx, input.Email); err == nil {
		// Already subscribed; treat as success.
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.repo.Subscribe(ctx, &model.NewsletterSubscriber{Email: input.Email})
}
