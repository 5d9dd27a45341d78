package repository

import (
	"context"

	"github.com/alumnihub/alumni-backend/internal/model"
	"gorm.io/gorm"
)

type ContactRepository interface {
	CreateMessage(ctx context.Context, msg *model.ContactMessage) error
	FindMessages(ctx context.Context, limit, offset int) ([]*model.ContactMessage, error)
	Subscribe(ctx context.Context, sub *model.NewsletterSubscriber) error
	FindSubscriberByEmail(ctx context.Context, email string) (*model.NewsletterSubscriber, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) CreateMessage(ctx context.Context, msg *model.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *contactRepository) FindMessages(ctx context.Context, limit, offset int) ([]*model.ContactMessage, error) {
	var msgs []*model.ContactMessage
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *contactRepository) Subscribe(ctx context.Context, sub *model.NewsletterSubscriber) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *contactRepository) FindSubscriberByEmail(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
	var sub model.NewsletterSubscriber
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}
