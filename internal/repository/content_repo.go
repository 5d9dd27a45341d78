package repository

import (
	"context"

	"github.com/alumnihub/alumni-backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContentRepository interface {
	CreateNews(ctx context.Context, post *model.NewsPost) error
	UpdateNews(ctx context.Context, post *model.NewsPost) error
	DeleteNews(ctx context.Context, id uuid.UUID) error
	FindNewsByID(ctx context.Context, id uuid.UUID) (*model.NewsPost, error)
	FindNewsBySlug(ctx context.Context, slug string) (*model.NewsPost, error)
	FindPublishedNews(ctx context.Context, limit, offset int) ([]*model.NewsPost, error)

	CreateEvent(ctx context.Context, event *model.Event) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	FindEventBySlug(ctx context.Context, slug string) (*model.Event, error)
	FindUpcomingEvents(ctx context.Context, limit, offset int) ([]*model.Event, error)

	CreatePhoto(ctx context.Context, photo *model.GalleryPhoto) error
	DeletePhoto(ctx context.Context, id uuid.UUID) error
	FindPhotoByID(ctx context.Context, id uuid.UUID) (*model.GalleryPhoto, error)
	FindPhotos(ctx context.Context, limit, offset int) ([]*model.GalleryPhoto, error)
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) CreateNews(ctx context.Context, post *model.NewsPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *contentRepository) UpdateNews(ctx context.Context, post *model.NewsPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *contentRepository) DeleteNews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.NewsPost{}, "id = ?", id).Error
}

func (r *contentRepository) FindNewsByID(ctx context.Context, id uuid.UUID) (*model.NewsPost, error) {
	var post model.NewsPost
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *contentRepository) FindNewsBySlug(ctx context.Context, slug string) (*model.NewsPost, error) {
	var post model.NewsPost
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("slug = ?", slug).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *contentRepository) FindPublishedNews(ctx context.Context, limit, offset int) ([]*model.NewsPost, error) {
	var posts []*model.NewsPost
	if err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *contentRepository) CreateEvent(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *contentRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Event{}, "id = ?", id).Error
}

func (r *contentRepository) FindEventBySlug(ctx context.Context, slug string) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *contentRepository) FindUpcomingEvents(ctx context.Context, limit, offset int) ([]*model.Event, error) {
	var events []*model.Event
	if err := r.db.WithContext(ctx).
		Order("starts_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *contentRepository) CreatePhoto(ctx context.Context, photo *model.GalleryPhoto) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *contentRepository) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.GalleryPhoto{}, "id = ?", id).Error
}

func (r *contentRepository) FindPhotoByID(ctx context.Context, id uuid.UUID) (*model.GalleryPhoto, error) {
	var photo model.GalleryPhoto
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&photo).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *contentRepository) FindPhotos(ctx context.Context, limit, offset int) ([]*model.GalleryPhoto, error) {
	var photos []*model.GalleryPhoto
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}
