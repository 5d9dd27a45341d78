package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alumnihub/alumni-backend/internal/dto"
	"github.com/alumnihub/alumni-backend/internal/model"
	"github.com/alumnihub/alumni-backend/internal/repository"
	"github.com/alumnihub/alumni-backend/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newContentFixture(t *testing.T) (ContentService, *gorm.DB, *fakeStorage) {
	t.Helper()

	db := setupTestDB(t)
	fs := &fakeStorage{}
	svc := NewContentService(repository.NewContentRepository(db), fs, nil)
	return svc, db, fs
}

func TestCreateNews_SanitizesAndSlugs(t *testing.T) {
	svc, _, _ := newContentFixture(t)
	authorID := uuid.New()

	post, err := svc.CreateNews(context.Background(), authorID, dto.CreateNewsInput{
		Title:   "Annual Reunion 2026: Save the Date!",
		Body:    `<p>Join us.</p><script>alert("xss")</script>`,
		Publish: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "annual-reunion-2026-save-the-date", post.Slug)
	assert.Contains(t, post.Body, "<p>Join us.</p>")
	assert.NotContains(t, post.Body, "<script>")
	assert.True(t, post.Published)
	assert.NotNil(t, post.PublishedAt)
}

func TestCreateNews_DuplicateTitleGetsUniqueSlug(t *testing.T) {
	svc, _, _ := newContentFixture(t)
	authorID := uuid.New()
	ctx := context.Background()

	first, err := svc.CreateNews(ctx, authorID, dto.CreateNewsInput{Title: "Homecoming", Body: "a"})
	require.NoError(t, err)
	second, err := svc.CreateNews(ctx, authorID, dto.CreateNewsInput{Title: "Homecoming", Body: "b"})
	require.NoError(t, err)

	assert.Equal(t, "homecoming", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.True(t, strings.HasPrefix(second.Slug, "homecoming-"))
}

func TestListNews_OnlyPublished(t *testing.T) {
	svc, _, _ := newContentFixture(t)
	authorID := uuid.New()
	ctx := context.Background()

	_, err := svc.CreateNews(ctx, authorID, dto.CreateNewsInput{Title: "Draft", Body: "x", Publish: false})
	require.NoError(t, err)
	published, err := svc.CreateNews(ctx, authorID, dto.CreateNewsInput{Title: "Live", Body: "x", Publish: true})
	require.NoError(t, err)

	posts, err := svc.ListNews(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, published.ID, posts[0].ID)
}

func TestCreateEvent_ValidatesTimestamps(t *testing.T) {
	svc, _, _ := newContentFixture(t)
	ctx := context.Background()

	starts := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	event, err := svc.CreateEvent(ctx, dto.CreateEventInput{
		Title:    "Winter Gala",
		Body:     "Dinner and awards",
		Venue:    "Grand Hall",
		StartsAt: starts,
	})
	require.NoError(t, err)
	assert.Equal(t, "winter-gala", event.Slug)

	_, err = svc.CreateEvent(ctx, dto.CreateEventInput{
		Title:    "Bad Event",
		StartsAt: "next tuesday",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestGalleryPhotoLifecycle(t *testing.T) {
	svc, db, fs := newContentFixture(t)
	uploaderID := uuid.New()
	ctx := context.Background()

	photo, err := svc.AddGalleryPhoto(ctx, uploaderID, dto.CreateGalleryPhotoInput{
		Title: "Reunion group photo",
	}, &dto.UploadFile{
		Reader:   strings.NewReader("fake image bytes"),
		FileName: "group.jpg",
		MimeType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, fs.uploads[0], photo.URL)

	require.NoError(t, svc.DeleteGalleryPhoto(ctx, photo.ID))
	assert.Equal(t, []string{photo.URL}, fs.deletes)

	var count int64
	require.NoError(t, db.Model(&model.GalleryPhoto{}).Count(&count).Error)
	assert.Zero(t, count)

	// Upload without a file body is a bad request.
	_, err = svc.AddGalleryPhoto(ctx, uploaderID, dto.CreateGalleryPhotoInput{}, nil)
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}
