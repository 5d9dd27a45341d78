package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/alumnihub/alumni-backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to SQLite test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.LegacyRoleAssignment{},
		&model.Profile{},
		&model.VerificationDocument{},
		&model.MemberApplication{},
		&model.ApprovalVote{},
		&model.NewsPost{},
		&model.Event{},
		&model.GalleryPhoto{},
		&model.ContactMessage{},
		&model.NewsletterSubscriber{},
		&model.Notification{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedTestRoles(t *testing.T, db *gorm.DB) (admin, user model.Role) {
	t.Helper()

	admin = model.Role{Name: model.RoleAdmin, Description: "Association administrator"}
	user = model.Role{Name: model.RoleUser, Description: "Alumni member"}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("failed to seed admin role: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user role: %v", err)
	}
	return admin, user
}

func createTestUser(t *testing.T, db *gorm.DB, username string, roleID uint) *model.User {
	t.Helper()

	u := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		RoleID:       &roleID,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return u
}

func createTestApplication(t *testing.T, db *gorm.DB, userID uuid.UUID, displayName string) *model.MemberApplication {
	t.Helper()

	app := &model.MemberApplication{
		UserID:      userID,
		DisplayName: displayName,
		Email:       displayName + "@example.com",
		Status:      model.ApplicationPending,
	}
	if err := db.Create(app).Error; err != nil {
		t.Fatalf("failed to create application: %v", err)
	}
	return app
}

func completeProfile(userID uuid.UUID) *model.Profile {
	return &model.Profile{
		UserID:        userID,
		FullName:      "Test Member",
		Nickname:      "tm",
		Department:    "CSE",
		Hall:          "North Hall",
		ContactNumber: "+8801700000000",
		BloodGroup:    "O+",
	}
}

// fakeStorage records deletes and uploads instead of calling Cloudinary.
type fakeStorage struct {
	mu       sync.Mutex
	uploads  []string
	deletes  []string
	failDel  bool
	uploadNo int
}

func (f *fakeStorage) Upload(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadNo++
	url := fmt.Sprintf("https://storage.test/%s/%d-%s", folder, f.uploadNo, fileName)
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeStorage) Delete(ctx context.Context, fileURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, fileURL)
	if f.failDel {
		return fmt.Errorf("storage unavailable")
	}
	return nil
}

// fakeMailer records sent emails.
type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	if f.fail {
		return fmt.Errorf("smtp unavailable")
	}
	return nil
}
