package repository

import (
	"context"

	"github.com/alumnihub/alumni-backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User, profile *model.Profile, application *model.MemberApplication) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindRoleByName(ctx context.Context, name string) (*model.Role, error)
	FindLegacyRole(ctx context.Context, userID uuid.UUID) (*model.LegacyRoleAssignment, error)
	FindAdmins(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, user *model.User, profile *model.Profile) error
	Count(ctx context.Context) (int64, error)

	CreateDocument(ctx context.Context, doc *model.VerificationDocument) error
	FindDocumentsByUserID(ctx context.Context, userID uuid.UUID) ([]model.VerificationDocument, error)
	DeleteDocumentsByUserID(ctx context.Context, userID uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create persists the signup triple: account, empty profile and a pending
// application with an empty vote set, all in one transaction.
func (r *userRepository) Create(ctx context.Context, user *model.User, profile *model.Profile, application *model.MemberApplication) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		if profile != nil {
			profile.UserID = user.ID
			if err := tx.Create(profile).Error; err != nil {
				return err
			}
		}

		if application != nil {
			application.UserID = user.ID
			if err := tx.Create(application).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Profile").
		Preload("Profile.Documents").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Profile").
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Profile").
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindRoleByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}

	return &role, nil
}

func (r *userRepository) FindLegacyRole(ctx context.Context, userID uuid.UUID) (*model.LegacyRoleAssignment, error) {
	var assignment model.LegacyRoleAssignment
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&assignment).Error; err != nil {
		return nil, err
	}

	return &assignment, nil
}

func (r *userRepository) FindAdmins(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name = ?", model.RoleAdmin).
		Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User, profile *model.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}

		if profile != nil {
			if err := tx.Save(profile).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) CreateDocument(ctx context.Context, doc *model.VerificationDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *userRepository) FindDocumentsByUserID(ctx context.Context, userID uuid.UUID) ([]model.VerificationDocument, error) {
	var docs []model.VerificationDocument
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at ASC").
		Find(&docs).Error; err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *userRepository) DeleteDocumentsByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.VerificationDocument{}).Error
}
