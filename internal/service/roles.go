package service

import (
	"context"
	"errors"

	"github.com/alumnihub/alumni-backend/internal/model"
	"github.com/alumnihub/alumni-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleResolver is the single authority for answering "what role does this
// user have". The users table is checked first; the legacy role-assignment
// table is a fallback for accounts created before the schema migration.
type RoleResolver interface {
	ResolveRole(ctx context.Context, userID uuid.UUID) (string, error)
}

type roleResolver struct {
	repo repository.UserRepository
}

func NewRoleResolver(repo repository.UserRepository) RoleResolver {
	return &roleResolver{repo: repo}
}

func (r *roleResolver) ResolveRole(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := r.repo.FindByID(ctx, userID.String())
	if err != nil {
		return "", err
	}

	if user.Role.Name != "" {
		return user.Role.Name, nil
	}

	assignment, err := r.repo.FindLegacyRole(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.RoleUser, nil
		}
		return "", err
	}

	return assignment.RoleName, nil
}
