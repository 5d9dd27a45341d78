package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/alumnihub/alumni-backend/internal/dto"
	"github.com/alumnihub/alumni-backend/internal/model"
	"github.com/alumnihub/alumni-backend/internal/repository"
	"github.com/alumnihub/alumni-backend/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*dto.RegisterResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResponse, error)
}

type authService struct {
	repo     repository.UserRepository
	notifier NotificationService
	secret   string
}

func NewAuthService(repo repository.UserRepository, notifier NotificationService) AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "12345"
	}

	return &authService{
		repo:     repo,
		notifier: notifier,
		secret:   secret,
	}
}

// Register creates the signup triple: an account with the default user role,
// an empty profile and a pending member application with an empty vote set.
func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*dto.RegisterResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperror.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperror.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role, err := s.repo.FindRoleByName(ctx, model.RoleUser)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("role %s not found", model.RoleUser)
		}
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	roleID := role.ID
	user := &model.User{
		Username:         input.Username,
		Email:            input.Email,
		PasswordHash:     string(hashedPassword),
		RoleID:           &roleID,
		MembershipStatus: model.ApplicationPending,
	}

	profile := &model.Profile{
		FullName: input.FullName,
	}

	application := &model.MemberApplication{
		DisplayName: input.FullName,
		Email:       input.Email,
		Status:      model.ApplicationPending,
	}

	if err := s.repo.Create(ctx, user, profile, application); err != nil {
		return nil, err
	}

	s.notifyAdminsOfSignup(ctx, user, application)

	createdUser, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	createdUser.PasswordHash = ""

	return &dto.RegisterResponse{
		User:        createdUser,
		Application: application,
	}, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.ErrUnauthorized
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""

	return &dto.LoginResponse{
		Token: token,
		User:  user,
	}, nil
}

func (s *authService) issueToken(userID uuid.UUID) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *authService) notifyAdminsOfSignup(ctx context.Context, user *model.User, app *model.MemberApplication) {
	if s.notifier == nil {
		return
	}

	admins, err := s.repo.FindAdmins(ctx)
	if err != nil {
		log.Printf("failed to load admins for signup notification: %v", err)
		return
	}

	adminIDs := make([]uuid.UUID, 0, len(admins))
	for _, admin := range admins {
		adminIDs = append(adminIDs, admin.ID)
	}

	notification := &model.Notification{
		EntityID:   app.ID,
		EntityType: "application",
		Type:       "member_pending",
		Message:    fmt.Sprintf("%s has applied for membership and is awaiting review", user.Username),
	}

	if err := s.notifier.NotifyAdmins(ctx, notification, adminIDs); err != nil {
		log.Printf("failed to notify admins of new application: %v", err)
	}
}
