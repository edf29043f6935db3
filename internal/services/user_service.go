package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-mining-api/internal/auth"
	"github.com/onerilhan/go-mining-api/internal/interfaces"
	"github.com/onerilhan/go-mining-api/internal/models"
	"github.com/onerilhan/go-mining-api/internal/repository"
)

// UserService kullanıcı business logic'i
type UserService struct {
	userRepo  interfaces.UserRepositoryInterface
	auditRepo interfaces.AuditRepositoryInterface
	tokens    *auth.Manager
}

// NewUserService yeni service oluşturur
func NewUserService(userRepo interfaces.UserRepositoryInterface, auditRepo interfaces.AuditRepositoryInterface, tokens *auth.Manager) *UserService {
	return &UserService{userRepo: userRepo, auditRepo: auditRepo, tokens: tokens}
}

var _ interfaces.UserServiceInterface = (*UserService)(nil)

func (s *UserService) authResponse(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		User:      user,
		Token:     token,
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
	}, nil
}

func (s *UserService) create(ctx context.Context, req *models.CreateUserRequest, role string) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, req.Name, req.Email, hash, role)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Register yeni kullanıcı kaydeder. Rol her zaman user'dır.
func (s *UserService) Register(ctx context.Context, req *models.CreateUserRequest) (*models.AuthResponse, error) {
	user, err := s.create(ctx, req, models.RoleUser)
	if err != nil {
		return nil, err
	}

	log.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("Yeni kullanıcı kaydoldu")
	return s.authResponse(user)
}

// CreateAdmin sadece CLI üzerinden admin kullanıcı oluşturur
func (s *UserService) CreateAdmin(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	return s.create(ctx, req, models.RoleAdmin)
}

// Login kullanıcı girişi yapar ve token döner
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, ErrAccountSuspended
	}

	return s.authResponse(user)
}

// Refresh süresi dolmuş token'ı, kullanıcı hala aktifse yeniler
func (s *UserService) Refresh(ctx context.Context, token string) (*models.AuthResponse, error) {
	_, claims, err := s.tokens.RefreshToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, ErrAccountSuspended
	}

	// Rol değişmiş olabilir, token güncel satırdan üretilir
	return s.authResponse(user)
}

// GetByID ID ile kullanıcı getirir
func (s *UserService) GetByID(ctx context.Context, userID int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile kullanıcı adını günceller
func (s *UserService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.userRepo.UpdateName(ctx, userID, req.Name); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// ChangePassword mevcut şifreyi doğrulayıp yenisini kaydeder
func (s *UserService) ChangePassword(ctx context.Context, userID int, req *models.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, hash)
}

// List admin kullanıcı listesi
func (s *UserService) List(ctx context.Context, search string, limit, offset int) ([]*models.User, int, error) {
	return s.userRepo.List(ctx, search, limit, offset)
}

// AdminUpdate kullanıcı durumunu/rolünü günceller. Admin kendi hesabını askıya alamaz veya rolünü düşüremez.
func (s *UserService) AdminUpdate(ctx context.Context, actor models.Actor, userID int, req *models.AdminUpdateUserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	status, role := user.Status, user.Role
	if req.Status != nil {
		status = *req.Status
	}
	if req.Role != nil {
		role = *req.Role
	}

	if actor.UserID == userID && (status != models.UserStatusActive || role != models.RoleAdmin) {
		return nil, fmt.Errorf("%w: kendi hesabınızı askıya alamaz veya rolünüzü düşüremezsiniz", ErrForbidden)
	}

	if err := s.userRepo.UpdateStatusRole(ctx, userID, status, role); err != nil {
		return nil, err
	}

	details := fmt.Sprintf("status: %s -> %s, role: %s -> %s", user.Status, status, user.Role, role)
	if err := s.auditRepo.Create(ctx, auditEntry(actor, "user", userID, "update", details)); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("Audit kaydı yazılamadı")
	}

	user.Status, user.Role = status, role
	return user, nil
}
