package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-manager/internal/api/metrics"
	"github.com/taskforge/task-manager/internal/core/domain"
	"github.com/taskforge/task-manager/internal/core/ports"
)

// TokenIssuer abstracts the token service (internal/auth).
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// AuthService implements registration, login and profile management.
// Plaintext secrets only ever exist on the stack of these methods; they are
// hashed before persistence and never logged.
type AuthService struct {
	repo       ports.UserRepository
	tokens     TokenIssuer
	bcryptCost int
	log        zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens TokenIssuer, bcryptCost int, log zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{repo: repo, tokens: tokens, bcryptCost: bcryptCost, log: log}
}

// normalizeEmail applies the canonical form used for uniqueness checks.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user account and returns a token for it. The role
// is always "user".
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	email := normalizeEmail(in.Email)

	if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing != nil {
		return "", nil, domain.ErrEmailTaken
	} else if err != nil && err != domain.ErrUserNotFound {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return "", nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return token, created, nil
}

// Login verifies the credentials and returns a fresh token. A missing user
// and a wrong password produce the same error so the response never reveals
// which part was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if err == domain.ErrUserNotFound {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

// UpdateProfile changes name and/or email. An email change is re-checked
// for uniqueness against the store.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error) {
	fields := ports.UserUpdate{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		fields.Name = &name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		existing, err := s.repo.FindByEmail(ctx, email)
		if err != nil && err != domain.ErrUserNotFound {
			return nil, err
		}
		if existing != nil && existing.ID != userID {
			return nil, domain.ErrEmailTaken
		}
		fields.Email = &email
	}

	return s.repo.UpdateFields(ctx, userID, fields)
}

// ChangePassword rehashes the secret only after the current one is proven.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return err
	}

	hashed := string(hash)
	if _, err := s.repo.UpdateFields(ctx, userID, ports.UserUpdate{PasswordHash: &hashed}); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}
