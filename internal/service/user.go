package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"Catalog/internal/auth"
	"Catalog/internal/model"
	"Catalog/internal/repo"

	"go.uber.org/zap"
)

// UserService - регистрация, вход и управление учётками.
type UserService struct {
	repo   repo.UserRepository
	hasher *auth.PasswordHasher
	logger *zap.SugaredLogger
}

func NewUserService(r repo.UserRepository, hasher *auth.PasswordHasher, logger *zap.SugaredLogger) *UserService {
	if hasher == nil {
		hasher = auth.NewPasswordHasher(0)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &UserService{repo: r, hasher: hasher, logger: logger}
}

// UserPatch - частичное обновление пользователя. nil означает «не менять».
type UserPatch struct {
	Username *string
	Email    *string
	Password *string
	IsAdmin  *bool
}

func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.Password == nil && p.IsAdmin == nil
}

// Register создаёт обычного пользователя. Занятые username/email дают ErrConflict.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, NewValidationError("Username, email, and password are required")
	}
	user, err := s.create(ctx, username, email, password, false)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *UserService) create(ctx context.Context, username, email, password string, admin bool) (*model.User, error) {
	if err := s.ensureFree(ctx, 0, &username, &email); err != nil {
		return nil, err
	}
	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.CreateUser(ctx, &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      admin,
	})
	if err != nil {
		return nil, conflict(err, "user")
	}
	return user, nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", NewValidationError("Password is too long")
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// ensureFree проверяет, что username и email не заняты другим пользователем (selfID - сам обновляемый).
func (s *UserService) ensureFree(ctx context.Context, selfID int64, username, email *string) error {
	if username != nil {
		u, err := s.repo.GetUserByUsername(ctx, *username)
		miss, err := missing(u, err)
		if err != nil {
			return err
		}
		if !miss && u.ID != selfID {
			return ErrUsernameTaken
		}
	}
	if email != nil {
		u, err := s.repo.GetUserByEmail(ctx, *email)
		miss, err := missing(u, err)
		if err != nil {
			return err
		}
		if !miss && u.ID != selfID {
			return ErrEmailTaken
		}
	}
	return nil
}

// Login проверяет пару логин/пароль. Неизвестный логин и неверный пароль неразличимы.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, NewValidationError("Username and password are required")
	}
	user, err := s.repo.GetUserByUsername(ctx, username)
	miss, err := missing(user, err)
	if err != nil {
		return nil, err
	}
	if miss || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CheckPassword сверяет пароль с хешем пользователя.
func (s *UserService) CheckPassword(user *model.User, password string) bool {
	return user != nil && s.hasher.Verify(password, user.PasswordHash)
}

// Get возвращает пользователя по id без проверки прав.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	miss, err := missing(user, err)
	if err != nil {
		return nil, err
	}
	if miss {
		return nil, wrapNotFound("user")
	}
	return user, nil
}

// GetAs возвращает пользователя, если actor - он сам или администратор.
func (s *UserService) GetAs(ctx context.Context, actor *model.User, id int64) (*model.User, error) {
	if err := selfOrAdmin(actor, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}

// Update применяет патч. is_admin учитывается только если actor - администратор.
func (s *UserService) Update(ctx context.Context, actor *model.User, id int64, p UserPatch) (*model.User, error) {
	if err := selfOrAdmin(actor, id); err != nil {
		return nil, err
	}
	if !actor.IsAdmin {
		p.IsAdmin = nil
	}
	if p.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	var msgs []string
	if p.Username != nil && strings.TrimSpace(*p.Username) == "" {
		msgs = append(msgs, "Username cannot be empty")
	}
	if p.Email != nil && strings.TrimSpace(*p.Email) == "" {
		msgs = append(msgs, "Email cannot be empty")
	}
	if p.Password != nil && *p.Password == "" {
		msgs = append(msgs, "Password cannot be empty")
	}
	if len(msgs) > 0 {
		return nil, NewValidationError(msgs...)
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, id, p.Username, p.Email); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if p.Username != nil {
		updates["username"] = *p.Username
	}
	if p.Email != nil {
		updates["email"] = *p.Email
	}
	if p.Password != nil {
		hash, err := s.hashPassword(*p.Password)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = hash
	}
	if p.IsAdmin != nil {
		updates["is_admin"] = *p.IsAdmin
	}

	user, err := s.repo.UpdateUser(ctx, id, updates)
	if err != nil {
		return nil, conflict(notFound(err, "user"), "user")
	}
	return user, nil
}

// Delete удаляет пользователя. Только администратор и не самого себя; элементы остаются.
func (s *UserService) Delete(ctx context.Context, actor *model.User, id int64) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !actor.IsAdmin {
		s.logger.Warnw("user deletion denied", "user_id", id, "actor_id", actor.ID)
		return ErrForbidden
	}
	if actor.ID == id {
		return ErrCannotDeleteSelf
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return notFound(err, "user")
	}
	s.logger.Infow("user deleted", "user_id", id, "actor_id", actor.ID)
	return nil
}

// EnsureAdmin создаёт администратора или выдаёт права существующему пользователю с таким логином.
func (s *UserService) EnsureAdmin(ctx context.Context, username, email, password string) (*model.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, NewValidationError("Username, email, and password are required")
	}
	existing, err := s.repo.GetUserByUsername(ctx, username)
	miss, err := missing(existing, err)
	if err != nil {
		return nil, err
	}
	if miss {
		user, err := s.create(ctx, username, email, password, true)
		if err != nil {
			return nil, err
		}
		s.logger.Infow("admin created", "user_id", user.ID, "username", username)
		return user, nil
	}
	if existing.IsAdmin {
		return existing, nil
	}
	user, err := s.repo.UpdateUser(ctx, existing.ID, map[string]any{"is_admin": true})
	if err != nil {
		return nil, err
	}
	s.logger.Infow("user promoted to admin", "user_id", existing.ID, "username", username)
	return user, nil
}

// ValidateRegistration проверяет форму регистрации web-интерфейса.
func ValidateRegistration(username, email, password, confirm string) error {
	var msgs []string
	if n := len([]rune(username)); n < 3 || n > 50 {
		msgs = append(msgs, "Username must be between 3 and 50 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil || strings.TrimSpace(email) == "" {
		msgs = append(msgs, "Invalid email address")
	}
	if len(password) < 6 {
		msgs = append(msgs, "Password must be at least 6 characters")
	}
	if password != confirm {
		msgs = append(msgs, "Passwords must match")
	}
	if len(msgs) > 0 {
		return NewValidationError(msgs...)
	}
	return nil
}

func selfOrAdmin(actor *model.User, id int64) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if actor.ID != id && !actor.IsAdmin {
		return ErrForbidden
	}
	return nil
}

// IsNotFound - удобная проверка для обработчиков.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
