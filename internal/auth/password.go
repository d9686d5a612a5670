package auth

import "golang.org/x/crypto/bcrypt"

// ErrPasswordTooLong - bcrypt принимает не больше 72 байт пароля.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// PasswordHasher хеширует и проверяет пароли через bcrypt (соль хранится внутри дайджеста).
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher создаёт хешер. cost вне допустимого диапазона заменяется на bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash возвращает bcrypt-дайджест пароля. Пароли длиннее 72 байт bcrypt отвергает.
func (h *PasswordHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify сравнивает пароль с дайджестом. Повреждённый дайджест даёт false, а не ошибку.
func (h *PasswordHasher) Verify(password, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
