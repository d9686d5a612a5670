package repo

// UserContextStore абстракция для хранения контекста пользователя (id последнего вошедшего).
type UserContextStore interface {
	SaveUserID(id int64) error
	LoadUserID() (int64, error)
}

// AuthStore - токен и контекст пользователя вместе, так их использует CLI.
type AuthStore interface {
	TokenStore
	UserContextStore
}
