package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AuthFSStore - файловое хранилище токена и id пользователя для CLI.
// TokenFile пустой - используется <config dir>/Catalog/auth_token.
type AuthFSStore struct {
	TokenFile string
}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "Catalog"), nil
}

func (s AuthFSStore) tokenPath() (string, error) {
	if s.TokenFile != "" {
		return s.TokenFile, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "auth_token"), nil
}

// id пользователя лежит рядом с токеном
func (s AuthFSStore) userIDPath() (string, error) {
	p, err := s.tokenPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(p), "user_id"), nil
}

func writeFile(p string, data string) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return err
	}
	return os.WriteFile(p, []byte(data), 0o600)
}

func readTrimmed(p string) (string, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	return strings.TrimRight(string(b), "\r\n\t "), nil
}

// Save сохраняет auth‑токен в файл.
func (s AuthFSStore) Save(token string) error {
	p, err := s.tokenPath()
	if err != nil {
		return err
	}
	return writeFile(p, token)
}

// Load читает auth‑токен из файла.
func (s AuthFSStore) Load() (string, error) {
	p, err := s.tokenPath()
	if err != nil {
		return "", err
	}
	tok, err := readTrimmed(p)
	if err != nil {
		return "", err
	}
	if tok == "" {
		return "", errors.New("empty token file")
	}
	return tok, nil
}

// SaveUserID сохраняет id вошедшего пользователя.
func (s AuthFSStore) SaveUserID(id int64) error {
	if id <= 0 {
		return errors.New("invalid user id")
	}
	p, err := s.userIDPath()
	if err != nil {
		return err
	}
	return writeFile(p, strconv.FormatInt(id, 10))
}

func (s AuthFSStore) LoadUserID() (int64, error) {
	p, err := s.userIDPath()
	if err != nil {
		return 0, err
	}
	raw, err := readTrimmed(p)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return 0, errors.New("no stored user id")
	}
	return strconv.ParseInt(raw, 10, 64)
}

// Clear удаляет токен и id пользователя; отсутствие файлов не ошибка.
func (s AuthFSStore) Clear() error {
	for _, path := range []func() (string, error){s.tokenPath, s.userIDPath} {
		p, err := path()
		if err != nil {
			return err
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
