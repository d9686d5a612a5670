package repo

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"Catalog/internal/model"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// ErrDuplicate возвращается при нарушении уникального ограничения.
var ErrDuplicate = errors.New("duplicate key")

// Models - все модели, которые мигрирует InitDB.
var Models = []any{&model.User{}, &model.Category{}, &model.Tag{}, &model.Item{}, &model.Session{}}

// InitDB открывает БД по DSN и выполняет миграции.
// postgres://, postgresql:// и DSN вида "host=..." уходят в Postgres, всё остальное - путь к SQLite.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(dialectorFor(dsn), &gorm.Config{
		TranslateError: true,
		// владелец элемента может ссылаться на удалённого пользователя, FK не создаём
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   newGormLogger(log.New(os.Stderr, "\r\n", log.LstdFlags)),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// newGormLogger - предупреждения и ошибки SQL. Отсутствие записи - штатный исход поиска, не пишем.
func newGormLogger(w logger.Writer) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// Migrate создаёт/обновляет схему.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func dialectorFor(dsn string) gorm.Dialector {
	if isPostgresDSN(dsn) {
		return postgres.Open(dsn)
	}
	// modernc.org/sqlite регистрирует драйвер под именем "sqlite" (без cgo)
	return gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// translate приводит ошибки драйверов к ошибкам пакета.
// modernc sqlite не переводится gorm'ом, поэтому дополнительно смотрим на текст.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key") {
		return ErrDuplicate
	}
	return err
}

// escapeLike экранирует спецсимволы LIKE, чтобы поиск был подстрочным.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
