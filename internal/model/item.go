package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item - основная сущность каталога.
type Item struct {
	ID          int64  `gorm:"primaryKey"`
	UUID        string `gorm:"size:36;not null;uniqueIndex"`
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"type:text"`

	// Владелец и категория опциональны. Ссылка на владельца может остаться висячей после удаления пользователя.
	OwnerID    *int64 `gorm:"index"`
	Owner      *User  `gorm:"foreignKey:OwnerID"`
	CategoryID *int64 `gorm:"index"`
	Category   *Category
	Tags       []Tag `gorm:"many2many:item_tags;"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// BeforeCreate выдаёт внешний идентификатор, если он не задан.
func (it *Item) BeforeCreate(_ *gorm.DB) error {
	if it.UUID == "" {
		it.UUID = uuid.NewString()
	}
	return nil
}

// TagIDs возвращает идентификаторы меток элемента.
func (it *Item) TagIDs() []int64 {
	ids := make([]int64, 0, len(it.Tags))
	for _, t := range it.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// OwnedBy сообщает, принадлежит ли элемент пользователю с данным id.
func (it *Item) OwnedBy(userID int64) bool {
	return it.OwnerID != nil && *it.OwnerID == userID
}
