package model

// Category группирует элементы каталога.
type Category struct {
	ID          int64   `gorm:"primaryKey"`
	Name        string  `gorm:"size:50;not null;uniqueIndex"`
	Description *string `gorm:"type:text"`
}
