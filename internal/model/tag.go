package model

// Tag - метка, связь many-to-many с Item через item_tags.
type Tag struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:30;not null;uniqueIndex"`
}
