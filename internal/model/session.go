package model

import "time"

// Session - серверная сессия web-интерфейса.
type Session struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    int64     `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Expired сообщает, истекла ли сессия к моменту now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
