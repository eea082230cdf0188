package models

import "time"

// ShortCodeLength длина короткого кода ссылки.
const ShortCodeLength = 6

// Link структура модели хранения короткой ссылки.
type Link struct {
	Code      string    `gorm:"primaryKey;size:16" json:"urlId"`
	TargetURL string    `gorm:"not null;uniqueIndex:idx_links_owner_target,priority:2" json:"origUrl"`
	OwnerID   string    `gorm:"size:36;not null;uniqueIndex:idx_links_owner_target,priority:1" json:"user"`
	ShortURL  string    `gorm:"not null" json:"shortUrl"`
	Clicks    int64     `gorm:"not null;default:0" json:"clicks"`
	CreatedAt time.Time `gorm:"not null;index" json:"date"`
}

// OwnedLink ссылка вместе с email владельца, используется в админских выборках.
type OwnedLink struct {
	Link
	OwnerEmail string `json:"ownerEmail"`
}
