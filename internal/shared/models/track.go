package models

import (
	"time"

	"github.com/google/uuid"
)

// Track - музыкальный трек каталога.
type Track struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Artist      string         `json:"artist"`
	Listens     int            `json:"listens"`
	AudioPath   string         `json:"audio"`
	PicturePath string         `json:"picture"`
	AddedBy     uuid.UUID      `json:"addedBy"`
	CreatedAt   time.Time      `json:"createdAt"`
	Comments    []TrackComment `json:"comments,omitempty"`
}

// TrackComment - комментарий пользователя к треку.
type TrackComment struct {
	ID        uuid.UUID `json:"id"`
	TrackID   uuid.UUID `json:"trackId"`
	UserEmail string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// TrackPage - страница треков с общим количеством.
type TrackPage struct {
	Tracks []Track `json:"tracks"`
	Total  int64   `json:"total"`
}
