package domain

import "time"

type WatchEvent struct {
	VideoID   string    `json:"video_id" db:"video_id"`
	ChannelID string    `json:"channel_id" db:"channel_id"`
	WatchedAt time.Time `json:"watched_at" db:"watched_at"`
}
