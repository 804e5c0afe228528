package domain

import "time"

type Channel struct {
	ID                string `json:"id" db:"channel_id"`
	Name              string `json:"name" db:"name"`
	ThumbnailURL      string `json:"thumbnail_url" db:"thumbnail_url"`
	UploadsPlaylistID string `json:"uploads_playlist_id,omitempty" db:"uploads_playlist_id"`
}

type Profile struct {
	ID                string    `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Channels          []Channel `json:"channels" db:"-"`
	DailyLimitMinutes int       `json:"daily_limit_minutes" db:"daily_limit_minutes"`
	IsCurrent         bool      `json:"is_current" db:"is_current"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// ChannelIDs returns the set of channel ids currently subscribed by the profile.
func (p *Profile) ChannelIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(p.Channels))
	for _, c := range p.Channels {
		ids[c.ID] = struct{}{}
	}
	return ids
}

// Channel looks up a subscribed channel by id.
func (p *Profile) Channel(id string) (Channel, bool) {
	for _, c := range p.Channels {
		if c.ID == id {
			return c, true
		}
	}
	return Channel{}, false
}

// ChannelMatch is a channel search hit offered to the parent when adding a channel.
type ChannelMatch struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
}
