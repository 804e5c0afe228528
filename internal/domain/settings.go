package domain

import "time"

// Settings are the app-wide knobs shared by every profile.
type Settings struct {
	APIKey       string    `json:"api_key" db:"api_key"`
	// APIKeySet records that the key was chosen through the app, even when
	// it was chosen to be empty. Otherwise the configured key applies.
	APIKeySet    bool      `json:"-" db:"api_key_set"`
	FilterShorts bool      `json:"filter_shorts" db:"filter_shorts"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// MaskedAPIKey hides all but the last four characters of the key.
func (s Settings) MaskedAPIKey() string {
	if len(s.APIKey) <= 4 {
		if s.APIKey == "" {
			return ""
		}
		return "****"
	}
	return "****" + s.APIKey[len(s.APIKey)-4:]
}
