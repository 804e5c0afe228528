package domain

import "errors"

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrChannelNotFound     = errors.New("channel not found")
	ErrLastProfile         = errors.New("cannot delete the last profile")
	ErrLoadMoreUnsupported = errors.New("load more is not supported by this source")
	ErrProfileSwitched     = errors.New("profile is no longer current")
	ErrNoAPIKey            = errors.New("youtube api key is not configured")
)
