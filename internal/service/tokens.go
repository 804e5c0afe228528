package service

import "sync"

// pageTokens remembers where load more continues, per profile and channel.
// Two profiles sharing a channel page through it independently.
type pageTokens struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newPageTokens() *pageTokens {
	return &pageTokens{tokens: make(map[string]string)}
}

func tokenKey(profileID, channelID string) string {
	return profileID + "/" + channelID
}

func (t *pageTokens) get(profileID, channelID string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tokens[tokenKey(profileID, channelID)]
}

func (t *pageTokens) set(profileID, channelID, token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if token == "" {
		delete(t.tokens, tokenKey(profileID, channelID))
		return
	}
	t.tokens[tokenKey(profileID, channelID)] = token
}
