package service

import (
	"fmt"
	"time"

	"safetube/internal/domain"
)

var demoVideos = []struct {
	id, title, channelID, channelTitle string
}{
	{
		id:           "WRVsOCh907o",
		title:        "Baby Shark Dance | #babyshark Most Viewed Video | Animal Songs | PINKFONG Songs for Children",
		channelID:    "UCcdwLMPsaU2ezNSJU1nFoBQ",
		channelTitle: "Pinkfong Baby Shark - Kids' Songs & Stories",
	},
	{
		id:           "yCjJyiqpAuU",
		title:        "Phonics Song with TWO Words - A For Apple - ABC Alphabet Songs with Sounds for Children",
		channelID:    "UCBnZ16ahKA2DZ_T5W0FPUXg",
		channelTitle: "ChuChu TV",
	},
	{
		id:           "_6HzoUcx3eo",
		title:        "Twinkle Twinkle Little Star",
		channelID:    "UC2h-ucSvsjDMg8gqE2KoVyg",
		channelTitle: "Super Simple Songs",
	},
}

// DemoVideos is the built-in set shown when the feed path yields nothing.
// It is never cached.
func DemoVideos(now time.Time) []domain.Video {
	videos := make([]domain.Video, 0, len(demoVideos))
	for _, d := range demoVideos {
		videos = append(videos, domain.Video{
			ID:           d.id,
			Title:        d.title,
			ThumbnailURL: fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", d.id),
			ChannelID:    d.channelID,
			ChannelTitle: d.channelTitle,
			PublishedAt:  now.UTC(),
		})
	}
	return videos
}
