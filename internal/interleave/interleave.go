// Package interleave orders a merged video list for display.
//
// The weighted shuffle mixes channels so no channel appears more than twice
// in a row while another one still has videos, and draws channels with
// probability proportional to 1 + their interest score.
package interleave

import (
	"math/rand/v2"
	"sort"

	"safetube/internal/domain"
)

type SortMode string

const (
	SortNewest  SortMode = "newest"
	SortOldest  SortMode = "oldest"
	SortShuffle SortMode = "shuffle"
)

// MaxRun is the longest allowed streak from one channel when an alternative exists.
const MaxRun = 2

// ParseSortMode maps a request value onto a mode, defaulting to newest.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortOldest:
		return SortOldest
	case SortShuffle, "weighted-shuffle":
		return SortShuffle
	default:
		return SortNewest
	}
}

// ForDisplay returns a new slice ordered according to mode. Scores are only
// consulted for SortShuffle.
func ForDisplay(videos []domain.Video, mode SortMode, scores map[string]float64, rng *rand.Rand) []domain.Video {
	switch mode {
	case SortOldest:
		out := clone(videos)
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PublishedAt.Before(out[j].PublishedAt)
		})
		return out
	case SortShuffle:
		return Order(videos, scores, rng)
	default:
		return SortNewestFirst(clone(videos))
	}
}

// SortNewestFirst sorts in place by descending publish time and returns the slice.
func SortNewestFirst(videos []domain.Video) []domain.Video {
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].PublishedAt.After(videos[j].PublishedAt)
	})
	return videos
}

type queue struct {
	channelID string
	weight    float64
	videos    []domain.Video
}

// Order performs the weighted interleave. A nil rng uses the global source.
func Order(videos []domain.Video, scores map[string]float64, rng *rand.Rand) []domain.Video {
	queues := group(videos, scores)
	out := make([]domain.Video, 0, len(videos))

	last := ""
	run := 0
	eligible := make([]*queue, 0, len(queues))

	for len(out) < len(videos) {
		eligible = eligible[:0]
		for _, q := range queues {
			if len(q.videos) > 0 {
				eligible = append(eligible, q)
			}
		}
		if len(eligible) > 1 && run >= MaxRun {
			eligible = exclude(eligible, last)
		}

		q := draw(eligible, rng)
		out = append(out, q.videos[0])
		q.videos = q.videos[1:]

		if q.channelID == last {
			run++
		} else {
			last = q.channelID
			run = 1
		}
	}

	return out
}

// group buckets videos per channel, newest first, preserving first-seen channel order.
func group(videos []domain.Video, scores map[string]float64) []*queue {
	index := make(map[string]*queue)
	var queues []*queue

	for _, v := range videos {
		q, ok := index[v.ChannelID]
		if !ok {
			q = &queue{channelID: v.ChannelID, weight: 1 + scores[v.ChannelID]}
			index[v.ChannelID] = q
			queues = append(queues, q)
		}
		q.videos = append(q.videos, v)
	}

	for _, q := range queues {
		SortNewestFirst(q.videos)
	}
	return queues
}

func exclude(queues []*queue, channelID string) []*queue {
	out := queues[:0]
	for _, q := range queues {
		if q.channelID != channelID {
			out = append(out, q)
		}
	}
	return out
}

func draw(queues []*queue, rng *rand.Rand) *queue {
	var total float64
	for _, q := range queues {
		total += q.weight
	}

	r := unit(rng) * total
	for _, q := range queues {
		r -= q.weight
		if r < 0 {
			return q
		}
	}
	return queues[len(queues)-1]
}

func unit(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}

func clone(videos []domain.Video) []domain.Video {
	out := make([]domain.Video, len(videos))
	copy(out, videos)
	return out
}
