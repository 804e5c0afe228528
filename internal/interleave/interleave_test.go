package interleave

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetube/internal/domain"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func makeVideos(channelID string, n int) []domain.Video {
	out := make([]domain.Video, n)
	for i := range out {
		out[i] = domain.Video{
			ID:          fmt.Sprintf("%s-%d", channelID, i),
			Title:       fmt.Sprintf("%s video %d", channelID, i),
			ChannelID:   channelID,
			PublishedAt: base.Add(-time.Duration(i) * time.Hour),
		}
	}
	return out
}

func concat(groups ...[]domain.Video) []domain.Video {
	var out []domain.Video
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// assertRunsRespected fails when a channel appears a third time in a row while
// another channel still had videos left.
func assertRunsRespected(t *testing.T, input, output []domain.Video) {
	t.Helper()

	remaining := make(map[string]int)
	for _, v := range input {
		remaining[v.ChannelID]++
	}

	last := ""
	run := 0
	for i, v := range output {
		if v.ChannelID == last {
			run++
		} else {
			last, run = v.ChannelID, 1
		}

		if run > MaxRun {
			othersLeft := 0
			for ch, n := range remaining {
				if ch != v.ChannelID {
					othersLeft += n
				}
			}
			require.Zero(t, othersLeft, "run of %d from %s at position %d while others had videos", run, v.ChannelID, i)
		}
		remaining[v.ChannelID]--
	}
}

func TestOrder_KeepsEveryVideoOnce(t *testing.T) {
	input := concat(makeVideos("a", 5), makeVideos("b", 3), makeVideos("c", 1))
	rng := rand.New(rand.NewPCG(1, 2))

	out := Order(input, nil, rng)

	require.Len(t, out, len(input))
	assert.ElementsMatch(t, input, out)
}

func TestOrder_PerChannelNewestFirst(t *testing.T) {
	a := makeVideos("a", 4)
	// reversed input order must not matter
	input := concat([]domain.Video{a[3], a[1]}, makeVideos("b", 4), []domain.Video{a[0], a[2]})
	rng := rand.New(rand.NewPCG(3, 4))

	out := Order(input, map[string]float64{"a": 2}, rng)

	var seen []string
	for _, v := range out {
		if v.ChannelID == "a" {
			seen = append(seen, v.ID)
		}
	}
	assert.Equal(t, []string{"a-0", "a-1", "a-2", "a-3"}, seen)
}

func TestOrder_NeverMoreThanTwoInARow(t *testing.T) {
	input := concat(makeVideos("a", 10), makeVideos("b", 3), makeVideos("c", 4))
	scores := map[string]float64{"a": 30}

	for seed := uint64(0); seed < 200; seed++ {
		out := Order(input, scores, rand.New(rand.NewPCG(seed, seed+1)))
		require.Len(t, out, len(input))
		assertRunsRespected(t, input, out)
	}
}

func TestOrder_SingleChannelIsForced(t *testing.T) {
	input := makeVideos("solo", 5)

	out := Order(input, nil, rand.New(rand.NewPCG(9, 9)))

	require.Len(t, out, 5)
	for i, v := range out {
		assert.Equal(t, fmt.Sprintf("solo-%d", i), v.ID)
	}
}

func TestOrder_EmptyInput(t *testing.T) {
	assert.Empty(t, Order(nil, nil, nil))
}

func TestOrder_InterestWeighting(t *testing.T) {
	input := concat(makeVideos("fav", 6), makeVideos("b", 6), makeVideos("c", 6), makeVideos("d", 6))
	half := len(input) / 2
	const runs = 500

	share := func(scores map[string]float64, seed uint64) float64 {
		rng := rand.New(rand.NewPCG(seed, 7))
		hits := 0
		for i := 0; i < runs; i++ {
			out := Order(input, scores, rng)
			for _, v := range out[:half] {
				if v.ChannelID == "fav" {
					hits++
				}
			}
		}
		return float64(hits) / float64(runs*half)
	}

	baseline := share(nil, 11)
	weighted := share(map[string]float64{"fav": 9}, 11)

	// unweighted expectation is 1/4 of the first half
	assert.InDelta(t, 0.25, baseline, 0.05)
	assert.Greater(t, weighted, baseline+0.1)
}

func TestOrder_ZeroScoreChannelStillDrawn(t *testing.T) {
	input := concat(makeVideos("loved", 20), makeVideos("new", 1))
	scores := map[string]float64{"loved": 100}

	out := Order(input, scores, rand.New(rand.NewPCG(5, 6)))

	var found bool
	for _, v := range out {
		if v.ChannelID == "new" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestForDisplay_TimestampSorts(t *testing.T) {
	input := concat(makeVideos("a", 2), makeVideos("b", 2))
	input[0].PublishedAt = base.Add(-10 * time.Hour)

	newest := ForDisplay(input, SortNewest, nil, nil)
	oldest := ForDisplay(input, SortOldest, nil, nil)

	for i := 1; i < len(newest); i++ {
		assert.False(t, newest[i].PublishedAt.After(newest[i-1].PublishedAt))
		assert.False(t, oldest[i].PublishedAt.Before(oldest[i-1].PublishedAt))
	}
	assert.Equal(t, "a-0", newest[len(newest)-1].ID)
	assert.Equal(t, "a-0", oldest[0].ID)
	// input untouched
	assert.Equal(t, "a-0", input[0].ID)
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortNewest, ParseSortMode(""))
	assert.Equal(t, SortNewest, ParseSortMode("bogus"))
	assert.Equal(t, SortOldest, ParseSortMode("oldest"))
	assert.Equal(t, SortShuffle, ParseSortMode("shuffle"))
	assert.Equal(t, SortShuffle, ParseSortMode("weighted-shuffle"))
}
