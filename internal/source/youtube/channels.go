package youtube

import (
	"context"
	"fmt"

	yt "google.golang.org/api/youtube/v3"

	"safetube/internal/domain"
)

const (
	channelBatchSize = 50
	searchMaxResults = 5
)

func (f *Fetcher) resolveUploads(ctx context.Context, svc *yt.Service, channelID string) (string, error) {
	resp, err := call(ctx, f, "list channel details", func(ctx context.Context) (*yt.ChannelListResponse, error) {
		return svc.Channels.List([]string{"contentDetails"}).Id(channelID).Context(ctx).Do()
	})
	if err != nil {
		return "", err
	}

	for _, item := range resp.Items {
		if item.ContentDetails != nil && item.ContentDetails.RelatedPlaylists != nil && item.ContentDetails.RelatedPlaylists.Uploads != "" {
			return item.ContentDetails.RelatedPlaylists.Uploads, nil
		}
	}
	return "", fmt.Errorf("channel %s: %w", channelID, domain.ErrChannelNotFound)
}

// ChannelThumbnails resolves channel icons in batches of up to 50 ids.
// Channels the API does not know are absent from the result.
func (f *Fetcher) ChannelThumbnails(ctx context.Context, channelIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(channelIDs))
	if len(channelIDs) == 0 {
		return out, nil
	}

	svc, err := f.service(ctx)
	if err != nil {
		return nil, err
	}

	for start := 0; start < len(channelIDs); start += channelBatchSize {
		end := min(start+channelBatchSize, len(channelIDs))
		batch := channelIDs[start:end]

		resp, err := call(ctx, f, "list channel snippets", func(ctx context.Context) (*yt.ChannelListResponse, error) {
			return svc.Channels.List([]string{"snippet"}).Id(batch...).Context(ctx).Do()
		})
		if err != nil {
			return out, err
		}

		for _, item := range resp.Items {
			if item.Snippet == nil || item.Snippet.Thumbnails == nil {
				continue
			}
			if url := channelIcon(item.Snippet.Thumbnails); url != "" {
				out[item.Id] = url
			}
		}
	}

	return out, nil
}

// SearchChannels returns up to five channels matching query.
func (f *Fetcher) SearchChannels(ctx context.Context, query string) ([]domain.ChannelMatch, error) {
	svc, err := f.service(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := call(ctx, f, "search channels", func(ctx context.Context) (*yt.SearchListResponse, error) {
		return svc.Search.List([]string{"snippet"}).
			Q(query).
			Type("channel").
			MaxResults(searchMaxResults).
			Context(ctx).
			Do()
	})
	if err != nil {
		return nil, err
	}

	matches := make([]domain.ChannelMatch, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil {
			continue
		}
		id := item.Snippet.ChannelId
		if id == "" && item.Id != nil {
			id = item.Id.ChannelId
		}
		if id == "" {
			continue
		}

		match := domain.ChannelMatch{
			ID:          id,
			Title:       item.Snippet.ChannelTitle,
			Description: item.Snippet.Description,
		}
		if match.Title == "" {
			match.Title = item.Snippet.Title
		}
		if item.Snippet.Thumbnails != nil {
			match.ThumbnailURL = channelIcon(item.Snippet.Thumbnails)
		}
		matches = append(matches, match)
	}

	return matches, nil
}

func channelIcon(t *yt.ThumbnailDetails) string {
	for _, candidate := range []*yt.Thumbnail{t.Default, t.Medium, t.High} {
		if candidate != nil && candidate.Url != "" {
			return candidate.Url
		}
	}
	return ""
}
