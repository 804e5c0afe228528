// Package shorts decides whether a video is short-form content.
package shorts

import (
	"regexp"
	"strings"

	"safetube/internal/domain"
)

// DefaultThreshold sits above the platform's 60s definition to also catch
// short music clips.
const DefaultThreshold = 90

var shortsTitleRE = regexp.MustCompile(`#shorts|\[shorts\]|\(shorts\)|^shorts$|\sshorts$`)

type Classifier struct {
	Threshold int
}

func NewClassifier(threshold int) Classifier {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Classifier{Threshold: threshold}
}

// IsShortForm classifies by duration when it is known and positive, and by
// title otherwise. Unknown duration with an ordinary title is never short.
func (c Classifier) IsShortForm(v domain.Video, filterEnabled bool) bool {
	if !filterEnabled {
		return false
	}
	if v.HasDuration() {
		return *v.DurationSeconds <= c.Threshold
	}
	return IsShortTitle(v.Title)
}

// IsShortTitle reports whether the title carries a "shorts" marker.
func IsShortTitle(title string) bool {
	return shortsTitleRE.MatchString(strings.ToLower(strings.TrimSpace(title)))
}
