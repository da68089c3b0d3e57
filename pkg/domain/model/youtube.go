package model

import (
	"regexp"

	"github.com/m-mizutani/ytlink/pkg/domain/types"
)

// videoIDPattern accepts watch?v=, youtu.be/, embed/, shorts/, v/ and
// youtube.com/<a>/<b>/<id> forms. The ID must be followed by '&', '?' or the
// end of input.
var videoIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|embed|watch|shorts)/|.*[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})(?:[&?]|$)`)

// ExtractVideoID returns the video ID in rawURL. The second return value is
// false if rawURL does not look like a YouTube video URL.
func ExtractVideoID(rawURL string) (types.VideoID, bool) {
	m := videoIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return types.VideoID(m[1]), true
}
