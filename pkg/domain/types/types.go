package types

// VideoID is an 11 character YouTube video identifier
type VideoID string

func (x VideoID) String() string { return string(x) }

// Format represents the requested output container
type Format string

const (
	FormatMP4 Format = "mp4"
	FormatMP3 Format = "mp3"
)

// ParseFormat converts a user supplied format. Anything other than "mp4" is
// treated as audio.
func ParseFormat(s string) Format {
	if s == string(FormatMP4) {
		return FormatMP4
	}
	return FormatMP3
}

func (x Format) String() string { return string(x) }

// IsVideo returns true for video output
func (x Format) IsVideo() bool { return x == FormatMP4 }

// Value returns the format flag expected by the provider: 0 for video, 1 for audio
func (x Format) Value() int {
	if x.IsVideo() {
		return 0
	}
	return 1
}

// QualityCode is the resolution or bitrate selector understood by the provider
type QualityCode int

// Creator is included in every response of the download API
const Creator = "AK_CREATIONS"
