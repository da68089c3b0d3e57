package model

import (
	"slices"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ytlink/pkg/domain/types"
)

var (
	videoQualities = []string{"144", "240", "360", "720", "1080"}

	// audioQualities maps a bitrate label to the provider's audio quality code
	audioQualities = map[string]types.QualityCode{
		"320": 0,
		"256": 1,
		"128": 4,
		"96":  5,
	}
)

// ResolveQuality converts a user facing quality label into the provider's
// quality code. Video labels are passed through as integers, audio bitrates
// are remapped. Labels outside the allowed set of the format are rejected
// with an error tagged types.ErrTagValidation.
func ResolveQuality(format types.Format, quality string) (types.QualityCode, error) {
	if format.IsVideo() {
		if !slices.Contains(videoQualities, quality) {
			return 0, goerr.New("Invalid MP4 quality. Allowed: 144, 240, 360, 720, 1080",
				goerr.T(types.ErrTagValidation),
				goerr.V("quality", quality))
		}

		v, err := strconv.Atoi(quality)
		if err != nil {
			return 0, goerr.Wrap(err, "failed to parse video quality",
				goerr.T(types.ErrTagValidation),
				goerr.V("quality", quality))
		}
		return types.QualityCode(v), nil
	}

	code, ok := audioQualities[quality]
	if !ok {
		return 0, goerr.New("Invalid MP3 quality. Allowed: 96, 128, 256, 320",
			goerr.T(types.ErrTagValidation),
			goerr.V("quality", quality))
	}
	return code, nil
}
