package util

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrTimecode is returned for strings that are not a valid timestamp.
var ErrTimecode = errors.New("invalid time format")

var timecodeRegex = regexp.MustCompile(`^([0-9]+:){0,2}[0-9]+([.;][0-9]+)?$`)

// ToSeconds converts a timestamp of the form [[hh:]mm:]ss[.sss] to
// seconds. A ";ff" suffix counts frames at the given framerate.
func ToSeconds(timecode string, framerate float64) (float64, error) {
	timecode = strings.TrimSpace(timecode)
	if !timecodeRegex.MatchString(timecode) {
		return 0, fmt.Errorf("%q: %w", timecode, ErrTimecode)
	}

	parts := strings.Split(timecode, ":")
	last := len(parts) - 1

	frames := 0.0
	if i := strings.IndexByte(parts[last], ';'); i >= 0 {
		if framerate <= 0 {
			return 0, fmt.Errorf("%q: frame count needs a framerate: %w", timecode, ErrTimecode)
		}
		n, err := strconv.ParseFloat(parts[last][i+1:], 64)
		if err != nil {
			return 0, fmt.Errorf("%q: %w", timecode, ErrTimecode)
		}
		frames = n / framerate
		parts[last] = parts[last][:i]
	}

	seconds := 0.0
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, fmt.Errorf("%q: %w", timecode, ErrTimecode)
		}
		seconds = seconds*60 + v
	}

	return seconds + frames, nil
}
