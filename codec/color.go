package codec

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var (
	hexRegex  = regexp.MustCompile(`#[0-9a-fA-F]+`)
	wordRegex = regexp.MustCompile(`\b[A-Za-z]+\b`)
)

// ExpandHexColors rewrites #rgb, #rgba, #rrggbb and #rrggbbaa colors as
// rgb() or rgba() so each channel becomes a separate number. Alpha is
// scaled to [0, 1]. Hex runs of any other length are left untouched.
func ExpandHexColors(s string) string {
	return hexRegex.ReplaceAllStringFunc(s, func(hex string) string {
		out, ok := hexToFunctional(hex)
		if !ok {
			return hex
		}
		return out
	})
}

func hexToFunctional(hex string) (string, bool) {
	var rgb, alpha string
	switch len(hex) {
	case 4, 5:
		long := []byte{'#'}
		for i := 1; i < len(hex); i++ {
			long = append(long, hex[i], hex[i])
		}
		rgb, alpha = string(long[:7]), string(long[7:])
	case 7:
		rgb = hex
	case 9:
		rgb, alpha = hex[:7], hex[7:]
	default:
		return "", false
	}

	c, err := colorful.Hex(strings.ToLower(rgb))
	if err != nil {
		return "", false
	}
	r, g, b := c.RGB255()
	channels := []string{
		strconv.Itoa(int(r)),
		strconv.Itoa(int(g)),
		strconv.Itoa(int(b)),
	}
	if alpha == "" {
		return "rgb(" + strings.Join(channels, ",") + ")", true
	}

	a, err := strconv.ParseUint(alpha, 16, 8)
	if err != nil {
		return "", false
	}
	channels = append(channels, FormatNumber(float64(a)/255))
	return "rgba(" + strings.Join(channels, ",") + ")", true
}

// ExpandNamedColors rewrites CSS color keywords as rgb().
func ExpandNamedColors(s string) string {
	return wordRegex.ReplaceAllStringFunc(s, func(word string) string {
		rgba, ok := colornames.Map[strings.ToLower(word)]
		if !ok {
			return word
		}
		c, _ := colorful.MakeColor(rgba)
		r, g, b := c.RGB255()
		return "rgb(" + strconv.Itoa(int(r)) + "," + strconv.Itoa(int(g)) + "," + strconv.Itoa(int(b)) + ")"
	})
}
