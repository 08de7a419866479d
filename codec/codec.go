// Package codec splits property values into numbers that can be
// interpolated and a template that puts them back together.
package codec

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	numRegex  = regexp.MustCompile(`[\-+]?[0-9]*\.?[0-9]+`)
	rgbaRegex = regexp.MustCompile(`(?i)(rgba?)\(\s*([\-+]?[0-9]*\.?[0-9]+)\s*,\s*([\-+]?[0-9]*\.?[0-9]+)\s*,\s*([\-+]?[0-9]*\.?[0-9]+)\s*(,\s*([\-+]?[0-9]*\.?[0-9]+)\s*)?\)`)
)

// Value is a parsed property value. Template is nil for plain numbers;
// otherwise it holds len(Numbers)+1 fragments that surround the numbers.
type Value struct {
	Numbers  []float64
	Template []string
}

// Recombine rebuilds the value with different numbers in the same shape.
func (v Value) Recombine(numbers []float64) interface{} {
	return Recombine(numbers, v.Template)
}

// Codec parses property values.
type Codec struct {
	// NamedColors converts CSS color keywords such as "red" into rgb()
	// before numbers are extracted.
	NamedColors bool
}

var std Codec

// Parse decodes raw with the default Codec.
func Parse(raw interface{}) (Value, bool) {
	return std.Parse(raw)
}

// Parse decodes raw into numbers and a template. Numeric kinds give a
// single number with no template. Strings have hex colors normalized to
// rgb()/rgba() and every embedded number extracted. The second result is
// false when nothing in raw can be animated.
func (c Codec) Parse(raw interface{}) (Value, bool) {
	switch v := raw.(type) {
	case float64:
		return Value{Numbers: []float64{v}}, true
	case float32:
		return Value{Numbers: []float64{float64(v)}}, true
	case int:
		return Value{Numbers: []float64{float64(v)}}, true
	case int64:
		return Value{Numbers: []float64{float64(v)}}, true
	case int32:
		return Value{Numbers: []float64{float64(v)}}, true
	case uint:
		return Value{Numbers: []float64{float64(v)}}, true
	case uint64:
		return Value{Numbers: []float64{float64(v)}}, true
	case uint32:
		return Value{Numbers: []float64{float64(v)}}, true
	case string:
		return c.parseString(v)
	}
	return Value{}, false
}

func (c Codec) parseString(s string) (Value, bool) {
	s = ExpandHexColors(s)
	if c.NamedColors {
		s = ExpandNamedColors(s)
	}

	matches := numRegex.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return Value{}, false
	}

	v := Value{
		Numbers:  make([]float64, 0, len(matches)),
		Template: make([]string, 0, len(matches)+1),
	}
	last := 0
	for _, m := range matches {
		n, err := strconv.ParseFloat(s[m[0]:m[1]], 64)
		if err != nil {
			return Value{}, false
		}
		v.Template = append(v.Template, s[last:m[0]])
		v.Numbers = append(v.Numbers, n)
		last = m[1]
	}
	v.Template = append(v.Template, s[last:])

	return v, true
}

// Recombine interleaves template fragments with numbers. Color channels
// inside rgb()/rgba() are rounded to integers; alpha is left as is.
// Without a template the first number is returned as a float64.
func Recombine(numbers []float64, template []string) interface{} {
	if template == nil {
		if len(numbers) == 0 {
			return nil
		}
		return numbers[0]
	}

	var b strings.Builder
	for i, n := range numbers {
		if i < len(template) {
			b.WriteString(template[i])
		}
		b.WriteString(FormatNumber(n))
	}
	if len(numbers) < len(template) {
		b.WriteString(template[len(numbers)])
	}

	return rgbaRegex.ReplaceAllStringFunc(b.String(), roundChannels)
}

// FormatNumber prints n in the shortest form that parses back exactly.
func FormatNumber(n float64) string {
	if n == 0 {
		return "0"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func roundChannels(match string) string {
	m := rgbaRegex.FindStringSubmatch(match)
	channels := make([]string, 0, 4)
	for _, c := range m[2:5] {
		f, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return match
		}
		channels = append(channels, FormatNumber(math.Floor(f+0.5)))
	}
	if m[5] != "" {
		channels = append(channels, m[6])
	}
	return m[1] + "(" + strings.Join(channels, ",") + ")"
}
