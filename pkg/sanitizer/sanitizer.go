package sanitizer

import "strings"

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func lower(s string) string {
	return strings.ToLower(s)
}

// NormalizeLabel is for case-insensitive filter labels (model names as
// submitted to the fleet service).
func NormalizeLabel(input string) string {
	p := Pipeline{
		TrimAndNormalize,
		lower,
	}
	return p.Apply(input)
}
