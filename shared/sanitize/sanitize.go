package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strictPolicy drops every tag. Used for names, titles and subjects.
	strictPolicy = bluemonday.StrictPolicy()

	// richPolicy keeps basic formatting for camp descriptions and message bodies
	// and forces rel="nofollow" on links.
	richPolicy = bluemonday.UGCPolicy().RequireNoFollowOnLinks(true)
)

func Text(input string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}

func HTML(input string) string {
	return strings.TrimSpace(richPolicy.Sanitize(input))
}

func TextSlice(inputs []string) []string {
	if inputs == nil {
		return nil
	}

	sanitized := make([]string, len(inputs))
	for i, input := range inputs {
		sanitized[i] = Text(input)
	}

	return sanitized
}
