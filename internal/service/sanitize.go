package service

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// contentPolicy strips all markup from free-text fields before persistence.
// Feed content is plain text; rendering is the client's concern.
var contentPolicy = bluemonday.StrictPolicy()

func sanitizeContent(s string) string {
	return strings.TrimSpace(contentPolicy.Sanitize(s))
}
