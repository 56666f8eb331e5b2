package export

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	sanitizeOnce   sync.Once
	sanitizePolicy *bluemonday.Policy
)

func policy() *bluemonday.Policy {
	sanitizeOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		// Section containers carry their kind as a class
		p.AllowAttrs("class").Globally()
		sanitizePolicy = p
	})
	return sanitizePolicy
}

// Sanitize removes scripts, event handlers and other active content from
// rendered markup while keeping the section structure intact.
func Sanitize(markup string) string {
	return policy().Sanitize(markup)
}
