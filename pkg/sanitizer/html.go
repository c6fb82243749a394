// Package sanitizer cleans user-supplied HTML before it is placed in an email.
package sanitizer

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// CallToActionClass is the only class attribute value kept on links.
const CallToActionClass = "cta"

var (
	emailPolicy  *bluemonday.Policy
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		// UGC plus class="cta" on links.
		emailPolicy = bluemonday.UGCPolicy()
		emailPolicy.AllowAttrs("class").Matching(regexp.MustCompile(`^` + CallToActionClass + `$`)).OnElements("a")
	})
}

// EmailHTML strips scripts, event handlers, javascript: URLs and other
// unsafe markup while keeping formatting, links and images.
func EmailHTML(s string) string {
	initPolicies()
	return emailPolicy.Sanitize(s)
}

// StripHTML removes all markup and returns the text content.
func StripHTML(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}
