package markup

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// SanitizeLabel strips everything from raw except a small set of inline
// formatting elements.
func SanitizeLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(labelSanitizer().Sanitize(trimmed))
}

func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		elements := []string{"b", "strong", "i", "em", "abbr", "span", "small"}
		policy.AllowElements(elements...)
		policy.AllowAttrs("class", "title").OnElements(elements...)
		labelPolicy = policy
	})
	return labelPolicy
}
