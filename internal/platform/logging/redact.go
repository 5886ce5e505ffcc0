package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// apiKeyInlinePattern catches keys embedded in free text, e.g. request bodies
// logged on failure.
var apiKeyInlinePattern = regexp.MustCompile(`(?i)"?(gemini_|perplexity_)?api[_\-]?key"?\s*[:=]\s*\S+`)

func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	return masq.New(
		masq.WithFieldName("authorization"),
		masq.WithFieldName("token"),
		masq.WithFieldName("secret"),

		masq.WithFieldPrefix("api_key"),
		masq.WithFieldPrefix("gemini_api_key"),
		masq.WithFieldPrefix("perplexity_api_key"),

		masq.WithRegex(apiKeyInlinePattern),
	)
}
