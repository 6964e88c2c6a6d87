package analyzer

import (
	"bytes"
	"log/slog"
	nurl "net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"github.com/rankscore-ai/rankscore/models"
)

// extractContent profiles the page's main content with the Mozilla
// Readability algorithm. The profile is informational (reports, LLM summary
// context) and never affects the score, so every failure degrades to a zero
// profile rather than an error.
func extractContent(body []byte, sourceURL string) models.ContentFacts {
	parsedURL, err := nurl.Parse(sourceURL)
	if err != nil {
		slog.Warn("content: invalid source URL, skipping profile",
			"url", sourceURL, "error", err,
		)
		return models.ContentFacts{}
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
	if err != nil {
		slog.Warn("content: readability extraction failed, skipping profile",
			"url", sourceURL, "error", err,
		)
		return models.ContentFacts{}
	}

	return models.ContentFacts{
		WordCount: len(strings.Fields(article.TextContent)),
		Excerpt:   strings.TrimSpace(article.Excerpt),
		SiteName:  article.SiteName,
		Language:  article.Language,
	}
}
