package generator

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"luxestandard/internal/domain"
)

// readingSpeed is the fixed words-per-minute constant for read-time estimates.
const readingSpeed = 238

const slugMaxLen = 80

var (
	nonSlugChars   = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	hyphenRuns     = regexp.MustCompile(`-+`)
	markupTags     = regexp.MustCompile(`<[^>]*>`)
)

// ReplacePlaceholder substitutes every occurrence of the placeholder token
// with an anchor to the tracked redirect path. A body without the token is
// returned unchanged; the pipeline never forces an insertion.
func ReplacePlaceholder(body string, link domain.AffiliateLink) string {
	anchor := fmt.Sprintf(`<a href="%s" class="affiliate-cta" rel="nofollow sponsored" target="_blank">%s</a>`,
		domain.TrackedPath(link.ID), html.EscapeString(link.ProductName))
	return strings.ReplaceAll(body, PlaceholderToken, anchor)
}

// Slugify derives the URL-safe stem of a slug from a title.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = whitespaceRuns.ReplaceAllString(slug, "-")
	slug = hyphenRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > slugMaxLen {
		slug = slug[:slugMaxLen]
	}
	return slug
}

// UniqueSlug appends a base-36 millisecond timestamp to the slug stem.
// Uniqueness is probabilistic; generation throughput is far below one per
// millisecond, so there is no collision retry.
func UniqueSlug(title string, now time.Time) string {
	return Slugify(title) + "-" + strconv.FormatInt(now.UnixMilli(), 36)
}

// CountWords strips markup from the body and counts non-empty whitespace
// separated tokens. Text nodes are counted individually so words in
// adjacent elements never merge.
func CountWords(bodyHTML string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(bodyHTML))
	if err != nil {
		return len(strings.Fields(markupTags.ReplaceAllString(bodyHTML, " ")))
	}

	words := 0
	doc.Find("*").Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "#text" {
			words += len(strings.Fields(s.Text()))
		}
	})
	return words
}

// ReadTime converts a word count to whole minutes, rounding up.
func ReadTime(wordCount int) int {
	if wordCount <= 0 {
		return 0
	}
	return (wordCount + readingSpeed - 1) / readingSpeed
}
