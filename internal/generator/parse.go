package generator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"luxestandard/internal/domain"
)

var (
	fenceOpen  = regexp.MustCompile("(?i)^```[a-z]*[ \t]*\r?\n?")
	fenceClose = regexp.MustCompile("\r?\n?[ \t]*```$")
)

// ParsePayload converts the raw model response into a validated payload or
// fails closed with domain.ErrGenerationInvalid. The single tolerated
// formatting deviation is a surrounding markdown code fence; no other
// repair of malformed output is attempted.
func ParsePayload(raw string) (*domain.GeneratedPayload, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = fenceOpen.ReplaceAllString(cleaned, "")
	cleaned = fenceClose.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	var payload domain.GeneratedPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("%w: parse JSON: %v", domain.ErrGenerationInvalid, err)
	}

	if err := validatePayload(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationInvalid, err)
	}

	return &payload, nil
}

// validatePayload requires every field except subtitle to be non-empty.
func validatePayload(p *domain.GeneratedPayload) error {
	required := map[string]string{
		"title":           p.Title,
		"excerpt":         p.Excerpt,
		"body_html":       p.BodyHTML,
		"seo_title":       p.SEOTitle,
		"seo_description": p.SEODescription,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("missing required field %q", field)
		}
	}
	if len(p.SEOKeywords) == 0 {
		return fmt.Errorf("missing required field %q", "seo_keywords")
	}
	return nil
}
