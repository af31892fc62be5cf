package generator

import (
	"encoding/json"
	"fmt"
	"time"

	"luxestandard/internal/domain"
)

// BuildSchemaJSON synthesizes the schema.org Article JSON-LD document with
// an embedded Product offer. The result is stored verbatim on the article.
func BuildSchemaJSON(payload *domain.GeneratedPayload, link domain.AffiliateLink, slug, siteName, siteURL string, now time.Time) (string, error) {
	canonical := siteURL + "/articles/" + slug
	stamp := now.UTC().Format(time.RFC3339)

	doc := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Article",
		"headline":    payload.Title,
		"description": payload.Excerpt,
		"url":         canonical,
		"author": map[string]any{
			"@type": "Organization",
			"name":  siteName + " Editorial",
		},
		"publisher": map[string]any{
			"@type": "Organization",
			"name":  siteName,
			"logo": map[string]any{
				"@type": "ImageObject",
				"url":   siteURL + "/logo.png",
			},
		},
		"datePublished": stamp,
		"dateModified":  stamp,
		"mainEntityOfPage": map[string]any{
			"@type": "WebPage",
			"@id":   canonical,
		},
		"about": map[string]any{
			"@type": "Product",
			"name":  link.ProductName,
			"brand": map[string]any{
				"@type": "Brand",
				"name":  link.Brand,
			},
			"offers": map[string]any{
				"@type":         "Offer",
				"price":         link.PriceDisplay,
				"priceCurrency": "USD",
				"availability":  "https://schema.org/InStock",
				"url":           link.AffiliateURL,
			},
		},
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal schema document: %w", err)
	}
	return string(raw), nil
}
