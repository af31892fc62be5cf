package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"luxestandard/internal/domain"
)

// PlaceholderToken marks the outbound-link insertion point the model is
// instructed to emit instead of real markup.
const PlaceholderToken = "[AFFILIATE_LINK]"

const systemPrompt = `You are a senior editor at a prestigious luxury lifestyle publication —
think Robb Report meets Monocle meets GQ Luxury. You write with authoritative confidence,
subtle wit, and genuine connoisseurship. Your prose is elegant, never salesy.
You celebrate craft, heritage, and considered consumption.
IMPORTANT: Always respond with ONLY valid JSON — no markdown, no preamble, no explanation.`

// BuildPrompt returns the (system, user) instruction pair for one link and
// article type. Pure data transformation; deterministic for equal inputs.
// The raw affiliate URL never appears in either instruction.
func BuildPrompt(link domain.AffiliateLink, articleType domain.ArticleType) (system, user string) {
	switch articleType {
	case domain.TypeComparison:
		return systemPrompt, buildComparisonPrompt(link)
	case domain.TypeLifestyle:
		return systemPrompt, buildLifestylePrompt(link)
	case domain.TypeGuide:
		return systemPrompt, buildGuidePrompt(link)
	case domain.TypeSpotlight:
		return systemPrompt, buildSpotlightPrompt(link)
	}
	return systemPrompt, buildSpotlightPrompt(link)
}

func buildSpotlightPrompt(link domain.AffiliateLink) string {
	return fmt.Sprintf(`Write a luxury editorial spotlight article for this product.

Product: %s
Brand: %s
Price: %s
Description: %s
Keywords: %s

Return this exact JSON structure (no markdown, just raw JSON):
{
  "title": "A compelling, elegant headline (50-70 chars). Can be a statement or evocative phrase.",
  "subtitle": "A refined one-sentence subheadline that expands on the title (80-120 chars).",
  "excerpt": "A 2-sentence preview for article cards and social sharing.",
  "body_html": "Full HTML article body. Include: opening paragraph with strong hook, 2-3 body sections with H2 headings, a 'The Verdict' conclusion section. Use <h2>, <p>, <ul>, <li>, <strong>, <em> tags. Minimum 600 words. Weave in the affiliate link naturally as [AFFILIATE_LINK] placeholder. Never be salesy — be editorial.",
  "seo_title": "SEO-optimized title including brand and product name (55-60 chars)",
  "seo_description": "Meta description (150-160 chars) — informative, not clickbait",
  "seo_keywords": ["keyword1", "keyword2", "keyword3", "keyword4", "keyword5"]
}`, link.ProductName, link.Brand, link.PriceDisplay, link.ProductDescription, tagList(link.Tags))
}

func buildComparisonPrompt(link domain.AffiliateLink) string {
	return fmt.Sprintf(`Write a luxury editorial comparison article featuring this product against its category peers.

Product: %s
Brand: %s
Price: %s
Description: %s

Return this exact JSON structure:
{
  "title": "A comparison headline (e.g. 'The Contenders: ...' or 'Four Watches, One Winner')",
  "subtitle": "A subheadline setting up the comparison narrative",
  "excerpt": "2-sentence preview explaining what's being compared and why it matters",
  "body_html": "Full HTML comparison article. Include: intro paragraph on the category, brief mentions of 2-3 alternatives (use generic names like 'The German Rival' or 'The Swiss Contender'), deep dive on the featured product with [AFFILIATE_LINK] placeholder, verdict section. Use <h2>, <p>, <table> where appropriate. Minimum 700 words. Tone: informed, fair, authoritative.",
  "seo_title": "Comparison SEO title with 'vs' or 'review' keyword",
  "seo_description": "Meta description for comparison article",
  "seo_keywords": ["keyword1", "keyword2", "keyword3", "keyword4", "keyword5"]
}`, link.ProductName, link.Brand, link.PriceDisplay, link.ProductDescription)
}

func buildLifestylePrompt(link domain.AffiliateLink) string {
	return fmt.Sprintf(`Write a luxury lifestyle integration article — show how this product fits into an aspirational life, not just what it is.

Product: %s
Brand: %s
Price: %s
Description: %s

Return this exact JSON structure:
{
  "title": "A lifestyle-oriented, aspirational headline (e.g. 'The Morning Ritual of...' or 'Why the Serious Traveller...')",
  "subtitle": "A lifestyle subheadline that paints a picture",
  "excerpt": "2-sentence lifestyle-focused preview",
  "body_html": "Full HTML lifestyle article. Paint a vivid scene. Show the product in context of an aspirational life — morning routines, business travel, weekend escapes. Include product details but through the lens of lived experience. Use [AFFILIATE_LINK] placeholder naturally. Include at least one pull-quote wrapped in <blockquote>. Minimum 600 words.",
  "seo_title": "Lifestyle-angle SEO title",
  "seo_description": "Lifestyle-focused meta description",
  "seo_keywords": ["keyword1", "keyword2", "keyword3", "keyword4", "keyword5"]
}`, link.ProductName, link.Brand, link.PriceDisplay, link.ProductDescription)
}

func buildGuidePrompt(link domain.AffiliateLink) string {
	return fmt.Sprintf(`Write a luxury buyer's guide article that teaches the reader how to choose well in this product's category, anchored on this product.

Product: %s
Brand: %s
Price: %s
Description: %s
Keywords: %s

Return this exact JSON structure (no markdown, just raw JSON):
{
  "title": "A guide headline (e.g. 'How to Choose...' or 'The Considered Buyer's Guide to...')",
  "subtitle": "A subheadline promising practical connoisseurship",
  "excerpt": "A 2-sentence preview of what the guide covers.",
  "body_html": "Full HTML guide. Include: what to look for in the category, common missteps, and a recommendation section featuring the product with [AFFILIATE_LINK] placeholder. Use <h2>, <p>, <ul>, <li> tags. Minimum 600 words. Educational, never salesy.",
  "seo_title": "Guide SEO title including the category",
  "seo_description": "Meta description for the buyer's guide",
  "seo_keywords": ["keyword1", "keyword2", "keyword3", "keyword4", "keyword5"]
}`, link.ProductName, link.Brand, link.PriceDisplay, link.ProductDescription, tagList(link.Tags))
}

// tagList renders the serialized tag array as comma-separated keywords.
func tagList(serialized string) string {
	if serialized == "" {
		return ""
	}
	var tags []string
	if err := json.Unmarshal([]byte(serialized), &tags); err != nil {
		return ""
	}
	return strings.Join(tags, ", ")
}
