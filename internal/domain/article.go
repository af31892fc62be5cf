package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound signals a missing link, article, or category.
var ErrNotFound = errors.New("not found")

// ErrGenerationInvalid marks model output that failed parsing or validation.
// Persistence never runs on a request carrying this error.
var ErrGenerationInvalid = errors.New("invalid generation output")

// ArticleType is a closed enumeration selecting the prompt template and the
// minimum body word count enforced on generated output.
type ArticleType string

const (
	TypeSpotlight  ArticleType = "spotlight"
	TypeComparison ArticleType = "comparison"
	TypeLifestyle  ArticleType = "lifestyle"
	TypeGuide      ArticleType = "guide"
)

// ParseArticleType maps a request string to a known type; empty defaults to spotlight.
func ParseArticleType(value string) (ArticleType, error) {
	switch ArticleType(value) {
	case TypeSpotlight, TypeComparison, TypeLifestyle, TypeGuide:
		return ArticleType(value), nil
	case "":
		return TypeSpotlight, nil
	}
	return "", fmt.Errorf("unknown article type %q", value)
}

// MinWordCount returns the per-type minimum body length in words.
func (t ArticleType) MinWordCount() int {
	switch t {
	case TypeComparison:
		return 700
	case TypeSpotlight, TypeLifestyle, TypeGuide:
		return 600
	}
	return 600
}

// TrackedPath returns the redirect path that records clicks for a link.
func TrackedPath(linkID int64) string {
	return fmt.Sprintf("/go/%d", linkID)
}

// ArticleStatus tracks the publication state of an article.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
)

// AffiliateLink is a tracked outbound product reference, read-only to the
// generation pipeline.
type AffiliateLink struct {
	ID                 int64    `json:"id"`
	ProductName        string   `json:"product_name"`
	ProductDescription string   `json:"product_description"`
	Brand              string   `json:"brand"`
	PriceUSD           *float64 `json:"price_usd,omitempty"`
	PriceDisplay       string   `json:"price_display"`
	AffiliateURL       string   `json:"affiliate_url"`
	Network            string   `json:"network"`
	CategoryID         int64    `json:"category_id"`
	// Tags is a serialized JSON array of free-text keywords.
	Tags       string    `json:"tags"`
	IsFeatured bool      `json:"is_featured"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LinkPatch carries optional field updates for an affiliate link; nil fields
// keep their stored value.
type LinkPatch struct {
	ProductName        *string  `json:"product_name"`
	ProductDescription *string  `json:"product_description"`
	PriceUSD           *float64 `json:"price_usd"`
	PriceDisplay       *string  `json:"price_display"`
	Brand              *string  `json:"brand"`
	AffiliateURL       *string  `json:"affiliate_url"`
	Tags               *string  `json:"tags"`
	IsFeatured         *bool    `json:"is_featured"`
}

// LinkOverview decorates a link with admin-listing extras.
type LinkOverview struct {
	AffiliateLink
	CategoryName string `json:"category_name"`
	ArticleCount int    `json:"article_count"`
}

// GeneratedPayload is the transient, validated shape of one model response.
// It never persists directly; the pipeline transforms it into an Article.
type GeneratedPayload struct {
	Title          string   `json:"title"`
	Subtitle       string   `json:"subtitle"`
	Excerpt        string   `json:"excerpt"`
	BodyHTML       string   `json:"body_html"`
	SEOTitle       string   `json:"seo_title"`
	SEODescription string   `json:"seo_description"`
	SEOKeywords    []string `json:"seo_keywords"`
}

// Article is the persisted editorial entity. Slug is globally unique and
// immutable once assigned.
type Article struct {
	ID              int64         `json:"id"`
	AffiliateLinkID int64         `json:"affiliate_link_id"`
	CategoryID      int64         `json:"category_id"`
	Slug            string        `json:"slug"`
	Title           string        `json:"title"`
	Subtitle        string        `json:"subtitle"`
	Excerpt         string        `json:"excerpt"`
	BodyHTML        string        `json:"body_html"`
	ArticleType     ArticleType   `json:"article_type"`
	SEOTitle        string        `json:"seo_title"`
	SEODescription  string        `json:"seo_description"`
	SEOKeywords     string        `json:"seo_keywords"`
	SchemaJSON      string        `json:"schema_json"`
	WordCount       int           `json:"word_count"`
	ReadTimeMinutes int           `json:"read_time_minutes"`
	Status          ArticleStatus `json:"status"`
	PublishedAt     *time.Time    `json:"published_at"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// ArticleRef is the slim result of publish/unpublish/generate operations.
type ArticleRef struct {
	ID     int64         `json:"id"`
	Slug   string        `json:"slug"`
	Title  string        `json:"title,omitempty"`
	Status ArticleStatus `json:"status,omitempty"`
}

// ArticleCard is the listing projection joined with category and product data.
type ArticleCard struct {
	ID              int64       `json:"id"`
	Slug            string      `json:"slug"`
	Title           string      `json:"title"`
	Subtitle        string      `json:"subtitle"`
	Excerpt         string      `json:"excerpt"`
	ArticleType     ArticleType `json:"article_type"`
	ReadTimeMinutes int         `json:"read_time_minutes"`
	PublishedAt     *time.Time  `json:"published_at"`
	CategoryName    string      `json:"category_name"`
	CategorySlug    string      `json:"category_slug"`
	ProductName     string      `json:"product_name"`
	Brand           string      `json:"brand"`
	PriceDisplay    string      `json:"price_display"`
	TrackedURL      string      `json:"tracked_url"`
}

// ArticleDetail is the single-article projection served on the read path.
type ArticleDetail struct {
	Article
	CategoryName string        `json:"category_name"`
	CategorySlug string        `json:"category_slug"`
	ProductName  string        `json:"product_name"`
	Brand        string        `json:"brand"`
	PriceDisplay string        `json:"price_display"`
	AffiliateURL string        `json:"affiliate_url"`
	TrackedURL   string        `json:"tracked_url"`
	Related      []ArticleCard `json:"related"`
}

// ArticleFilter parameterizes the public listing query; distinct shapes map
// to distinct cache keys.
type ArticleFilter struct {
	CategorySlug string
	ArticleType  string
	Page         int
	Limit        int
}

// Category groups articles and affiliate links.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryCount is a category plus its published article count.
type CategoryCount struct {
	Category
	ArticleCount int `json:"article_count"`
}

// SitemapEntry is the minimal projection rendered into sitemap.xml.
type SitemapEntry struct {
	Slug      string
	UpdatedAt time.Time
}

// Stats summarizes content inventory for the admin dashboard.
type Stats struct {
	Articles struct {
		Total     int `json:"total"`
		Published int `json:"published"`
		Drafts    int `json:"drafts"`
	} `json:"articles"`
	AffiliateLinks struct {
		Total int `json:"total"`
	} `json:"affiliate_links"`
	ByCategory []CategoryArticleCount `json:"by_category"`
	ByType     []TypeArticleCount     `json:"by_type"`
	Recent     []ArticleRef           `json:"recent_articles"`
}

// CategoryArticleCount is one row of the per-category stats breakdown.
type CategoryArticleCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TypeArticleCount is one row of the per-type stats breakdown.
type TypeArticleCount struct {
	ArticleType ArticleType `json:"article_type"`
	Count       int         `json:"count"`
}
