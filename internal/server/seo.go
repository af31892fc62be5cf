package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// handleSitemap renders the sitemap from published articles and category
// pages, with the site root first.
func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	entries, categories, err := s.reader.Sitemap(r.Context())
	if err != nil {
		s.writePublicError(w, r, err)
		return
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	writeURL := func(loc, lastmod, changefreq, priority string) {
		b.WriteString("  <url>\n")
		fmt.Fprintf(&b, "    <loc>%s</loc>\n", xmlEscape(loc))
		if lastmod != "" {
			fmt.Fprintf(&b, "    <lastmod>%s</lastmod>\n", lastmod)
		}
		fmt.Fprintf(&b, "    <changefreq>%s</changefreq>\n", changefreq)
		fmt.Fprintf(&b, "    <priority>%s</priority>\n", priority)
		b.WriteString("  </url>\n")
	}

	writeURL(s.site.URL, "", "daily", "1.0")
	for _, cat := range categories {
		writeURL(s.site.URL+"/category/"+cat.Slug, "", "daily", "0.8")
	}
	for _, entry := range entries {
		writeURL(s.site.URL+"/articles/"+entry.Slug, entry.UpdatedAt.UTC().Format("2006-01-02"), "weekly", "0.7")
	}

	b.WriteString("</urlset>\n")

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(b.String()))
}

// handleFeed renders an RSS 2.0 feed of the most recent published articles.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	articles, err := s.reader.Feed(r.Context())
	if err != nil {
		s.writePublicError(w, r, err)
		return
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rss version="2.0">` + "\n")
	b.WriteString("  <channel>\n")
	fmt.Fprintf(&b, "    <title>%s</title>\n", xmlEscape(s.site.Name))
	fmt.Fprintf(&b, "    <link>%s</link>\n", xmlEscape(s.site.URL))
	fmt.Fprintf(&b, "    <description>%s</description>\n",
		xmlEscape(s.site.Name+" curated luxury editorial"))
	fmt.Fprintf(&b, "    <lastBuildDate>%s</lastBuildDate>\n", time.Now().UTC().Format(time.RFC1123Z))

	for _, article := range articles {
		b.WriteString("    <item>\n")
		fmt.Fprintf(&b, "      <title><![CDATA[%s]]></title>\n", cdataEscape(article.Title))
		fmt.Fprintf(&b, "      <link>%s</link>\n", xmlEscape(s.site.URL+"/articles/"+article.Slug))
		fmt.Fprintf(&b, "      <guid>%s</guid>\n", xmlEscape(s.site.URL+"/articles/"+article.Slug))
		fmt.Fprintf(&b, "      <description><![CDATA[%s]]></description>\n", cdataEscape(article.Excerpt))
		if article.PublishedAt != nil {
			fmt.Fprintf(&b, "      <pubDate>%s</pubDate>\n", article.PublishedAt.UTC().Format(time.RFC1123Z))
		}
		fmt.Fprintf(&b, "      <category>%s</category>\n", xmlEscape(article.CategoryName))
		b.WriteString("    </item>\n")
	}

	b.WriteString("  </channel>\n")
	b.WriteString("</rss>\n")

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	_, _ = w.Write([]byte(b.String()))
}

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /api/admin/\nDisallow: /go/\n\nSitemap: %s/sitemap.xml\n",
		s.site.URL)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

func xmlEscape(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(value)
}

// cdataEscape keeps arbitrary text safe inside a CDATA section by breaking
// any literal terminator sequence.
func cdataEscape(value string) string {
	return strings.ReplaceAll(value, "]]>", "]]]]><![CDATA[>")
}
