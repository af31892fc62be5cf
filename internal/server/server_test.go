package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"luxestandard/internal/config"
	"luxestandard/internal/domain"
	"luxestandard/internal/logging"
	"luxestandard/internal/usecase"
)

type stubLinks struct{}

func (stubLinks) Create(ctx context.Context, link *domain.AffiliateLink) error {
	link.ID = 1
	return nil
}

func (stubLinks) GetByID(ctx context.Context, id int64) (*domain.AffiliateLink, error) {
	if id != 42 {
		return nil, domain.ErrNotFound
	}
	return &domain.AffiliateLink{ID: 42, AffiliateURL: "https://partner.example/track?offer=9911"}, nil
}

func (stubLinks) List(ctx context.Context, categoryID int64) ([]domain.LinkOverview, error) {
	return nil, nil
}

func (stubLinks) Update(ctx context.Context, id int64, patch domain.LinkPatch) (*domain.AffiliateLink, error) {
	return nil, domain.ErrNotFound
}

func (stubLinks) Delete(ctx context.Context, id int64) error { return nil }

func (stubLinks) WithoutPublishedArticle(ctx context.Context, limit int) ([]domain.AffiliateLink, error) {
	return nil, nil
}

type stubArticles struct{}

func (stubArticles) CommitGenerated(ctx context.Context, article *domain.Article) (int64, error) {
	return 1, nil
}

func (stubArticles) List(ctx context.Context, filter domain.ArticleFilter) ([]domain.ArticleCard, int, error) {
	return []domain.ArticleCard{}, 0, nil
}

func (stubArticles) GetBySlug(ctx context.Context, slug string) (*domain.ArticleDetail, error) {
	return nil, domain.ErrNotFound
}

func (stubArticles) Related(ctx context.Context, categoryID int64, excludeSlug string, limit int) ([]domain.ArticleCard, error) {
	return nil, nil
}

func (stubArticles) Featured(ctx context.Context, limit int) ([]domain.ArticleCard, error) {
	return nil, nil
}

func (stubArticles) Search(ctx context.Context, query string, limit int) ([]domain.ArticleCard, error) {
	return nil, nil
}

func (stubArticles) SetStatus(ctx context.Context, id int64, status domain.ArticleStatus) (*domain.ArticleRef, error) {
	return nil, domain.ErrNotFound
}

func (stubArticles) Delete(ctx context.Context, id int64) error { return nil }

func (stubArticles) SitemapEntries(ctx context.Context, limit int) ([]domain.SitemapEntry, error) {
	return []domain.SitemapEntry{{Slug: "a-1", UpdatedAt: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)}}, nil
}

func (stubArticles) Stats(ctx context.Context) (*domain.Stats, error) {
	return &domain.Stats{}, nil
}

type stubCategories struct{}

func (stubCategories) List(ctx context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: 7, Name: "Watches", Slug: "watches"}}, nil
}

func (stubCategories) ListWithCounts(ctx context.Context) ([]domain.CategoryCount, error) {
	return []domain.CategoryCount{}, nil
}

type stubCache struct{}

func (stubCache) Get(ctx context.Context, key string) (string, bool, error) { return "", false, nil }
func (stubCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return nil
}
func (stubCache) Delete(ctx context.Context, keys ...string) error { return nil }

type stubChat struct{}

func (stubChat) Complete(ctx context.Context, system, user string) (string, error) {
	return "", nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.Config{
		Server: config.ServerConfig{Addr: ":0"},
		Site: config.SiteConfig{
			Name:        "LUXE STANDARD",
			URL:         "https://luxestandard.example",
			AdminSecret: "s3cret",
		},
	}
	log := logging.New("error")

	reader := usecase.NewReader(usecase.ReaderDeps{
		Articles:   stubArticles{},
		Categories: stubCategories{},
		Links:      stubLinks{},
		Cache:      stubCache{},
		Logger:     log,
	})
	catalog := usecase.NewCatalog(usecase.CatalogDeps{
		Links:    stubLinks{},
		Articles: stubArticles{},
		Cache:    stubCache{},
		Logger:   log,
	})
	generator := usecase.NewGenerator(usecase.GeneratorDeps{
		Links:    stubLinks{},
		Articles: stubArticles{},
		Chat:     stubChat{},
		Cache:    stubCache{},
		SiteName: cfg.Site.Name,
		SiteURL:  cfg.Site.URL,
		Logger:   log,
	})

	return New(cfg, reader, catalog, generator, log)
}

func TestAdminRequiresSecret(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	cases := []struct {
		name   string
		secret string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong secret", "guess", http.StatusUnauthorized},
		{"exact match", "s3cret", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		if tc.secret != "" {
			req.Header.Set("X-Admin-Secret", tc.secret)
		}
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		if rec.Code != tc.want {
			t.Fatalf("%s: status = %d, want %d", tc.name, rec.Code, tc.want)
		}
	}
}

func TestAdminDisabledWithoutConfiguredSecret(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	srv.site.AdminSecret = ""

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("X-Admin-Secret", "")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestPublicEndpointsNeedNoSecret(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	for _, path := range []string{"/api/health", "/api/articles", "/api/categories", "/api/featured"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: status = %d, want 200", path, rec.Code)
		}
	}
}

func TestRedirectIssues302(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/go/42", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "https://partner.example/track?offer=9911" {
		t.Fatalf("Location = %q", loc)
	}
}

func TestRedirectUnknownLink404(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/go/99", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "not found" {
		t.Fatalf("public error body leaked detail: %v", body)
	}
}

func TestMissingArticleIsGeneric404(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/articles/unknown-slug", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestBatchRejectsOversizedBeforeGeneration(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	body := `{"link_ids":[1,2,3,4,5,6,7,8,9,10,11],"article_type":"spotlight"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/generate/batch", strings.NewReader(body))
	req.Header.Set("X-Admin-Secret", "s3cret")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSitemapListsPublishedArticles(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<loc>https://luxestandard.example/articles/a-1</loc>") {
		t.Fatalf("sitemap missing article entry:\n%s", body)
	}
	if !strings.Contains(body, "<loc>https://luxestandard.example/category/watches</loc>") {
		t.Fatalf("sitemap missing category entry:\n%s", body)
	}
}

func TestRobots(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/robots.txt", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Disallow: /go/") || !strings.Contains(body, "Sitemap: https://luxestandard.example/sitemap.xml") {
		t.Fatalf("unexpected robots body:\n%s", body)
	}
}
