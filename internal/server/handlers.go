package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"luxestandard/internal/domain"
	"luxestandard/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writePublicError hides internals from the public surface: anything that is
// not a not-found becomes a generic 500.
func (s *Server) writePublicError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	s.log.Error("request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func queryInt(r *http.Request, name string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return value
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	filter := domain.ArticleFilter{
		CategorySlug: r.URL.Query().Get("category"),
		ArticleType:  r.URL.Query().Get("type"),
		Page:         queryInt(r, "page"),
		Limit:        queryInt(r, "limit"),
	}

	page, err := s.reader.ListArticles(r.Context(), filter)
	if err != nil {
		s.writePublicError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	detail, err := s.reader.GetArticle(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.writePublicError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.reader.Categories(r.Context())
	if err != nil {
		s.writePublicError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) handleFeatured(w http.ResponseWriter, r *http.Request) {
	articles, err := s.reader.Featured(r.Context())
	if err != nil {
		s.writePublicError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": articles})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	results, err := s.reader.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writePublicError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// handleRedirect answers with the 302 first and records the click in the
// background, so affiliate latency never delays the visitor.
func (s *Server) handleRedirect(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	target, err := s.reader.ResolveRedirect(r.Context(), id)
	if err != nil {
		s.writePublicError(w, r, err)
		return
	}

	http.Redirect(w, r, target, http.StatusFound)

	go s.reader.TrackClick(context.WithoutCancel(r.Context()), id, time.Now())
}

type createLinkRequest struct {
	ProductName        string   `json:"product_name"`
	ProductDescription string   `json:"product_description"`
	Brand              string   `json:"brand"`
	PriceUSD           *float64 `json:"price_usd"`
	PriceDisplay       string   `json:"price_display"`
	AffiliateURL       string   `json:"affiliate_url"`
	Network            string   `json:"network"`
	CategoryID         int64    `json:"category_id"`
	Tags               string   `json:"tags"`
	IsFeatured         bool     `json:"is_featured"`
}

func (s *Server) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	var req createLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	link := &domain.AffiliateLink{
		ProductName:        req.ProductName,
		ProductDescription: req.ProductDescription,
		Brand:              req.Brand,
		PriceUSD:           req.PriceUSD,
		PriceDisplay:       req.PriceDisplay,
		AffiliateURL:       req.AffiliateURL,
		Network:            req.Network,
		CategoryID:         req.CategoryID,
		Tags:               req.Tags,
		IsFeatured:         req.IsFeatured,
	}

	if err := s.catalog.CreateLink(r.Context(), link); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

func (s *Server) handleListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := s.catalog.ListLinks(r.Context(), int64(queryInt(r, "category_id")))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"links": links})
}

func (s *Server) handleUpdateLink(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid link id")
		return
	}

	var patch domain.LinkPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	link, err := s.catalog.UpdateLink(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "link not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, link)
}

func (s *Server) handleDeleteLink(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid link id")
		return
	}

	if err := s.catalog.DeleteLink(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

type generateRequest struct {
	LinkID      int64  `json:"link_id"`
	ArticleType string `json:"article_type"`
	AutoPublish bool   `json:"auto_publish"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	articleType, err := domain.ParseArticleType(req.ArticleType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ref, err := s.generator.Generate(r.Context(), usecase.GenerateRequest{
		LinkID:      req.LinkID,
		Type:        articleType,
		AutoPublish: req.AutoPublish,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "affiliate link not found")
		case errors.Is(err, domain.ErrGenerationInvalid):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusBadGateway, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, ref)
}

type generateBatchRequest struct {
	LinkIDs     []int64 `json:"link_ids"`
	ArticleType string  `json:"article_type"`
	AutoPublish bool    `json:"auto_publish"`
}

func (s *Server) handleGenerateBatch(w http.ResponseWriter, r *http.Request) {
	var req generateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.LinkIDs) == 0 {
		writeError(w, http.StatusBadRequest, "link_ids is required")
		return
	}

	articleType, err := domain.ParseArticleType(req.ArticleType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.generator.GenerateBatch(r.Context(), req.LinkIDs, articleType, req.AutoPublish)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	s.handleSetStatus(w, r, s.catalog.PublishArticle)
}

func (s *Server) handleUnpublish(w http.ResponseWriter, r *http.Request) {
	s.handleSetStatus(w, r, s.catalog.UnpublishArticle)
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request, change func(context.Context, int64) (*domain.ArticleRef, error)) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	ref, err := change(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "article not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ref)
}

func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	if err := s.catalog.DeleteArticle(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.catalog.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
