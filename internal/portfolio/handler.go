package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/trn-gabru/lafabrica/internal/cache"
	"github.com/trn-gabru/lafabrica/internal/httpx"
	"github.com/trn-gabru/lafabrica/internal/middleware"
	"github.com/trn-gabru/lafabrica/internal/transport"
	"github.com/trn-gabru/lafabrica/internal/validation"
)

const listCacheKey = "portfolio:all"

func slugCacheKey(slug string) string {
	return "portfolio:slug:" + slug
}

type Handler struct {
	service  *Service
	val      *validation.Validator
	log      *slog.Logger
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger, c cache.Cache, cacheTTL time.Duration) *Handler {
	return &Handler{
		service:  service,
		val:      val,
		log:      log,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	if cached, ok, err := h.cache.Get(r.Context(), listCacheKey); err == nil && ok {
		log.Info("portfolio list: cache hit")
		writeCachedJSON(w, http.StatusOK, cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.service.List(ctx)
	if err != nil {
		log.Error("portfolio list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	response := map[string]interface{}{"items": items}
	if payload, err := json.Marshal(response); err == nil {
		_ = h.cache.Set(r.Context(), listCacheKey, payload, h.cacheTTL)
	}

	log.Info("portfolio list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, response)
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		log.Warn("portfolio get: missing slug")
		transport.WriteError(w, http.StatusBadRequest, "missing slug", nil)
		return
	}

	if cached, ok, err := h.cache.Get(r.Context(), slugCacheKey(slug)); err == nil && ok {
		log.Info("portfolio get: cache hit", slog.String("slug", slug))
		writeCachedJSON(w, http.StatusOK, cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("portfolio get: not found", slog.String("slug", slug))
			transport.WriteError(w, http.StatusNotFound, "portfolio item not found", nil)
			return
		}
		log.Error("portfolio get: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	response := map[string]interface{}{"item": item}
	if payload, err := json.Marshal(response); err == nil {
		_ = h.cache.Set(r.Context(), slugCacheKey(slug), payload, h.cacheTTL)
	}

	log.Info("portfolio get: ok", slog.String("slug", slug))
	transport.WriteJSON(w, http.StatusOK, response)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("portfolio create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("portfolio create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, req)
	if err != nil {
		if errors.Is(err, ErrSlugExists) {
			log.Warn("portfolio create: slug exists", slog.String("slug", req.Slug))
			transport.WriteError(w, http.StatusConflict, "slug already exists", nil)
			return
		}
		if errors.Is(err, ErrInvalidSlug) {
			transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"slug": "invalid"})
			return
		}
		log.Error("portfolio create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	h.invalidate(r.Context(), item.Slug)
	log.Info("portfolio create: ok", slog.String("item_id", item.ID), slog.String("slug", item.Slug))
	transport.WriteJSON(w, http.StatusCreated, map[string]interface{}{"item": item})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		log.Warn("portfolio update: missing slug")
		transport.WriteError(w, http.StatusBadRequest, "missing slug", nil)
		return
	}

	var req UpdateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("portfolio update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("portfolio update: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Update(ctx, slug, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("portfolio update: not found", slog.String("slug", slug))
			transport.WriteError(w, http.StatusNotFound, "portfolio item not found", nil)
			return
		}
		log.Error("portfolio update: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	h.invalidate(r.Context(), slug)
	log.Info("portfolio update: ok", slog.String("slug", slug))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"item": item})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		log.Warn("portfolio delete: missing slug")
		transport.WriteError(w, http.StatusBadRequest, "missing slug", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, slug); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("portfolio delete: not found", slog.String("slug", slug))
			transport.WriteError(w, http.StatusNotFound, "portfolio item not found", nil)
			return
		}
		log.Error("portfolio delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	h.invalidate(r.Context(), slug)
	log.Info("portfolio delete: ok", slog.String("slug", slug))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"message": "portfolio item deleted"})
}

func (h *Handler) AddImage(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		log.Warn("portfolio add image: missing slug")
		transport.WriteError(w, http.StatusBadRequest, "missing slug", nil)
		return
	}

	var req AddImageRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("portfolio add image: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("portfolio add image: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.AddImage(ctx, slug, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("portfolio add image: not found", slog.String("slug", slug))
			transport.WriteError(w, http.StatusNotFound, "portfolio item not found", nil)
			return
		}
		log.Error("portfolio add image: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	h.invalidate(r.Context(), slug)
	log.Info("portfolio add image: ok", slog.String("slug", slug), slog.Int("images", len(item.Images)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"item": item})
}

func (h *Handler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		log.Warn("portfolio remove image: missing slug")
		transport.WriteError(w, http.StatusBadRequest, "missing slug", nil)
		return
	}

	imageID := strings.TrimSpace(r.URL.Query().Get("imageId"))
	if imageID == "" {
		log.Warn("portfolio remove image: missing image id", slog.String("slug", slug))
		transport.WriteError(w, http.StatusBadRequest, "missing imageId", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.RemoveImage(ctx, slug, imageID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("portfolio remove image: not found", slog.String("slug", slug))
			transport.WriteError(w, http.StatusNotFound, "portfolio item not found", nil)
			return
		}
		log.Error("portfolio remove image: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	h.invalidate(r.Context(), slug)
	log.Info("portfolio remove image: ok", slog.String("slug", slug), slog.String("image_id", imageID))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"item": item})
}

func (h *Handler) invalidate(ctx context.Context, slug string) {
	_ = h.cache.Delete(ctx, listCacheKey, slugCacheKey(slug))
}

func writeCachedJSON(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
