package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/metrics"
	"github.com/joestump/bookmarks-api/internal/sanitize"
	"github.com/joestump/bookmarks-api/internal/store"
)

const maxBodyBytes = 1 << 20

// bookmarksAPIHandler provides REST handlers for bookmark management.
type bookmarksAPIHandler struct {
	bookmarks          store.BookmarkService
	log                logger.Logger
	apiRoot            string
	requireDescription bool
}

// registerBookmarkRoutes registers the bookmark collection and resource routes on r.
func registerBookmarkRoutes(r chi.Router, h *bookmarksAPIHandler) {
	r.Get("/bookmarks", h.List)
	r.Post("/bookmarks", h.Create)
	r.Get("/bookmarks/{id}", h.Get)
	r.Patch("/bookmarks/{id}", h.Update)
	r.Delete("/bookmarks/{id}", h.Delete)
}

// List returns every bookmark.
//
// @Summary      List bookmarks
// @Tags         Bookmarks
// @Produce      json
// @Success      200  {array}   BookmarkResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks [get]
func (h *bookmarksAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := h.bookmarks.List(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := make([]BookmarkResponse, 0, len(bookmarks))
	for _, b := range bookmarks {
		resp = append(resp, toBookmarkResponse(b))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create validates and stores a new bookmark.
//
// @Summary      Create a bookmark
// @Tags         Bookmarks
// @Accept       json
// @Produce      json
// @Param        body  body      CreateBookmarkRequest  true  "Bookmark to create"
// @Success      201   {object}  BookmarkResponse
// @Header       201   {string}  Location  "Path of the new bookmark"
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks [post]
func (h *bookmarksAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookmarkRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	nb, err := validateCreate(req, h.requireDescription)
	if err != nil {
		h.log.Warn("rejected bookmark", logger.Error(err), logger.String("rating", req.Rating.Raw()))
		respondError(w, r, h.log, err)
		return
	}

	b, err := h.bookmarks.Insert(r.Context(), nb)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	metrics.BookmarksTotal.Inc()
	h.log.Info("bookmark created", logger.String("id", b.ID))
	w.Header().Set("Location", h.apiRoot+"/bookmarks/"+b.ID)
	writeJSON(w, http.StatusCreated, toBookmarkResponse(b))
}

// Get returns a single bookmark by ID.
//
// @Summary      Get a bookmark
// @Tags         Bookmarks
// @Produce      json
// @Param        id   path      string  true  "Bookmark ID"
// @Success      200  {object}  BookmarkResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks/{id} [get]
func (h *bookmarksAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookmarks.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookmarkResponse(b))
}

// Update merges the supplied fields into an existing bookmark.
//
// @Summary      Update a bookmark
// @Description  Only the fields present in the body are changed.
// @Tags         Bookmarks
// @Accept       json
// @Param        id    path  string                true  "Bookmark ID"
// @Param        body  body  PatchBookmarkRequest  true  "Fields to change"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks/{id} [patch]
func (h *bookmarksAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	// An unknown id is a 404 whatever the body holds.
	if _, err := h.bookmarks.GetByID(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	var req PatchBookmarkRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	patch, err := validatePatch(req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	if err := h.bookmarks.Update(r.Context(), id, patch); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	h.log.Info("bookmark updated", logger.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a bookmark.
//
// @Summary      Delete a bookmark
// @Tags         Bookmarks
// @Param        id   path  string  true  "Bookmark ID"
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks/{id} [delete]
func (h *bookmarksAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.bookmarks.Delete(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	metrics.BookmarksTotal.Dec()
	h.log.Info("bookmark deleted", logger.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}

// decodeBody reads a JSON object into v. An empty body decodes as {}.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return invalid(msgInvalidJSON)
}

// toBookmarkResponse sanitizes the free-text fields on the way out. The stored
// record is left as the client wrote it.
func toBookmarkResponse(b *store.Bookmark) BookmarkResponse {
	return BookmarkResponse{
		ID:          b.ID,
		Title:       sanitize.HTML(b.Title),
		URL:         b.URL,
		Description: sanitize.HTML(b.Description),
		Rating:      b.Rating,
	}
}
