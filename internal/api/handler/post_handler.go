package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"studio_cms/internal/app/service"
	"studio_cms/internal/common"
	"studio_cms/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPublicRoutes exposes published posts only.
func (h *PostHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/", h.listPublishedPosts)
	r.Get("/{postSlug}", h.getPublishedPost)
}

// RegisterAdminRoutes exposes the full CRUD surface, drafts included.
// Auth middleware is applied by the router group these are mounted in.
func (h *PostHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/", h.listPosts)
	r.Post("/", h.createPost)
	r.Get("/{postID}", h.getPost)
	r.Put("/{postID}", h.updatePost)
	r.Delete("/{postID}", h.deletePost)
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type paginatedPostsResponse struct {
	Success    bool         `json:"success"`
	Posts      []model.Post `json:"posts"`
	Pagination pagination   `json:"pagination"`
}

func parsePaging(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func pagesFor(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

func (h *PostHandler) listPublishedPosts(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePaging(r)

	posts, total, err := h.postService.ListPublishedPosts(r.Context(), page, limit)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, paginatedPostsResponse{
		Success: true,
		Posts:   posts,
		Pagination: pagination{
			Page: page, Limit: limit, Total: total, Pages: pagesFor(total, limit),
		},
	})
}

func (h *PostHandler) getPublishedPost(w http.ResponseWriter, r *http.Request) {
	postSlug := chi.URLParam(r, "postSlug")

	post, err := h.postService.GetPublishedPost(r.Context(), postSlug)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "post": post})
}

func (h *PostHandler) listPosts(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePaging(r)
	status := r.URL.Query().Get("status")

	posts, total, err := h.postService.ListPosts(r.Context(), status, page, limit)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, paginatedPostsResponse{
		Success: true,
		Posts:   posts,
		Pagination: pagination{
			Page: page, Limit: limit, Total: total, Pages: pagesFor(total, limit),
		},
	})
}

func (h *PostHandler) createPost(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	post, err := h.postService.CreatePost(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "post": post})
}

func (h *PostHandler) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.postService.GetPost(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "post": post})
}

func (h *PostHandler) updatePost(w http.ResponseWriter, r *http.Request) {
	var req service.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	post, err := h.postService.UpdatePost(r.Context(), chi.URLParam(r, "postID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "post": post})
}

func (h *PostHandler) deletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.postService.DeletePost(r.Context(), chi.URLParam(r, "postID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
