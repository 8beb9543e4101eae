package handler

import (
	"encoding/json"
	"net/http"

	"studio_cms/internal/app/service"
	"studio_cms/internal/common"

	"github.com/go-chi/chi/v5"
)

type GalleryHandler struct {
	galleryService *service.GalleryService
}

func NewGalleryHandler(galleryService *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService}
}

func (h *GalleryHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/albums", h.listAlbums)
	r.Get("/albums/{albumSlug}", h.getAlbumBySlug)
}

func (h *GalleryHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/albums", h.listAlbums)
	r.Post("/albums", h.createAlbum)
	r.Get("/albums/{albumID}", h.getAlbum)
	r.Put("/albums/{albumID}", h.updateAlbum)
	r.Delete("/albums/{albumID}", h.deleteAlbum)

	r.Get("/albums/{albumID}/images", h.listImages)
	r.Post("/albums/{albumID}/images", h.addImage)
	r.Put("/images/{imageID}", h.updateImage)
	r.Delete("/images/{imageID}", h.deleteImage)
}

func (h *GalleryHandler) listAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := h.galleryService.ListAlbums(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "albums": albums})
}

func (h *GalleryHandler) getAlbumBySlug(w http.ResponseWriter, r *http.Request) {
	detail, err := h.galleryService.GetAlbumBySlug(r.Context(), chi.URLParam(r, "albumSlug"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"album":   detail.Album,
		"images":  detail.Images,
	})
}

func (h *GalleryHandler) createAlbum(w http.ResponseWriter, r *http.Request) {
	var req service.CreateAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	album, err := h.galleryService.CreateAlbum(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "album": album})
}

func (h *GalleryHandler) getAlbum(w http.ResponseWriter, r *http.Request) {
	album, err := h.galleryService.GetAlbum(r.Context(), chi.URLParam(r, "albumID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "album": album})
}

func (h *GalleryHandler) updateAlbum(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	album, err := h.galleryService.UpdateAlbum(r.Context(), chi.URLParam(r, "albumID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "album": album})
}

func (h *GalleryHandler) deleteAlbum(w http.ResponseWriter, r *http.Request) {
	if err := h.galleryService.DeleteAlbum(r.Context(), chi.URLParam(r, "albumID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *GalleryHandler) listImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.galleryService.ListImages(r.Context(), chi.URLParam(r, "albumID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "images": images})
}

func (h *GalleryHandler) addImage(w http.ResponseWriter, r *http.Request) {
	var req service.AddImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	image, err := h.galleryService.AddImage(r.Context(), chi.URLParam(r, "albumID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "image": image})
}

func (h *GalleryHandler) updateImage(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	image, err := h.galleryService.UpdateImage(r.Context(), chi.URLParam(r, "imageID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "image": image})
}

func (h *GalleryHandler) deleteImage(w http.ResponseWriter, r *http.Request) {
	if err := h.galleryService.DeleteImage(r.Context(), chi.URLParam(r, "imageID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
