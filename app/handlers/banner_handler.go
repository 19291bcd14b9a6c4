package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/services"
	"github.com/Rakhulsr/go-storefront/app/utils/apperr"
)

type BannerHandler struct {
	svc    *services.BannerService
	render *render.Render
}

func NewBannerHandler(svc *services.BannerService, r *render.Render) *BannerHandler {
	return &BannerHandler{svc: svc, render: r}
}

func (h *BannerHandler) List(w http.ResponseWriter, r *http.Request) {
	banners, err := h.svc.List(r.Context(), r.URL.Query().Get("enabled") == "true")
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, banners)
}

func (h *BannerHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(mux.Vars(r)["id"])
	if !ok {
		helpers.RespondError(h.render, w, apperr.NotFound("Banner not found"))
		return
	}
	banner, err := h.svc.Get(r.Context(), id)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, banner)
}

func (h *BannerHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, err := decodeBanner(w, r)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	banner, err := h.svc.Create(r.Context(), input)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusCreated, banner)
}

func (h *BannerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(mux.Vars(r)["id"])
	if !ok {
		helpers.RespondError(h.render, w, apperr.NotFound("Banner not found"))
		return
	}
	input, err := decodeBanner(w, r)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	banner, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, banner)
}

func (h *BannerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(mux.Vars(r)["id"])
	if !ok {
		helpers.RespondError(h.render, w, apperr.NotFound("Banner not found"))
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"message": "Banner deleted successfully"})
}

func decodeBanner(w http.ResponseWriter, r *http.Request) (services.BannerInput, error) {
	var input services.BannerInput
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return input, bodyError(err)
	}
	return input, nil
}
