package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/services"
	"github.com/Rakhulsr/go-storefront/app/utils/blobstore"
)

const maxSettingsBody = (2 << 20) + (1 << 20)

type SettingsHandler struct {
	svc    *services.SettingsService
	render *render.Render
}

func NewSettingsHandler(svc *services.SettingsService, r *render.Render) *SettingsHandler {
	return &SettingsHandler{svc: svc, render: r}
}

func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetAll(r.Context())
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Show(w http.ResponseWriter, r *http.Request) {
	setting, err := h.svc.Get(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"key":   setting.Key,
		"value": setting.Value,
	})
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	form, err := readForm(w, r, maxSettingsBody)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}

	values := make(map[string]*string, len(form.values))
	for key := range form.values {
		value := form.get(key)
		values[key] = &value
	}

	logos, err := form.uploads("logo")
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	var logo *blobstore.Upload
	if len(logos) > 0 {
		if err := blobstore.LogoPolicy.Check(logos); err != nil {
			helpers.RespondError(h.render, w, err)
			return
		}
		logo = &logos[0]
	}

	if err := h.svc.Upsert(r.Context(), values, logo); err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"message": "Settings updated successfully"})
}
