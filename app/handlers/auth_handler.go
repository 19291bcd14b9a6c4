package handlers

import (
	"net/http"

	"github.com/unrolled/render"

	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/middlewares"
	"github.com/Rakhulsr/go-storefront/app/services"
)

type AuthHandler struct {
	svc    *services.AuthService
	render *render.Render
}

func NewAuthHandler(svc *services.AuthService, r *render.Render) *AuthHandler {
	return &AuthHandler{svc: svc, render: r}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	form, err := readForm(w, r, 64<<10)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}

	result, err := h.svc.Login(r.Context(), form.get("username"), form.get("password"))
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, result)
}

// Verify always answers 200; validity is reported in the body.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := middlewares.BearerToken(r)
	if token == "" {
		h.render.JSON(w, http.StatusOK, map[string]interface{}{"valid": false, "error": "No token provided"})
		return
	}

	identity, err := h.svc.Authenticate(token)
	if err != nil {
		h.render.JSON(w, http.StatusOK, map[string]interface{}{"valid": false, "error": "Invalid or expired token"})
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]interface{}{"valid": true, "user": identity})
}
