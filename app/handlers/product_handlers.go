package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/services"
	"github.com/Rakhulsr/go-storefront/app/utils/apperr"
)

// ten 5MB images plus form fields
const maxProductBody = 10*(5<<20) + (1 << 20)

type ProductHandler struct {
	svc    *services.ProductService
	render *render.Render
}

func NewProductHandler(svc *services.ProductService, r *render.Render) *ProductHandler {
	return &ProductHandler{svc: svc, render: r}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.List(r.Context())
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(mux.Vars(r)["id"])
	if !ok {
		helpers.RespondError(h.render, w, apperr.NotFound("Product not found"))
		return
	}

	product, err := h.svc.Get(r.Context(), id)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := readForm(w, r, maxProductBody)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	files, err := form.uploads("images")
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}

	id, err := h.svc.Create(r.Context(), productInput(form), files)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"id":      id,
		"message": "Product created successfully",
	})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(mux.Vars(r)["id"])
	if !ok {
		helpers.RespondError(h.render, w, apperr.NotFound("Product not found"))
		return
	}

	form, err := readForm(w, r, maxProductBody)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	deleted, err := services.ParseDeletedImages(form.get("deleted_images"))
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	files, err := form.uploads("images")
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}

	if err := h.svc.Update(r.Context(), id, productInput(form), files, deleted); err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"message": "Product updated successfully"})
}

func (h *ProductHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID, ok := helpers.ParseID(vars["id"])
	imageID, okImage := helpers.ParseID(vars["imageId"])
	if !ok || !okImage {
		helpers.RespondError(h.render, w, apperr.NotFound("Image not found"))
		return
	}

	if err := h.svc.DeleteImage(r.Context(), productID, imageID); err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"message": "Image deleted successfully"})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(mux.Vars(r)["id"])
	if !ok {
		helpers.RespondError(h.render, w, apperr.NotFound("Product not found"))
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

func productInput(form *formBody) services.ProductInput {
	return services.ProductInput{
		Name:               form.get("name"),
		NameAr:             form.get("name_ar"),
		Description:        form.get("description"),
		DescriptionAr:      form.get("description_ar"),
		Price:              form.get("price"),
		DiscountPrice:      form.get("discount_price"),
		DiscountPercentage: form.get("discount_percentage"),
	}
}
