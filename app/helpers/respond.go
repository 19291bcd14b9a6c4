package helpers

import (
	"net/http"

	"github.com/unrolled/render"

	"github.com/Rakhulsr/go-storefront/app/utils/apperr"
)

type ErrorResponse struct {
	Error   string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RespondError writes {error, details?} with the status matching the error kind.
func RespondError(rnd *render.Render, w http.ResponseWriter, err error) {
	appErr := apperr.From(err)
	rnd.JSON(w, appErr.HTTPStatus(), ErrorResponse{Error: appErr.Message, Details: appErr.Details})
}
