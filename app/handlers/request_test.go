package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rakhulsr/go-storefront/app/utils/apperr"
)

func TestReadFormJSON(t *testing.T) {
	body := `{"name":"Shirt","price":100,"deleted_images":[1,"2"],"discount_price":null}`
	req := httptest.NewRequest(http.MethodPut, "/api/products/1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	form, err := readForm(httptest.NewRecorder(), req, 1<<20)
	require.NoError(t, err)
	assert.Equal(t, "Shirt", form.get("name"))
	assert.Equal(t, "100", form.get("price"))
	assert.Equal(t, `[1,"2"]`, form.get("deleted_images"))
	assert.Equal(t, "", form.get("discount_price"))
}

func TestReadFormURLEncoded(t *testing.T) {
	values := url.Values{"username": {"web"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	form, err := readForm(httptest.NewRecorder(), req, 1<<10)
	require.NoError(t, err)
	assert.Equal(t, "web", form.get("username"))
	uploads, err := form.uploads("images")
	require.NoError(t, err)
	assert.Empty(t, uploads)
}

func TestReadFormRejectsBadBodies(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	_, err := readForm(httptest.NewRecorder(), req, 1<<10)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("x", 64)+`"}`))
	req.Header.Set("Content-Type", "application/json")
	_, err = readForm(httptest.NewRecorder(), req, 16)
	require.Error(t, err)
	assert.Equal(t, "request body too large", apperr.From(err).Message)
}
