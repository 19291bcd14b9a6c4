package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/Rakhulsr/go-storefront/app/utils/apperr"
	"github.com/Rakhulsr/go-storefront/app/utils/blobstore"
)

const multipartMemory = 32 << 20

// formBody is a parsed request body: plain fields plus any uploaded files.
type formBody struct {
	values url.Values
	files  map[string][]*multipart.FileHeader
}

func (f *formBody) get(key string) string {
	return f.values.Get(key)
}

// readForm accepts multipart, urlencoded or JSON object bodies up to maxBytes.
func readForm(w http.ResponseWriter, r *http.Request, maxBytes int64) (*formBody, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, bodyError(err)
		}
		return &formBody{values: url.Values(r.MultipartForm.Value), files: r.MultipartForm.File}, nil
	case "application/json":
		values, err := decodeJSONFields(r.Body)
		if err != nil {
			return nil, err
		}
		return &formBody{values: values}, nil
	default:
		if err := r.ParseForm(); err != nil {
			return nil, bodyError(err)
		}
		return &formBody{values: r.PostForm}, nil
	}
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperr.Validation("request body too large")
	}
	return apperr.Validation("invalid request body")
}

// decodeJSONFields flattens a JSON object into form values; nested values keep their JSON text.
func decodeJSONFields(body io.Reader) (url.Values, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, bodyError(err)
	}

	values := url.Values{}
	for key, msg := range raw {
		var text string
		if err := json.Unmarshal(msg, &text); err == nil {
			values.Set(key, text)
			continue
		}
		if string(msg) == "null" {
			continue
		}
		values.Set(key, strings.TrimSpace(string(msg)))
	}
	return values, nil
}

// uploads reads every file part named field into memory.
func (f *formBody) uploads(field string) ([]blobstore.Upload, error) {
	headers := f.files[field]
	uploads := make([]blobstore.Upload, 0, len(headers))
	for _, header := range headers {
		up, err := readUpload(header)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, up)
	}
	return uploads, nil
}

func readUpload(header *multipart.FileHeader) (blobstore.Upload, error) {
	file, err := header.Open()
	if err != nil {
		return blobstore.Upload{}, apperr.Validation(fmt.Sprintf("could not read %s", header.Filename))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return blobstore.Upload{}, apperr.Validation(fmt.Sprintf("could not read %s", header.Filename))
	}
	return blobstore.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
