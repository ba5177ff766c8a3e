package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/sachin24864/RealEstate-Website/internal/usecase"
)

const (
	maxJSONBodySize    = 1 << 20
	maxMultipartMemory = 8 << 20
	// Room for the maximum number of images plus the text fields.
	maxMultipartBody = usecase.MaxPropertyImages*usecase.MaxImageSize + 1<<20
	sniffLen         = 512
)

// parseMultipart bounds the body and parses the form. Parse failures are
// client errors.
func parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBody)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return usecase.NewValidationError("Request body too large")
		}
		return usecase.NewValidationError("Invalid multipart form")
	}
	return nil
}

// formFiles converts the uploaded parts of field into use-case uploads. The
// content type is sniffed from the bytes, not taken from the client.
func formFiles(r *http.Request, field string) ([]usecase.UploadFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	files := make([]usecase.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := toUploadFile(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// formFile returns the single upload of field, or nil when none was sent.
func formFile(r *http.Request, field string) (*usecase.UploadFile, error) {
	files, err := formFiles(r, field)
	if err != nil || len(files) == 0 {
		return nil, err
	}
	return &files[0], nil
}

func toUploadFile(fh *multipart.FileHeader) (usecase.UploadFile, error) {
	contentType, err := sniffContentType(fh)
	if err != nil {
		return usecase.UploadFile{}, err
	}
	return usecase.UploadFile{
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}, nil
}

func sniffContentType(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", usecase.NewValidationError("Could not read uploaded file %q", fh.Filename)
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", usecase.NewValidationError("Could not read uploaded file %q", fh.Filename)
	}
	return http.DetectContentType(buf[:n]), nil
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// formFloat parses an optional numeric form field; absent fields yield nil.
func formFloat(r *http.Request, key string) (*float64, error) {
	raw := formValue(r, key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, usecase.NewValidationError("Invalid number for %s", key)
	}
	return &v, nil
}

func formInt(r *http.Request, key string) (int, error) {
	raw := formValue(r, key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, usecase.NewValidationError("Invalid number for %s", key)
	}
	return v, nil
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}
