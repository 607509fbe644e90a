// ABOUTME: Multipart form builder for record updates and document uploads
// ABOUTME: Keeps field order stable and streams attached files as file parts
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Form is an ordered multipart/form-data body.
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name, value string
}

type formFile struct {
	field    string
	filename string
	open     func() (io.ReadCloser, error)
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{}
}

// Field appends a text part.
func (f *Form) Field(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// File appends a file part read from path when the form is encoded.
func (f *Form) File(field, path string) *Form {
	f.files = append(f.files, formFile{
		field:    field,
		filename: filepath.Base(path),
		open:     func() (io.ReadCloser, error) { return os.Open(path) },
	})
	return f
}

// Reader appends a file part with in-memory content.
func (f *Form) Reader(field, filename string, r io.Reader) *Form {
	f.files = append(f.files, formFile{
		field:    field,
		filename: filename,
		open:     func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
	})
	return f
}

// Names lists the text field names in order.
func (f *Form) Names() []string {
	names := make([]string, len(f.fields))
	for i, field := range f.fields {
		names[i] = field.name
	}
	return names
}

// Value returns the first text value for name.
func (f *Form) Value(name string) (string, bool) {
	for _, field := range f.fields {
		if field.name == name {
			return field.value, true
		}
	}
	return "", false
}

// Encode renders the form and returns its body and content type.
func (f *Form) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", field.name, err)
		}
	}
	for _, file := range f.files {
		if err := writeFile(w, file); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, file formFile) error {
	src, err := file.open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file.filename, err)
	}
	defer func() { _ = src.Close() }()

	part, err := w.CreateFormFile(file.field, file.filename)
	if err != nil {
		return fmt.Errorf("failed to create part %s: %w", file.field, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("failed to copy %s: %w", file.filename, err)
	}
	return nil
}

// UploadedFile is one entry from the upload response.
type UploadedFile struct {
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
}

type uploadResponse struct {
	Files map[string]UploadedFile `json:"files"`
}

// Upload sends a document to POST /upload under the field name key and
// returns the stored file with its URL resolved against fileBase.
func (c *Client) Upload(ctx context.Context, key, filename string, content io.Reader, fileBase string) (UploadedFile, error) {
	form := NewForm().Reader(key, filename, content)
	body, contentType, err := form.Encode()
	if err != nil {
		return UploadedFile{}, err
	}

	var resp uploadResponse
	if err := c.do(ctx, http.MethodPost, "/upload", body, contentType, &resp); err != nil {
		return UploadedFile{}, err
	}

	file, ok := resp.Files[key]
	if !ok || file.FileURL == "" {
		return UploadedFile{}, fmt.Errorf("upload response has no entry for %q", key)
	}
	file.FileURL = ResolveFileURL(fileBase, file.FileURL)
	if file.FileName == "" {
		file.FileName = filename
	}
	return file, nil
}

// ResolveFileURL makes a relative upload URL absolute against base.
func ResolveFileURL(base, fileURL string) string {
	if strings.HasPrefix(fileURL, "http://") || strings.HasPrefix(fileURL, "https://") {
		return fileURL
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(fileURL, "/")
}

// FileBase derives the public file root from an API root by dropping a trailing /api.
func FileBase(apiBase string) string {
	return strings.TrimSuffix(strings.TrimRight(apiBase, "/"), "/api")
}
