// ABOUTME: Document upload from a local file into a form's file field
// ABOUTME: Wraps the form upload with file opening and naming
package entities

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harperreed/freightdesk/controller"
	"github.com/harperreed/freightdesk/models"
)

// UploadDocument uploads the file at path and stores its URL in field key
// of the form's draft and its base name in key_name.
func UploadDocument[T models.Record](ctx context.Context, f *controller.Form[T], key, path string) (controller.Outcome, error) {
	file, err := os.Open(path)
	if err != nil {
		return controller.OutcomeFailed, fmt.Errorf("failed to open document: %w", err)
	}
	defer file.Close()

	return f.Upload(ctx, key, filepath.Base(path), file), nil
}
