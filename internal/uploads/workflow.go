// Package uploads runs the staged-images-to-storage pipeline: clear
// old cover flags, upload each file, then bulk-insert metadata rows.
package uploads

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"casa-certa-portal/internal/apperr"
	"casa-certa-portal/internal/models"
	"casa-certa-portal/internal/staging"
)

// MaxImageBytes is the per-file upload ceiling.
const MaxImageBytes = 6 << 20 // 6 MiB

// ObjectUploader is the slice of the object store the workflow needs.
type ObjectUploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte) error
	PublicURL(key string) string
}

// ImageStore is the slice of the database the workflow needs.
type ImageStore interface {
	ClearCoverFlags(propertyID string) error
	InsertImages(images []models.PropertyImage) error
}

// Workflow uploads staged images for a property and persists their
// metadata. It keeps no state between runs.
type Workflow struct {
	objects ObjectUploader
	images  ImageStore
	now     func() time.Time
}

// NewWorkflow wires the workflow to its stores.
func NewWorkflow(objects ObjectUploader, images ImageStore) *Workflow {
	return &Workflow{objects: objects, images: images, now: time.Now}
}

// Run executes the pipeline for an already-persisted property. Steps
// run strictly in order and the first failure aborts the remainder.
// A failure mid-batch can leave uploaded objects without metadata
// rows; the janitor sweeps those, there is no rollback here.
//
// When coverIndex does not address a staged image, the first image
// becomes the cover so the property never ends up coverless.
func (w *Workflow) Run(ctx context.Context, propertyID string, staged []staging.StagedImage, coverIndex int) error {
	if len(staged) == 0 {
		return nil
	}

	if err := w.images.ClearCoverFlags(propertyID); err != nil {
		return apperr.Remote(err.Error(), err)
	}

	if coverIndex < 0 || coverIndex >= len(staged) {
		coverIndex = 0
	}

	batchStamp := w.now().UnixMilli()
	rows := make([]models.PropertyImage, 0, len(staged))

	for i, img := range staged {
		if img.Size > MaxImageBytes {
			return apperr.Validation(fmt.Sprintf("image %s is too large, the limit is 6MB", img.Name))
		}

		key := fmt.Sprintf("%s/%d-%d.%s", propertyID, batchStamp, i, extension(img.Name))
		if err := w.objects.Upload(ctx, key, img.ContentType, img.Data); err != nil {
			return apperr.Remote(err.Error(), err)
		}

		rows = append(rows, models.PropertyImage{
			PropertyID: propertyID,
			URL:        w.objects.PublicURL(key),
			IsCover:    i == coverIndex,
		})
	}

	if err := w.images.InsertImages(rows); err != nil {
		return apperr.Remote(err.Error(), err)
	}
	return nil
}

// extension extracts a lowercase filename extension, defaulting to jpg.
func extension(name string) string {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ext == "" {
		return "jpg"
	}
	return strings.ToLower(ext)
}
