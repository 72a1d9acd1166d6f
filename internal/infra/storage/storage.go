package storage

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"courseware-app/config"

	"github.com/google/uuid"
)

// Media areas, namespaced per entity type. The resulting paths are a
// deployment convention beneath MEDIA_ROOT, not a protocol.
const (
	CourseCovers  = "courses/covers"
	ProcessCovers = "courses/processes/covers"
	ActionCovers  = "courses/actions/covers"
	ActionPhotos  = "courses/actions/photos"
	ActionVideos  = "courses/actions/videos"
)

// SaveUpload persists one uploaded file into the given media area and
// returns its MEDIA_ROOT-relative path. The file is read fully into memory
// before being written; uploads here are form-sized, not streamed.
func SaveUpload(area string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(fh.Filename))
	rel := filepath.Join(area, name)
	dst := filepath.Join(config.MEDIA_ROOT, rel)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", err
	}
	return rel, nil
}

// Remove deletes stored files by their MEDIA_ROOT-relative paths.
// Best effort: a missing file is not an error worth failing a delete for.
func Remove(paths ...string) {
	for _, rel := range paths {
		if rel == "" {
			continue
		}
		if err := os.Remove(filepath.Join(config.MEDIA_ROOT, rel)); err != nil && !os.IsNotExist(err) {
			log.Println("failed to remove media file:", rel, err)
		}
	}
}
