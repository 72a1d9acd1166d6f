package courses

import (
	"mime/multipart"

	"courseware-app/internal/infra/storage"

	"github.com/gin-gonic/gin"
)

// optionalUpload stores a single uploaded file from the named field, if the
// submission carries one. An absent field is not an error.
func optionalUpload(c *gin.Context, field, area string) (*string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	rel, err := storage.SaveUpload(area, fh)
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// photoUploads returns every file submitted under "photos" (zero or more).
func photoUploads(c *gin.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["photos"]
}
