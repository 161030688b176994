package api

import (
	"mime/multipart"
	"strconv"
	"strings"

	"snapgram/social-api/internal/service"

	"github.com/gin-gonic/gin"
)

// formImage pulls the optional "image" file out of a multipart form.
// Returns nil without error when the request carries no image. The
// returned closer must be called after the upload finished.
func formImage(c *gin.Context) (*service.MediaUpload, func(), error) {
	if !strings.HasPrefix(c.Request.Header.Get("Content-Type"), "multipart/form-data") {
		return nil, func() {}, nil
	}

	fh, err := c.FormFile("image")
	if err != nil {
		if err == multipart.ErrMessageTooLarge {
			return nil, func() {}, err
		}

		// No image part in the form
		return nil, func() {}, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}

	return &service.MediaUpload{
		Name:        fh.Filename,
		Reader:      f,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
	}, func() { f.Close() }, nil
}

// paramUint parses a numeric path parameter.
func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}

	return uint(v), true
}
