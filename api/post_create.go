package api

import (
	"net/http"

	"snapgram/social-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func postInputFromForm(c *gin.Context) service.PostInput {
	var in service.PostInput

	if v, ok := c.GetPostForm("caption"); ok {
		in.Caption = &v
	}
	if v, ok := c.GetPostForm("location"); ok {
		in.Location = &v
	}
	if v, ok := c.GetPostForm("tags"); ok {
		in.Tags = &v
	}
	if v, ok := c.GetPostForm("private"); ok {
		private := v == "true" || v == "1"
		in.Private = &private
	}

	return in
}

func (a *API) PostCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	image, closeImage, err := formImage(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid multipart form",
			"requestID": requestID,
		})

		zap.L().Debug("Failed to read multipart form", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer closeImage()

	post, err := a.Posts.Create(c.Request.Context(), userID, postInputFromForm(c), image)
	if err != nil {
		abortWithError(c, err)
		return
	}

	// Reload with the owner preloaded for the response
	full, err := a.Posts.Get(post.ID, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, service.RenderPost(full, userID, nil, a.Store))
}
