package api

import (
	"net/http"

	"snapgram/social-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) PostUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	postID, ok := paramUint(c, "id")
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid post ID",
			"requestID": requestID,
		})
		return
	}

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

	in := postInputFromForm(c)

	if image == nil && c.ContentType() == "application/json" {
		var body struct {
			Caption  *string `json:"caption"`
			Location *string `json:"location"`
			Tags     *string `json:"tags"`
			Private  *bool   `json:"private"`
		}

		if err := c.ShouldBindJSON(&body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid request body",
				"requestID": requestID,
			})
			return
		}

		in = service.PostInput(body)
	}

	if _, err := a.Posts.Update(c.Request.Context(), postID, userID, in, image); err != nil {
		abortWithError(c, err)
		return
	}

	full, err := a.Posts.Get(postID, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, service.RenderPost(full, userID, nil, a.Store))
}
