package api

import (
	"net/http"

	"snapgram/social-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) UserUpdate(c *gin.Context) {
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

	var in service.ProfileUpdate

	if v, ok := c.GetPostForm("name"); ok {
		in.Name = &v
	}
	if v, ok := c.GetPostForm("bio"); ok {
		in.Bio = &v
	}
	if v, ok := c.GetPostForm("location"); ok {
		in.Location = &v
	}

	// JSON body when no file is involved
	if image == nil && c.ContentType() == "application/json" {
		var body struct {
			Name     *string `json:"name"`
			Bio      *string `json:"bio"`
			Location *string `json:"location"`
		}

		if err := c.ShouldBindJSON(&body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid request body",
				"requestID": requestID,
			})
			return
		}

		in = service.ProfileUpdate(body)
	}

	user, err := a.Accounts.Update(c.Request.Context(), userID, in, image)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, service.RenderUser(user, userID, a.Store))
}
