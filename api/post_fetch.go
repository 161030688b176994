package api

import (
	"net/http"

	"snapgram/social-api/internal/service"

	"github.com/gin-gonic/gin"
)

func (a *API) PostFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	viewerID := c.MustGet("userID").(string)

	postID, ok := paramUint(c, "id")
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid post ID",
			"requestID": requestID,
		})
		return
	}

	post, err := a.Posts.Get(postID, viewerID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	savedIDs, err := service.SavedPostIDs(a.DB, viewerID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, service.RenderPost(post, viewerID, savedIDs, a.Store))
}
