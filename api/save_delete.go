package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) SaveDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	postID, ok := paramUint(c, "postID")
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid post ID",
			"requestID": requestID,
		})
		return
	}

	if err := a.Engagement.UnsavePost(userID, postID); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
