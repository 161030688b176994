package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) PostLike(c *gin.Context) {
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

	liked, count, err := a.Engagement.ToggleLike(userID, postID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked":       liked,
		"likes_count": count,
	})
}
