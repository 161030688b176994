package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) CommentPin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	commentID, ok := paramUint(c, "id")
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid comment ID",
			"requestID": requestID,
		})
		return
	}

	pinned, err := a.Engagement.PinComment(commentID, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pinned": pinned,
	})
}
