package api

import (
	"net/http"

	"snapgram/social-api/internal/service"

	"github.com/gin-gonic/gin"
)

type commentBody struct {
	Content string `json:"content"`
}

func (a *API) CommentCreate(c *gin.Context) {
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

	var data commentBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	comment, err := a.Engagement.CreateComment(postID, userID, data.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}

	user, err := a.Accounts.Get(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	comment.User = *user

	c.JSON(http.StatusCreated, service.RenderComment(comment, userID, a.Store))
}
