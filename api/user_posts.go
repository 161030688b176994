package api

import (
	"github.com/gin-gonic/gin"
)

func (a *API) UserPosts(c *gin.Context) {
	viewerID := c.MustGet("userID").(string)

	posts, err := a.Posts.ListByUser(c.Param("id"), viewerID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	a.renderPosts(c, posts, viewerID)
}
