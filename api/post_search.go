package api

import (
	"github.com/gin-gonic/gin"
)

func (a *API) PostSearch(c *gin.Context) {
	viewerID := c.MustGet("userID").(string)

	posts, err := a.Query.Search(c.Query("q"), viewerID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	a.renderPosts(c, posts, viewerID)
}
