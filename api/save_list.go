package api

import (
	"net/http"

	"snapgram/social-api/internal/service"

	"github.com/gin-gonic/gin"
)

func (a *API) SaveList(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	saved, err := a.Engagement.ListSaved(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	views := make([]service.SavedPostView, 0, len(saved))
	for i := range saved {
		views = append(views, service.SavedPostView{
			ID:        saved[i].ID,
			CreatedAt: saved[i].CreatedAt,
			Post:      service.RenderPost(&saved[i].Post, userID, map[uint]bool{saved[i].PostID: true}, a.Store),
		})
	}

	c.JSON(http.StatusOK, views)
}
