package api

import (
	"net/http"
	"strconv"

	"snapgram/social-api/internal/service"

	"github.com/gin-gonic/gin"
)

func (a *API) UserList(c *gin.Context) {
	viewerID := c.MustGet("userID").(string)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	users, err := a.Accounts.List(limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	views := make([]service.UserView, 0, len(users))
	for i := range users {
		views = append(views, service.RenderUser(&users[i], viewerID, a.Store))
	}

	c.JSON(http.StatusOK, views)
}
