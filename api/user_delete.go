package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

func (a *API) UserDelete(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	if err := a.Accounts.Delete(c.Request.Context(), userID); err != nil {
		abortWithError(c, err)
		return
	}

	ssl := viper.GetBool("host.ssl.enabled")
	c.SetCookie("auth_token", "", -1, "/", "", ssl, true)
	c.SetCookie("logged_in", "", -1, "/", "", ssl, false)

	c.Status(http.StatusOK)
}
