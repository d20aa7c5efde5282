package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/popaya/grocery-api/controllers"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
}
