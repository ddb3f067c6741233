package user

import (
	"github.com/gin-gonic/gin"
	"github.com/raducarabat/hackcontrol/internal/global/jwt"
	"github.com/raducarabat/hackcontrol/internal/global/middleware"
)

func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	// 用户模块路由组，所有端点以 /user 为前缀
	userGroup := r.Group("/user")

	userGroup.POST("/register", Register)
	userGroup.POST("/login", Login)

	userGroup.Use(middleware.Auth(jwt.RoleUser))
	{
		userGroup.POST("/logout", Logout)
		userGroup.GET("/me", Me)
		// 邀请评委时的用户搜索
		userGroup.GET("/search", Search)
	}

	adminGroup := r.Group("/user", middleware.Auth(jwt.RoleAdmin))
	{
		// 提升用户为组织者
		adminGroup.POST("/promote", Promote)
	}
}
