package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/unlinked-app/unlinked/model"
	"github.com/unlinked-app/unlinked/server/handlers"
	"github.com/unlinked-app/unlinked/server/middlewares"
	"gorm.io/gorm"
)

// NewRouter builds the full route table. Session protected routes receive
// the authenticated user as an explicit handler argument, there is no
// user state smuggled through the request context.
func NewRouter(db *gorm.DB, h *handlers.Handler, middleware ...gin.HandlerFunc) *gin.Engine {
	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(middleware...)

	authed := func(f func(c *gin.Context, user *model.User)) gin.HandlerFunc {
		return middlewares.RequireSession(db, f)
	}

	auth := router.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", authed(h.GetCurrentUser))
	}

	users := router.Group("/users")
	{
		users.GET("/suggestions", authed(h.GetSuggestedConnections))
		users.GET("/:username", authed(h.GetPublicProfile))
		users.PUT("/profile", authed(h.UpdateProfile))
	}

	connections := router.Group("/connections")
	{
		connections.POST("/request/:userId", authed(h.SendConnectionRequest))
		connections.PUT("/accept/:requestId", authed(h.AcceptConnectionRequest))
		connections.PUT("/reject/:requestId", authed(h.RejectConnectionRequest))
		connections.GET("/requests", authed(h.GetConnectionRequests))
		connections.GET("", authed(h.GetConnections))
		connections.GET("/user/:userId", authed(h.GetUserConnections))
		connections.DELETE("/:userId", authed(h.RemoveConnection))
		connections.GET("/status/:userId", authed(h.GetConnectionStatus))
	}

	posts := router.Group("/posts")
	{
		posts.GET("", authed(h.GetFeedPosts))
		posts.POST("", authed(h.CreatePost))
		posts.POST("/read", authed(h.MarkPostsAsRead))
		posts.GET("/:id", authed(h.GetPostById))
		posts.DELETE("/:id", authed(h.DeletePost))
		posts.POST("/:id/comment", authed(h.CreateComment))
	}

	notifications := router.Group("/notifications")
	{
		notifications.GET("", authed(h.GetUserNotifications))
		notifications.PUT("/:id/read", authed(h.MarkNotificationAsRead))
		notifications.DELETE("/:id", authed(h.DeleteNotification))
	}

	return router
}
