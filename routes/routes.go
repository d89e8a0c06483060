package routes

import (
	"net/http"

	"blogapi/controllers"
	"blogapi/handlers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	postController *controllers.PostController,
	w *handlers.WebSocketHandler,
	authRequired gin.HandlerFunc,
) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authController.Signup)
			auth.POST("/signin", authController.Signin)
			auth.POST("/signout", authController.Signout)
		}

		users := api.Group("/user")
		{
			users.GET("/getusers", authRequired, userController.GetUsers)
			users.GET("/:userID", userController.GetUser)
			users.PUT("/update/:userID", authRequired, userController.UpdateUser)
			users.DELETE("/delete/:userID", authRequired, userController.DeleteUser)
		}

		posts := api.Group("/post")
		{
			posts.POST("/create", authRequired, postController.CreatePost)
			posts.GET("/getposts", postController.GetPosts)
			posts.DELETE("/delete/:postID/:userID", authRequired, postController.DeletePost)
			posts.PUT("/update/:postID/:userID", authRequired, postController.UpdatePost)
			posts.GET("/ws", w.HandleWebSocket)
		}
	}
}
