// Package router builds the Gin route table for both surfaces.
package router

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tasktrack/internal/config"
	authhandler "tasktrack/internal/feature/auth/transport/handler"
	authmw "tasktrack/internal/feature/auth/transport/middleware"
	taskhandler "tasktrack/internal/feature/tasks/transport/handler"
	"tasktrack/internal/platform/http/handler"
	jwtmw "tasktrack/internal/platform/jwt"
)

// NewRouter wires every route of the web and API surfaces.
func NewRouter(
	cfg *config.Config,
	authH *authhandler.AuthHandler,
	tokenH *authhandler.TokenHandler,
	taskH *taskhandler.TaskHandler,
	apiTaskH *taskhandler.APITaskHandler,
	sessions authmw.SessionResolver,
) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.GET("/", authH.Home)
	r.GET("/register", authH.RegisterPage)
	r.POST("/register", authH.Register)
	r.GET("/login", authH.LoginPage)
	r.POST("/login", authH.Login)
	r.GET("/logout", authH.Logout)
	r.POST("/logout", authH.Logout)

	// 認証必須のルート
	// The session guard redirects anonymous requests to /login.
	auth := r.Group("/")
	auth.Use(authmw.SessionRequired(sessions))
	{
		auth.GET("/task", taskH.Home)
		auth.POST("/task", taskH.Home)
		auth.GET("/createtask", taskH.CreatePage)
		auth.POST("/createtask", taskH.Create)
		auth.GET("/view", taskH.View)
		auth.POST("/view", taskH.View)
		auth.GET("/update", taskH.UpdatePage)
		auth.POST("/update", taskH.Update)
		auth.GET("/delete", taskH.Delete)
		auth.POST("/delete", taskH.Delete)
	}

	// JSON API surface, bearer-token based
	api := r.Group("/api")
	api.Use(cors.New(corsConfig(cfg)))
	{
		api.POST("/signup", tokenH.Signup)
		api.POST("/login", tokenH.Login)

		tasks := api.Group("/tasks")
		tasks.Use(jwtmw.AuthRequired(cfg.JWTSecret))
		{
			tasks.GET("", apiTaskH.List)
			tasks.POST("", apiTaskH.Create)
			tasks.GET("/:id", apiTaskH.Get)
			tasks.PUT("/:id", apiTaskH.Update)
			tasks.DELETE("/:id", apiTaskH.Delete)
		}
	}

	return r
}

// corsConfig builds the CORS policy for the API group from the configured
// comma-separated origin list.
func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	c.AllowCredentials = true
	c.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	return c
}
