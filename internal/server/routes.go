package server

import (
	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Deps struct {
	Users   handler.UserService
	Boards  handler.BoardLister
	Tokens  *auth.TokenIssuer
	Gateway interface{ Handle(c *gin.Context) }
}

// NewRouter mounts the REST API, the realtime endpoint and the docs.
func NewRouter(cfg *config.Config, d Deps) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	userHandler := handler.NewUserHandler(d.Users, d.Tokens)
	boardHandler := handler.NewBoardHandler(d.Boards)
	authenticate := middleware.JWTAuthMiddleware(d.Tokens, cfg.AuthRequired)

	api := r.Group("/api")
	{
		api.GET("/users", userHandler.List)
		api.POST("/signup", userHandler.Signup)
		api.POST("/login", userHandler.Login)
		api.DELETE("/users/:id", authenticate, userHandler.Delete)

		api.GET("/boards", boardHandler.GetAll)
	}

	r.GET("/ws", authenticate, d.Gateway.Handle)
	r.GET("/healthz", handler.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r
}
