package api

import (
	"net/http"

	"github.com/beka-birhanu/penguin-maze/api/i"
	"github.com/gin-gonic/gin"
)

// Router builds the gin engine serving the game API.
type Router struct {
	addr        string
	baseURL     string
	mode        string
	controllers []i.Controller
	authorize   gin.HandlerFunc
}

// Config holds the settings for NewRouter.
type Config struct {
	Addr                    string // Address to listen on
	BaseURL                 string // Prefix of every route, e.g. "/api"
	Mode                    string // Gin mode; empty keeps gin's default
	Controllers             []i.Controller
	AuthorizationMiddleware gin.HandlerFunc // Guards the protected group
}

// NewRouter creates a Router from config.
func NewRouter(config Config) *Router {
	return &Router{
		addr:        config.Addr,
		baseURL:     config.BaseURL,
		mode:        config.Mode,
		controllers: config.Controllers,
		authorize:   config.AuthorizationMiddleware,
	}
}

// Handler builds the engine. Every controller gets two /v1 groups under the base
// URL: a public one and one behind the authorization middleware. Unknown routes
// answer with a JSON 404.
func (r *Router) Handler() *gin.Engine {
	if r.mode != "" {
		gin.SetMode(r.mode)
	}
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	base := engine.Group(r.baseURL)
	base.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := base.Group("/v1")
	protected := base.Group("/v1", r.authorize)
	for _, c := range r.controllers {
		c.RegisterPublic(public)
		c.RegisterProtected(protected)
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	return engine
}

// Run listens on the configured address until the server fails.
func (r *Router) Run() error {
	gin.ForceConsoleColor()
	return r.Handler().Run(r.addr)
}
