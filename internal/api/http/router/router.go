package router

import (
	"github.com/gin-gonic/gin"

	"github.com/gc02/usuario-server/internal/api/http/handler"
	"github.com/gc02/usuario-server/internal/api/http/middleware"
	"github.com/gc02/usuario-server/internal/logger"
	"github.com/gc02/usuario-server/internal/model"
)

// Services are the application services behind the routes.
type Services struct {
	Users     handler.UserService
	Artists   handler.ArtistService
	Cart      handler.RelationService
	Wishlist  handler.RelationService
	Favorites handler.FavoriteService
	Purchases handler.PurchaseService
	Health    handler.Pinger
}

// Options tune the middleware chain and optional routes.
type Options struct {
	// RateLimit is requests per second per client; zero disables limiting.
	RateLimit      float64
	RateBurst      int
	AvatarUploads  bool
	MaxAvatarBytes int64
}

// Router wires handlers and middleware into a gin engine.
type Router struct {
	services       Services
	identity       model.IdentityProvider
	contextManager model.ContextManager
	logger         *logger.Logger
	opts           Options
}

func New(
	services Services,
	identity model.IdentityProvider,
	contextManager model.ContextManager,
	logger *logger.Logger,
	opts Options,
) *Router {
	return &Router{
		services:       services,
		identity:       identity,
		contextManager: contextManager,
		logger:         logger,
		opts:           opts,
	}
}

// Register builds the engine with every route mounted.
func (r *Router) Register() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.NewLogging(r.logger).Handle)
	if r.opts.RateLimit > 0 {
		engine.Use(middleware.NewRateLimiter(r.opts.RateLimit, r.opts.RateBurst).Handle)
	}

	engine.GET("/health", handler.NewHealth(r.services.Health).Check)

	auth := middleware.NewAuthenticate(r.identity, r.contextManager, r.logger).Handle
	api := engine.Group("/api/usuarios")

	r.registerArtistRoutes(api.Group("/artistas"))
	r.registerFavoriteRoutes(api.Group("/favoritos", auth))
	r.registerCartRoutes(api.Group("/cesta", auth))
	r.registerWishlistRoutes(api.Group("/desea", auth))
	r.registerPurchaseRoutes(api.Group("/tiene", auth))
	r.registerUserRoutes(api, auth)

	return engine
}

func (r *Router) registerArtistRoutes(g *gin.RouterGroup) {
	h := handler.NewArtists(r.services.Artists)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}

func (r *Router) registerFavoriteRoutes(g *gin.RouterGroup) {
	h := handler.NewFavorites(r.services.Favorites)
	g.GET("/:idusuario", h.List)
	g.GET("/:idusuario/:idelemento/artista", h.ExistsArtist)
	g.DELETE("/:idusuario/:idelemento/artista", h.DeleteArtist)
	g.GET("/:idusuario/:idelemento/contenido", h.ExistsContent)
	g.DELETE("/:idusuario/:idelemento/contenido", h.DeleteContent)
	g.POST("", h.Create)
}

func (r *Router) registerCartRoutes(g *gin.RouterGroup) {
	h := handler.NewCart(r.services.Cart)
	g.GET("/:idusuario", h.Get)
	g.POST("", h.Create)
	g.GET("/:idusuario/:idelemento", h.Exists)
	g.DELETE("/:idusuario/:idelemento", h.Delete)
}

func (r *Router) registerWishlistRoutes(g *gin.RouterGroup) {
	h := handler.NewWishlist(r.services.Wishlist)
	g.GET("/:idusuario", h.List)
	g.POST("", h.Create)
	g.GET("/:idusuario/:idelemento", h.Exists)
	g.DELETE("/:idusuario/:idelemento", h.Delete)
}

func (r *Router) registerPurchaseRoutes(g *gin.RouterGroup) {
	h := handler.NewPurchases(r.services.Purchases)
	g.GET("/:idusuario", h.List)
	g.GET("/:idusuario/:idelemento", h.Exists)
	g.POST("/:idusuario", h.Checkout)
}

func (r *Router) registerUserRoutes(g *gin.RouterGroup, auth gin.HandlerFunc) {
	h := handler.NewUsers(r.services.Users, r.contextManager, r.opts.MaxAvatarBytes)
	g.GET("/login", auth, h.Login)
	g.GET("/logout", auth, h.Logout)
	g.DELETE("/:id", auth, h.Delete)
	g.GET("/:id", h.Get)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("", auth, h.Update)
	if r.opts.AvatarUploads {
		g.PUT("/:id/foto", auth, h.UploadAvatar)
	}
}
