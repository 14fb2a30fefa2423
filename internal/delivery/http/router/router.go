// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/domain/entity"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ProductHandler *handler.ProductHandler
	OrderHandler   *handler.OrderHandler
	PaymentHandler *handler.PaymentHandler

	AuthMiddleware   *middleware.AuthMiddleware
	LoggerMiddleware *middleware.LoggerMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	productHandler *handler.ProductHandler
	orderHandler   *handler.OrderHandler
	paymentHandler *handler.PaymentHandler

	authMiddleware   *middleware.AuthMiddleware
	loggerMiddleware *middleware.LoggerMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:      params.UserHandler,
		productHandler:   params.ProductHandler,
		orderHandler:     params.OrderHandler,
		paymentHandler:   params.PaymentHandler,
		authMiddleware:   params.AuthMiddleware,
		loggerMiddleware: params.LoggerMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.loggerMiddleware.Handle)

	api := e.Group("/api/v1")

	api.GET("/health", handler.HealthCheck)

	// Public routes
	api.POST("/users/register", r.userHandler.RegisterUser)
	api.POST("/users/login", r.userHandler.Login)
	api.POST("/auth/refresh", r.userHandler.Refresh)
	api.POST("/users/password-reset", r.userHandler.RequestPasswordReset)
	api.POST("/users/password-reset/confirm", r.userHandler.ConfirmPasswordReset)
	api.GET("/products", r.productHandler.ListProducts)
	api.GET("/products/:productID", r.productHandler.GetProduct)

	// Routes that require a valid access token
	authed := api.Group("")
	authed.Use(r.authMiddleware.Authenticate)
	{
		authed.POST("/users/logout", r.userHandler.Logout)
		authed.GET("/users/:userID", r.userHandler.GetUser)
		authed.PUT("/users/:userID", r.userHandler.UpdateUser)

		authed.GET("/favourites", r.productHandler.ListFavourites)
		authed.POST("/favourites/:productID", r.productHandler.AddFavourite)
		authed.DELETE("/favourites/:productID", r.productHandler.RemoveFavourite)

		authed.POST("/orders", r.orderHandler.CreateOrder)
		authed.GET("/orders", r.orderHandler.ListOrders)
		authed.GET("/orders/:orderID", r.orderHandler.GetOrder)

		authed.POST("/payments/intent", r.paymentHandler.CreatePaymentIntent)
	}

	// Routes that additionally require the admin role
	admin := api.Group("")
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		admin.GET("/users", r.userHandler.ListUsers)
		admin.POST("/products", r.productHandler.CreateProduct)
		admin.PUT("/products/:productID", r.productHandler.UpdateProduct)
		admin.DELETE("/products/:productID", r.productHandler.DeleteProduct)
	}
}
