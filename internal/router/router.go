package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/handler"
	"github.com/iliyamo/shareit/internal/metrics"
	"github.com/iliyamo/shareit/internal/middleware"
)

// RegisterRoutes registers the operational endpoints that require no
// identity header: the health check used by load balancers and the
// Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", metrics.Handler())
}

// RegisterUsers registers the user management endpoints.  User CRUD is
// the bootstrap surface, so it does not require the identity header.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler) {
	g := e.Group("/users")
	g.GET("", u.GetUsers)
	g.GET("/:userId", u.GetUserByID)
	g.POST("", u.CreateUser)
	g.PATCH("/:userId", u.UpdateUser)
	g.DELETE("/:userId", u.DeleteUser)
}

// RegisterItems registers the item endpoints.  Every route requires the
// identity header; /search is registered before /:itemId so Echo keeps
// the static segment distinct from the parameter.
func RegisterItems(e *echo.Echo, i *handler.ItemHandler) {
	g := e.Group("/items")
	g.Use(middleware.RequireIdentity())
	g.GET("", i.GetItems)
	g.GET("/search", i.SearchItems)
	g.GET("/:itemId", i.GetItemByID)
	g.POST("", i.CreateItem)
	g.PATCH("/:itemId", i.UpdateItem)
	g.DELETE("/:itemId", i.DeleteItem)
	g.POST("/:itemId/comment", i.CreateComment)
}

// RegisterBookings registers the booking lifecycle endpoints.  The
// /owner listing is registered before /:bookingId for the same routing
// reason as /items/search.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler) {
	g := e.Group("/bookings")
	g.Use(middleware.RequireIdentity())
	g.POST("", b.CreateBooking)
	g.GET("", b.GetBookingsByUser)
	g.GET("/owner", b.GetBookingsByOwner)
	g.GET("/:bookingId", b.GetBookingByID)
	g.PATCH("/:bookingId", b.ApproveBooking)
}

// RegisterRequests registers the request board endpoints.
func RegisterRequests(e *echo.Echo, r *handler.RequestHandler) {
	g := e.Group("/requests")
	g.Use(middleware.RequireIdentity())
	g.POST("", r.CreateRequest)
	g.GET("", r.GetOwnRequests)
	g.GET("/all", r.GetAllRequests)
	g.GET("/:requestId", r.GetRequestByID)
}
