// Package router wires HTTP routes to handlers and applies the auth
// middleware per group.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Health        *handler.HealthHandler
	Auth          *handler.AuthHandler
	Availability  *handler.AvailabilityHandler
	Bookings      *handler.BookingHandler
	Rooms         *handler.RoomHandler
	Guests        *handler.GuestHandler
	Promos        *handler.PromoHandler
	Notifications *handler.NotificationHandler
	Shifts        *handler.ShiftHandler
	StaffLogs     *handler.StaffLogHandler
	Settings      *handler.SettingsHandler
	Staff         *handler.StaffHandler
}

// Register mounts all routes. Three audiences:
//
//	public     - health and login/refresh/logout
//	front desk - any authenticated staff role
//	management - MANAGER and ADMIN only
//	admin      - ADMIN only
//
// The rate limiter and response cache mount per group, after JWTAuth, never
// globally: the limiter keys on the staff identity the auth middleware
// resolves, and a cache running ahead of the gate would hand cached bodies
// to unauthenticated callers. The public auth group carries only the
// limiter, keyed by IP there since no identity exists yet.
func Register(e *echo.Echo, h Handlers, jwtSecret string, limit, cache echo.MiddlewareFunc) {
	e.GET("/healthz", h.Health.Live)
	e.GET("/readyz", h.Health.Ready)

	pub := e.Group("/v1/auth")
	pub.Use(limit)
	pub.POST("/login", h.Auth.Login)
	pub.POST("/refresh", h.Auth.Refresh)
	pub.POST("/logout", h.Auth.Logout)

	desk := e.Group("/v1")
	desk.Use(middleware.JWTAuth(jwtSecret))
	desk.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleReceptionist))
	desk.Use(limit)
	desk.Use(cache)

	desk.GET("/me", h.Auth.Me)
	desk.POST("/me/password", h.Auth.ChangePassword)
	desk.GET("/me/settings", h.Settings.Get)
	desk.PUT("/me/settings", h.Settings.Put)

	desk.GET("/availability", h.Availability.FindRooms)
	desk.GET("/rooms/:id/availability", h.Availability.CheckRoom)

	desk.GET("/rooms", h.Rooms.List)
	desk.GET("/rooms/:id", h.Rooms.Get)

	desk.GET("/bookings", h.Bookings.List)
	desk.GET("/bookings/search", h.Bookings.Search)
	desk.GET("/bookings/stats", h.Bookings.Stats)
	desk.GET("/bookings/:id", h.Bookings.Get)
	desk.POST("/bookings", h.Bookings.Create)
	desk.POST("/bookings/:id/check-in", h.Bookings.CheckIn)
	desk.POST("/bookings/:id/check-out", h.Bookings.CheckOut)
	desk.POST("/bookings/:id/cancel", h.Bookings.Cancel)

	desk.GET("/guests", h.Guests.List)
	desk.GET("/guests/:id", h.Guests.Get)
	desk.GET("/guests/:id/bookings", h.Bookings.ListForGuest)
	desk.POST("/guests", h.Guests.Create)
	desk.PUT("/guests/:id", h.Guests.Update)

	desk.GET("/promos/validate", h.Promos.Validate)

	desk.GET("/notifications", h.Notifications.List)
	desk.GET("/notifications/unread-count", h.Notifications.UnreadCount)
	desk.POST("/notifications", h.Notifications.Create)
	desk.POST("/notifications/:id/read", h.Notifications.MarkRead)

	desk.GET("/shifts", h.Shifts.List)
	desk.GET("/shifts/current", h.Shifts.Current)

	mgmt := e.Group("/v1")
	mgmt.Use(middleware.JWTAuth(jwtSecret))
	mgmt.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager))
	mgmt.Use(limit)
	mgmt.Use(cache)

	mgmt.POST("/rooms", h.Rooms.Create)
	mgmt.PUT("/rooms/:id", h.Rooms.Update)
	mgmt.PUT("/rooms/:id/status", h.Rooms.SetStatus)

	mgmt.DELETE("/guests/:id", h.Guests.Delete)

	mgmt.GET("/promos", h.Promos.List)
	mgmt.POST("/promos", h.Promos.Create)
	mgmt.PUT("/promos/:id", h.Promos.Update)
	mgmt.PUT("/promos/:id/active", h.Promos.SetActive)
	mgmt.DELETE("/promos/:id", h.Promos.Delete)

	mgmt.POST("/shifts", h.Shifts.Create)
	mgmt.PUT("/shifts/:id", h.Shifts.Update)
	mgmt.DELETE("/shifts/:id", h.Shifts.Delete)

	mgmt.GET("/staff-logs", h.StaffLogs.List)

	admin := e.Group("/v1")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.Use(limit)
	admin.Use(cache)

	admin.POST("/auth/register", h.Auth.Register)
	admin.GET("/staff", h.Staff.List)
	admin.PUT("/staff/:id", h.Staff.Update)
	admin.POST("/staff/:id/deactivate", h.Staff.Deactivate)
	admin.POST("/staff-logs/purge", h.StaffLogs.Purge)
}
