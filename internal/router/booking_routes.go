package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ktvilla/villa-booking/internal/config"
	"github.com/ktvilla/villa-booking/internal/handler"
	"github.com/ktvilla/villa-booking/internal/middleware"
	"github.com/ktvilla/villa-booking/internal/model"
)

// RegisterBooking registers the member-facing booking endpoints under
// /v1.  All routes require a valid JWT; both roles are accepted since
// admins can book stays too.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleMember),
	)
	g.POST("/bookings", h.CreateBooking)
	g.GET("/my-bookings", h.MyBookings)
	g.GET("/bookings/:code", h.GetBooking)
	g.POST("/bookings/:code/join", h.JoinBooking)
	g.GET("/my-join-requests", h.MyJoinRequests)
	g.PATCH("/members/:id/status", h.UpdateMemberStatus)
	g.POST("/bookings/:id/members", h.AddMember)
}

// RegisterPublic registers the discovery endpoints under /v1/public.
// The trip page is the same for every caller with the same code, so it
// runs behind the Redis response cache when one is configured; the
// joinable list excludes the caller's own bookings and is never cached.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, jwtSecret string, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/v1/public", middleware.JWTAuth(jwtSecret))
	g.GET("/bookings", p.ListJoinable)
	g.GET("/bookings/:code", p.GetByCode, middleware.NewRedisCache(cacheCfg, rdb))
}

// RegisterAdmin registers the admin console endpoints under /v1/admin.
// Every route requires the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	g.GET("/bookings", a.ListBookings)
	g.POST("/bookings/:id/approve", a.ApproveBooking)
	g.PATCH("/bookings/:id/status", a.UpdateStatus)
	g.PATCH("/bookings/:id", a.UpdateBooking)
	g.DELETE("/bookings/:id", a.DeleteBooking)
	g.PATCH("/users/:id/trust", a.SetTrust)
}
