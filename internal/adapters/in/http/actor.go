package http

import (
	"net/http"
	"strings"

	"printshop/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Authentication happens upstream; the gateway forwards the caller as headers.
const (
	HeaderActorID         = "X-Actor-Id"
	HeaderActorRole       = "X-Actor-Role"
	HeaderActorDepartment = "X-Actor-Department"
	HeaderActorName       = "X-Actor-Name"
)

const actorContextKey = "actor"

// requireActor resolves the acting user from the request headers and stores it on the
// echo context for the handlers and the rate limiter.
func requireActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Request().Header

		var department kernel.Department
		if raw := strings.TrimSpace(h.Get(HeaderActorDepartment)); raw != "" {
			parsed, err := kernel.ParseDepartment(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown actor department "+raw)
			}
			department = parsed
		}

		actor, err := kernel.NewActor(
			strings.TrimSpace(h.Get(HeaderActorID)),
			strings.TrimSpace(h.Get(HeaderActorRole)),
			department,
			strings.TrimSpace(h.Get(HeaderActorName)),
		)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing actor headers")
		}

		c.Set(actorContextKey, actor)
		return next(c)
	}
}

func actorOf(c echo.Context) kernel.Actor {
	actor, _ := c.Get(actorContextKey).(kernel.Actor)
	return actor
}
