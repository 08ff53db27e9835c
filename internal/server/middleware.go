package server

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/julianstephens/habitboard/internal/logger"
	"github.com/julianstephens/habitboard/internal/models"
	"github.com/julianstephens/habitboard/internal/service"
)

const (
	usernameHeader = "X-Username"
	userLocal      = "user"
)

// RequestLogger logs method, path, status and duration of every request.
// Handler errors are rendered here so the logged status is the final one.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		keyvals := []interface{}{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start),
			"ip", c.IP(),
		}
		if status >= fiber.StatusInternalServerError {
			logger.Error("HTTP request", keyvals...)
		} else {
			logger.Info("HTTP request", keyvals...)
		}
		return nil
	}
}

// identify resolves the caller from the X-Username header, falling back to
// the default user.
func identify(svc *service.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := svc.CurrentUser(c.UserContext(), c.Get(usernameHeader))
		if err != nil {
			return err
		}
		c.Locals(userLocal, user)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) models.User {
	u, _ := c.Locals(userLocal).(models.User)
	return u
}
