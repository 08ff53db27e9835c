package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/julianstephens/habitboard/internal/calendar"
	apperrors "github.com/julianstephens/habitboard/internal/errors"
	"github.com/julianstephens/habitboard/internal/models"
	"github.com/julianstephens/habitboard/internal/service"
)

type handlers struct {
	svc *service.Service
}

type toggleRequest struct {
	HabitID string        `json:"habit_id"`
	Date    calendar.Date `json:"date"`
}

func (h *handlers) health(c *fiber.Ctx) error {
	if err := h.svc.Store().Ping(c.UserContext()); err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "database unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *handlers) me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

func (h *handlers) addFriend(c *fiber.Ctx) error {
	res, err := h.svc.AddFriend(c.UserContext(), currentUser(c), c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *handlers) listFriends(c *fiber.Ctx) error {
	friends, err := h.svc.ListFriends(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(friends)
}

func (h *handlers) leaderboard(c *fiber.Ctx) error {
	board, err := h.svc.GetLeaderboard(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(board)
}

func (h *handlers) listHabits(c *fiber.Ctx) error {
	habits, err := h.svc.ListHabits(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(habits)
}

func (h *handlers) createHabit(c *fiber.Ctx) error {
	var fields models.HabitFields
	if err := c.BodyParser(&fields); err != nil {
		return badRequest("invalid habit body: " + err.Error())
	}
	habit, err := h.svc.CreateHabit(c.UserContext(), currentUser(c), fields)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(habit)
}

func (h *handlers) updateHabit(c *fiber.Ctx) error {
	var patch models.HabitPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest("invalid habit body: " + err.Error())
	}
	habit, err := h.svc.UpdateHabit(c.UserContext(), currentUser(c), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(habit)
}

func (h *handlers) listLogs(c *fiber.Ctx) error {
	logs, err := h.svc.ListLogs(c.UserContext(), currentUser(c), c.Params("month"))
	if err != nil {
		return err
	}
	return c.JSON(logs)
}

func (h *handlers) toggle(c *fiber.Ctx) error {
	var req toggleRequest
	if err := c.BodyParser(&req); err != nil {
		if errors.Is(err, apperrors.ErrInvalidDate) {
			return err
		}
		return badRequest("invalid toggle body: " + err.Error())
	}
	if req.HabitID == "" {
		return badRequest("habit_id is required")
	}
	res, err := h.svc.Toggle(c.UserContext(), currentUser(c), req.HabitID, req.Date)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (h *handlers) dashboard(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil {
		return badRequest("year must be a number")
	}
	month, err := c.ParamsInt("month")
	if err != nil {
		return badRequest("month must be a number")
	}
	dash, err := h.svc.GetDashboard(c.UserContext(), currentUser(c), year, month)
	if err != nil {
		return err
	}
	return c.JSON(dash)
}
