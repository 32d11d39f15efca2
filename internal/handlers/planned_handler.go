package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kirurr/mobile-fitness-app-backend/internal/models"
	"github.com/kirurr/mobile-fitness-app-backend/internal/services"
)

type plannedProgramService interface {
	ListPlannedPrograms(ctx context.Context, userID int64) ([]models.PlannedProgramDetail, error)
	GetPlannedProgram(ctx context.Context, id, userID int64) (*models.PlannedProgramDetail, error)
	CreatePlannedProgram(
		ctx context.Context,
		userID int64,
		input services.CreatePlannedProgramInput,
	) (*models.PlannedProgramDetail, error)
	UpdatePlannedProgram(
		ctx context.Context,
		id, userID int64,
		input services.UpdatePlannedProgramInput,
	) (*models.PlannedProgramDetail, error)
	DeletePlannedProgram(ctx context.Context, id, userID int64) error
	CreateDate(
		ctx context.Context,
		userID, plannedProgramID int64,
		date time.Time,
	) (*models.PlannedProgramDate, error)
	GetDate(ctx context.Context, dateID, userID int64) (*models.PlannedProgramDate, error)
	UpdateDate(ctx context.Context, dateID, userID int64, date time.Time) (*models.PlannedProgramDate, error)
	DeleteDate(ctx context.Context, dateID, userID int64) error
}

type PlannedHandler struct {
	service plannedProgramService
}

func NewPlannedHandler(service plannedProgramService) *PlannedHandler {
	return &PlannedHandler{service: service}
}

type createPlannedProgramRequest struct {
	ProgramID int64    `json:"program_id"`
	Dates     []string `json:"dates"`
}

type updatePlannedProgramRequest struct {
	ProgramID *int64   `json:"program_id"`
	Dates     []string `json:"dates"`
}

type plannedDateRequest struct {
	Date string `json:"date"`
}

func parseDates(raw []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(raw))
	for _, value := range raw {
		date, err := parseDate(value)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, nil
}

func (h *PlannedHandler) ListPlannedPrograms(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	planned, err := h.service.ListPlannedPrograms(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"planned_programs": planned})
}

func (h *PlannedHandler) GetPlannedProgram(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	plannedID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid planned program id"})
	}

	planned, err := h.service.GetPlannedProgram(c.Context(), plannedID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"planned_program": planned})
}

func (h *PlannedHandler) CreatePlannedProgram(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createPlannedProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ProgramID <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "program_id must be a positive integer"})
	}

	dates, err := parseDates(req.Dates)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format"})
	}

	planned, err := h.service.CreatePlannedProgram(c.Context(), userID, services.CreatePlannedProgramInput{
		ProgramID: req.ProgramID,
		Dates:     dates,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"planned_program": planned})
}

func (h *PlannedHandler) UpdatePlannedProgram(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	plannedID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid planned program id"})
	}

	var req updatePlannedProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	input := services.UpdatePlannedProgramInput{ProgramID: req.ProgramID}
	if bodyHasKey(c.Body(), "dates") {
		dates, err := parseDates(req.Dates)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format"})
		}
		input.Dates = &dates
	}

	planned, err := h.service.UpdatePlannedProgram(c.Context(), plannedID, userID, input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"planned_program": planned})
}

func (h *PlannedHandler) DeletePlannedProgram(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	plannedID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid planned program id"})
	}

	if err := h.service.DeletePlannedProgram(c.Context(), plannedID, userID); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PlannedHandler) CreateDate(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	plannedID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid planned program id"})
	}

	var req plannedDateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format"})
	}

	created, err := h.service.CreateDate(c.Context(), userID, plannedID, date)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"date": created})
}

func (h *PlannedHandler) GetDate(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	dateID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date id"})
	}

	date, err := h.service.GetDate(c.Context(), dateID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"date": date})
}

func (h *PlannedHandler) UpdateDate(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	dateID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date id"})
	}

	var req plannedDateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format"})
	}

	updated, err := h.service.UpdateDate(c.Context(), dateID, userID, date)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"date": updated})
}

func (h *PlannedHandler) DeleteDate(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	dateID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date id"})
	}

	if err := h.service.DeleteDate(c.Context(), dateID, userID); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
