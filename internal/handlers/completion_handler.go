package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kirurr/mobile-fitness-app-backend/internal/models"
	"github.com/kirurr/mobile-fitness-app-backend/internal/services"
)

type completionApplicationService interface {
	ListCompletedPrograms(ctx context.Context, userID int64) ([]models.CompletedProgramDetail, error)
	GetCompletedProgram(ctx context.Context, id, userID int64) (*models.CompletedProgramDetail, error)
	CreateCompletedProgram(
		ctx context.Context,
		userID int64,
		input services.CreateCompletedProgramInput,
	) (*models.CompletedProgramDetail, error)
	UpdateCompletedProgram(
		ctx context.Context,
		id, userID int64,
		input services.UpdateCompletedProgramInput,
	) (*models.CompletedProgramDetail, error)
	DeleteCompletedProgram(ctx context.Context, id, userID int64) error
	ListCompletedExercises(ctx context.Context, completedProgramID, userID int64) ([]models.CompletedExerciseDetail, error)
	GetCompletedExercise(ctx context.Context, id, userID int64) (*models.CompletedExerciseDetail, error)
	CreateCompletedExercise(
		ctx context.Context,
		userID int64,
		input services.CreateCompletedExerciseInput,
	) (*models.CompletedExerciseDetail, error)
	UpdateCompletedExercise(
		ctx context.Context,
		id, userID int64,
		input services.UpdateCompletedExerciseInput,
	) (*models.CompletedExerciseDetail, error)
	DeleteCompletedExercise(ctx context.Context, id, userID int64) error
}

type CompletionHandler struct {
	service completionApplicationService
}

func NewCompletionHandler(service completionApplicationService) *CompletionHandler {
	return &CompletionHandler{service: service}
}

type createCompletedProgramRequest struct {
	ProgramID int64   `json:"program_id"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type updateCompletedProgramRequest struct {
	ProgramID *int64  `json:"program_id"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type createCompletedExerciseRequest struct {
	ProgramExerciseID *int64   `json:"program_exercise_id"`
	ExerciseID        *int64   `json:"exercise_id"`
	Sets              int      `json:"sets"`
	Reps              *int     `json:"reps"`
	Duration          *int     `json:"duration"`
	Weight            *float64 `json:"weight"`
	RestDuration      *int     `json:"rest_duration"`
}

type updateCompletedExerciseRequest struct {
	ProgramExerciseID *int64   `json:"program_exercise_id"`
	ExerciseID        *int64   `json:"exercise_id"`
	Sets              *int     `json:"sets"`
	Reps              *int     `json:"reps"`
	Duration          *int     `json:"duration"`
	Weight            *float64 `json:"weight"`
	RestDuration      *int     `json:"rest_duration"`
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	date, err := parseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func (h *CompletionHandler) ListCompletedPrograms(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	programs, err := h.service.ListCompletedPrograms(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"completed_programs": programs})
}

func (h *CompletionHandler) GetCompletedProgram(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	programID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid completed program id"})
	}

	program, err := h.service.GetCompletedProgram(c.Context(), programID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"completed_program": program})
}

func (h *CompletionHandler) CreateCompletedProgram(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createCompletedProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format"})
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format"})
	}

	program, err := h.service.CreateCompletedProgram(c.Context(), userID, services.CreateCompletedProgramInput{
		ProgramID: req.ProgramID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"completed_program": program})
}

// UpdateCompletedProgram treats an explicit null end_date as reopening the
// run; an absent key leaves it unchanged.
func (h *CompletionHandler) UpdateCompletedProgram(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	programID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid completed program id"})
	}

	var req updateCompletedProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format"})
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format"})
	}

	program, err := h.service.UpdateCompletedProgram(c.Context(), programID, userID, services.UpdateCompletedProgramInput{
		ProgramID:  req.ProgramID,
		StartDate:  startDate,
		EndDate:    endDate,
		EndDateSet: bodyHasKey(c.Body(), "end_date"),
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"completed_program": program})
}

func (h *CompletionHandler) DeleteCompletedProgram(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	programID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid completed program id"})
	}

	if err := h.service.DeleteCompletedProgram(c.Context(), programID, userID); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CompletionHandler) ListCompletedExercises(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	programID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid completed program id"})
	}

	exercises, err := h.service.ListCompletedExercises(c.Context(), programID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"completed_exercises": exercises})
}

func (h *CompletionHandler) GetCompletedExercise(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	exerciseID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid completed exercise id"})
	}

	exercise, err := h.service.GetCompletedExercise(c.Context(), exerciseID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"completed_exercise": exercise})
}

func (h *CompletionHandler) CreateCompletedExercise(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	programID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid completed program id"})
	}

	var req createCompletedExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	exercise, err := h.service.CreateCompletedExercise(c.Context(), userID, services.CreateCompletedExerciseInput{
		CompletedProgramID: programID,
		ProgramExerciseID:  req.ProgramExerciseID,
		ExerciseID:         req.ExerciseID,
		Sets:               req.Sets,
		Reps:               req.Reps,
		Duration:           req.Duration,
		Weight:             req.Weight,
		RestDuration:       req.RestDuration,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"completed_exercise": exercise})
}

func (h *CompletionHandler) UpdateCompletedExercise(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	exerciseID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid completed exercise id"})
	}

	var req updateCompletedExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	exercise, err := h.service.UpdateCompletedExercise(c.Context(), exerciseID, userID, services.UpdateCompletedExerciseInput{
		ProgramExerciseID: req.ProgramExerciseID,
		ExerciseID:        req.ExerciseID,
		Sets:              req.Sets,
		Reps:              req.Reps,
		Duration:          req.Duration,
		Weight:            req.Weight,
		RestDuration:      req.RestDuration,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"completed_exercise": exercise})
}

func (h *CompletionHandler) DeleteCompletedExercise(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	exerciseID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid completed exercise id"})
	}

	if err := h.service.DeleteCompletedExercise(c.Context(), exerciseID, userID); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
