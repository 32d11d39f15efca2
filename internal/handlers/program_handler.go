package handlers

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/kirurr/mobile-fitness-app-backend/internal/models"
	"github.com/kirurr/mobile-fitness-app-backend/internal/repository"
	"github.com/kirurr/mobile-fitness-app-backend/internal/services"
)

type programApplicationService interface {
	ListPrograms(
		ctx context.Context,
		userID int64,
		filter repository.ProgramFilter,
	) ([]models.ExerciseProgramDetail, error)
	GetProgram(ctx context.Context, id, userID int64) (*models.ExerciseProgramDetail, error)
	CreateProgram(ctx context.Context, input services.CreateProgramInput) (*models.ExerciseProgram, error)
	UpdateProgram(
		ctx context.Context,
		id, userID int64,
		input services.UpdateProgramInput,
	) (*models.ExerciseProgram, error)
	DeleteProgram(ctx context.Context, id, userID int64) error
}

type ProgramHandler struct {
	service programApplicationService
}

func NewProgramHandler(service programApplicationService) *ProgramHandler {
	return &ProgramHandler{service: service}
}

type prescriptionRequest struct {
	ID           *int64 `json:"id"`
	ExerciseID   int64  `json:"exercise_id"`
	Order        int    `json:"order"`
	Sets         int    `json:"sets"`
	Reps         *int   `json:"reps"`
	Duration     *int   `json:"duration"`
	RestDuration int    `json:"rest_duration"`
}

func (r prescriptionRequest) toInput() repository.PrescriptionInput {
	return repository.PrescriptionInput{
		ID:           r.ID,
		ExerciseID:   r.ExerciseID,
		Order:        r.Order,
		Sets:         r.Sets,
		Reps:         r.Reps,
		Duration:     r.Duration,
		RestDuration: r.RestDuration,
	}
}

func prescriptionInputs(requests []prescriptionRequest) []repository.PrescriptionInput {
	inputs := make([]repository.PrescriptionInput, 0, len(requests))
	for _, req := range requests {
		inputs = append(inputs, req.toInput())
	}
	return inputs
}

type createProgramRequest struct {
	Name              string                `json:"name"`
	Description       string                `json:"description"`
	DifficultyLevelID int64                 `json:"difficulty_level_id"`
	SubscriptionID    *int64                `json:"subscription_id"`
	UserID            *int64                `json:"user_id"`
	FitnessGoalIDs    []int64               `json:"fitness_goal_ids"`
	Exercises         []prescriptionRequest `json:"exercises"`
}

type updateProgramRequest struct {
	Name              *string               `json:"name"`
	Description       *string               `json:"description"`
	IsUserAdded       *bool                 `json:"is_user_added"`
	DifficultyLevelID *int64                `json:"difficulty_level_id"`
	SubscriptionID    *int64                `json:"subscription_id"`
	UserID            *int64                `json:"user_id"`
	FitnessGoalIDs    []int64               `json:"fitness_goal_ids"`
	Exercises         []prescriptionRequest `json:"exercises"`
}

func (h *ProgramHandler) ListPrograms(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	filter := repository.ProgramFilter{
		DifficultyLevelIDs: parseIDList(c.Query("difficulty_level_ids")),
		SubscriptionIDs:    parseIDList(c.Query("subscription_ids")),
		FitnessGoalIDs:     parseIDList(c.Query("fitness_goal_ids")),
	}

	programs, err := h.service.ListPrograms(c.Context(), userID, filter)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"programs": programs})
}

func (h *ProgramHandler) GetProgram(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	programID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid program id"})
	}

	program, err := h.service.GetProgram(c.Context(), programID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"program": program})
}

// CreateProgram assigns the new program to the caller unless the body
// carries an explicit user_id key. An explicit null creates a system
// program visible to everyone.
func (h *ProgramHandler) CreateProgram(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	owner := req.UserID
	if !bodyHasKey(c.Body(), "user_id") {
		owner = &userID
	}

	program, err := h.service.CreateProgram(c.Context(), services.CreateProgramInput{
		UserID:            owner,
		IsUserAdded:       owner != nil,
		Name:              req.Name,
		Description:       req.Description,
		DifficultyLevelID: req.DifficultyLevelID,
		SubscriptionID:    req.SubscriptionID,
		FitnessGoalIDs:    req.FitnessGoalIDs,
		Prescriptions:     prescriptionInputs(req.Exercises),
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	detail, err := h.service.GetProgram(c.Context(), program.ID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"program": detail})
}

func (h *ProgramHandler) UpdateProgram(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	programID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid program id"})
	}

	var req updateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	input := services.UpdateProgramInput{
		Name:              req.Name,
		Description:       req.Description,
		IsUserAdded:       req.IsUserAdded,
		DifficultyLevelID: req.DifficultyLevelID,
		SubscriptionID:    req.SubscriptionID,
		UserID:            req.UserID,
		UserIDSet:         bodyHasKey(c.Body(), "user_id"),
	}
	if bodyHasKey(c.Body(), "fitness_goal_ids") {
		goals := req.FitnessGoalIDs
		if goals == nil {
			goals = []int64{}
		}
		input.FitnessGoalIDs = &goals
	}
	if bodyHasKey(c.Body(), "exercises") {
		prescriptions := prescriptionInputs(req.Exercises)
		input.Prescriptions = &prescriptions
	}

	if _, err := h.service.UpdateProgram(c.Context(), programID, userID, input); err != nil {
		return mapServiceError(c, err)
	}

	detail, err := h.service.GetProgram(c.Context(), programID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"program": detail})
}

func (h *ProgramHandler) DeleteProgram(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	programID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid program id"})
	}

	if err := h.service.DeleteProgram(c.Context(), programID, userID); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// bodyHasKey reports whether a top-level key appears in the JSON body,
// including with a null value. Struct decoding alone cannot tell an
// absent key from an explicit null.
func bodyHasKey(body []byte, key string) bool {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return false
	}
	_, ok := raw[key]
	return ok
}
