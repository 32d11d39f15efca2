package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kirurr/mobile-fitness-app-backend/internal/repository"
)

type ExerciseHandler struct {
	repo *repository.ExerciseRepository
}

func NewExerciseHandler(repo *repository.ExerciseRepository) *ExerciseHandler {
	return &ExerciseHandler{repo: repo}
}

func (h *ExerciseHandler) ListExercises(c *fiber.Ctx) error {
	filter := repository.ExerciseFilter{
		CategoryIDs:        parseIDList(c.Query("category_ids")),
		MuscleGroupIDs:     parseIDList(c.Query("muscle_group_ids")),
		DifficultyLevelIDs: parseIDList(c.Query("difficulty_level_ids")),
	}

	exercises, err := h.repo.List(c.Context(), filter)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"exercises": exercises})
}

func (h *ExerciseHandler) GetExercise(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	exercise, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return mapReferenceError(c, err)
	}
	return c.JSON(fiber.Map{"exercise": exercise})
}
