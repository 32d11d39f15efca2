package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/kirurr/mobile-fitness-app-backend/internal/repository"
)

// ReferenceHandler serves the read-only lookup tables. There is no service
// layer underneath; the rows go out as stored.
type ReferenceHandler struct {
	repo *repository.ReferenceRepository
}

func NewReferenceHandler(repo *repository.ReferenceRepository) *ReferenceHandler {
	return &ReferenceHandler{repo: repo}
}

func (h *ReferenceHandler) ListDifficultyLevels(c *fiber.Ctx) error {
	levels, err := h.repo.ListDifficultyLevels(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"difficulty_levels": levels})
}

func (h *ReferenceHandler) GetDifficultyLevel(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	level, err := h.repo.GetDifficultyLevel(c.Context(), id)
	if err != nil {
		return mapReferenceError(c, err)
	}
	return c.JSON(fiber.Map{"difficulty_level": level})
}

func (h *ReferenceHandler) ListMuscleGroups(c *fiber.Ctx) error {
	groups, err := h.repo.ListMuscleGroups(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"muscle_groups": groups})
}

func (h *ReferenceHandler) GetMuscleGroup(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	group, err := h.repo.GetMuscleGroup(c.Context(), id)
	if err != nil {
		return mapReferenceError(c, err)
	}
	return c.JSON(fiber.Map{"muscle_group": group})
}

func (h *ReferenceHandler) ListFitnessGoals(c *fiber.Ctx) error {
	goals, err := h.repo.ListFitnessGoals(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"fitness_goals": goals})
}

func (h *ReferenceHandler) GetFitnessGoal(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	goal, err := h.repo.GetFitnessGoal(c.Context(), id)
	if err != nil {
		return mapReferenceError(c, err)
	}
	return c.JSON(fiber.Map{"fitness_goal": goal})
}

func (h *ReferenceHandler) ListExerciseCategories(c *fiber.Ctx) error {
	categories, err := h.repo.ListExerciseCategories(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"exercise_categories": categories})
}

func (h *ReferenceHandler) GetExerciseCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	category, err := h.repo.GetExerciseCategory(c.Context(), id)
	if err != nil {
		return mapReferenceError(c, err)
	}
	return c.JSON(fiber.Map{"exercise_category": category})
}

func (h *ReferenceHandler) ListSubscriptions(c *fiber.Ctx) error {
	subscriptions, err := h.repo.ListSubscriptions(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"subscriptions": subscriptions})
}

func (h *ReferenceHandler) GetSubscription(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	subscription, err := h.repo.GetSubscription(c.Context(), id)
	if err != nil {
		return mapReferenceError(c, err)
	}
	return c.JSON(fiber.Map{"subscription": subscription})
}

func mapReferenceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	return c.Status(fiber.StatusInternalServerError).
		JSON(fiber.Map{"error": "Failed to fetch reference data"})
}
