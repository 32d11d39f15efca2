package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/kirurr/mobile-fitness-app-backend/internal/models"
	"github.com/kirurr/mobile-fitness-app-backend/internal/services"
)

type accountApplicationService interface {
	GetUserData(ctx context.Context, userID int64) (*models.UserData, error)
	CreateUserData(ctx context.Context, data models.UserData) (*models.UserData, error)
	UpdateUserData(ctx context.Context, userID int64, input services.UpdateUserDataInput) (*models.UserData, error)
	DeleteUserData(ctx context.Context, userID int64) error
	ListUserSubscriptions(ctx context.Context, userID int64) ([]models.UserSubscription, error)
	GetUserSubscription(ctx context.Context, id, userID int64) (*models.UserSubscription, error)
	CreateUserSubscription(
		ctx context.Context,
		userID int64,
		input services.CreateUserSubscriptionInput,
	) (*models.UserSubscription, error)
	UpdateUserSubscription(
		ctx context.Context,
		id, userID int64,
		input services.UpdateUserSubscriptionInput,
	) (*models.UserSubscription, error)
	DeleteUserSubscription(ctx context.Context, id, userID int64) error
}

type AccountHandler struct {
	service accountApplicationService
}

func NewAccountHandler(service accountApplicationService) *AccountHandler {
	return &AccountHandler{service: service}
}

type createUserDataRequest struct {
	Name          string  `json:"name"`
	Age           int     `json:"age"`
	Weight        float64 `json:"weight"`
	Height        float64 `json:"height"`
	FitnessGoalID int64   `json:"fitness_goal_id"`
	TrainingLevel int     `json:"training_level"`
}

type updateUserDataRequest struct {
	Name          *string  `json:"name"`
	Age           *int     `json:"age"`
	Weight        *float64 `json:"weight"`
	Height        *float64 `json:"height"`
	FitnessGoalID *int64   `json:"fitness_goal_id"`
	TrainingLevel *int     `json:"training_level"`
}

type createUserSubscriptionRequest struct {
	SubscriptionID int64   `json:"subscription_id"`
	StartDate      *string `json:"start_date"`
	EndDate        string  `json:"end_date"`
}

type updateUserSubscriptionRequest struct {
	SubscriptionID *int64  `json:"subscription_id"`
	StartDate      *string `json:"start_date"`
	EndDate        *string `json:"end_date"`
}

func (h *AccountHandler) GetUserData(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	data, err := h.service.GetUserData(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user_data": data})
}

func (h *AccountHandler) CreateUserData(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createUserDataRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	data, err := h.service.CreateUserData(c.Context(), models.UserData{
		UserID:        userID,
		Name:          req.Name,
		Age:           req.Age,
		Weight:        req.Weight,
		Height:        req.Height,
		FitnessGoalID: req.FitnessGoalID,
		TrainingLevel: req.TrainingLevel,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user_data": data})
}

func (h *AccountHandler) UpdateUserData(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateUserDataRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	data, err := h.service.UpdateUserData(c.Context(), userID, services.UpdateUserDataInput{
		Name:          req.Name,
		Age:           req.Age,
		Weight:        req.Weight,
		Height:        req.Height,
		FitnessGoalID: req.FitnessGoalID,
		TrainingLevel: req.TrainingLevel,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user_data": data})
}

func (h *AccountHandler) DeleteUserData(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if err := h.service.DeleteUserData(c.Context(), userID); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AccountHandler) ListUserSubscriptions(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	subscriptions, err := h.service.ListUserSubscriptions(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user_subscriptions": subscriptions})
}

func (h *AccountHandler) GetUserSubscription(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	subscriptionID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid subscription id"})
	}

	subscription, err := h.service.GetUserSubscription(c.Context(), subscriptionID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user_subscription": subscription})
}

func (h *AccountHandler) CreateUserSubscription(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createUserSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format"})
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format"})
	}

	subscription, err := h.service.CreateUserSubscription(c.Context(), userID, services.CreateUserSubscriptionInput{
		SubscriptionID: req.SubscriptionID,
		StartDate:      startDate,
		EndDate:        endDate,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user_subscription": subscription})
}

func (h *AccountHandler) UpdateUserSubscription(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	subscriptionID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid subscription id"})
	}

	var req updateUserSubscriptionRequest
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

	subscription, err := h.service.UpdateUserSubscription(c.Context(), subscriptionID, userID, services.UpdateUserSubscriptionInput{
		SubscriptionID: req.SubscriptionID,
		StartDate:      startDate,
		EndDate:        endDate,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user_subscription": subscription})
}

func (h *AccountHandler) DeleteUserSubscription(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	subscriptionID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid subscription id"})
	}

	if err := h.service.DeleteUserSubscription(c.Context(), subscriptionID, userID); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
