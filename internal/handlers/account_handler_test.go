package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kirurr/mobile-fitness-app-backend/internal/models"
	"github.com/kirurr/mobile-fitness-app-backend/internal/services"
)

type stubAccountService struct {
	dataResult             *models.UserData
	dataErr                error
	subscriptionResult     *models.UserSubscription
	subscriptionErr        error
	deleteErr              error
	lastUserID             int64
	lastSubscriptionID     int64
	lastCreatedData        models.UserData
	lastDataUpdate         services.UpdateUserDataInput
	lastSubscriptionCreate services.CreateUserSubscriptionInput
	lastSubscriptionUpdate services.UpdateUserSubscriptionInput
}

func (s *stubAccountService) GetUserData(_ context.Context, userID int64) (*models.UserData, error) {
	s.lastUserID = userID
	return s.dataResult, s.dataErr
}

func (s *stubAccountService) CreateUserData(_ context.Context, data models.UserData) (*models.UserData, error) {
	s.lastCreatedData = data
	return s.dataResult, s.dataErr
}

func (s *stubAccountService) UpdateUserData(
	_ context.Context,
	userID int64,
	input services.UpdateUserDataInput,
) (*models.UserData, error) {
	s.lastUserID = userID
	s.lastDataUpdate = input
	return s.dataResult, s.dataErr
}

func (s *stubAccountService) DeleteUserData(_ context.Context, userID int64) error {
	s.lastUserID = userID
	return s.deleteErr
}

func (s *stubAccountService) ListUserSubscriptions(_ context.Context, userID int64) ([]models.UserSubscription, error) {
	s.lastUserID = userID
	return nil, nil
}

func (s *stubAccountService) GetUserSubscription(_ context.Context, id, userID int64) (*models.UserSubscription, error) {
	s.lastSubscriptionID = id
	s.lastUserID = userID
	return s.subscriptionResult, s.subscriptionErr
}

func (s *stubAccountService) CreateUserSubscription(
	_ context.Context,
	userID int64,
	input services.CreateUserSubscriptionInput,
) (*models.UserSubscription, error) {
	s.lastUserID = userID
	s.lastSubscriptionCreate = input
	return s.subscriptionResult, s.subscriptionErr
}

func (s *stubAccountService) UpdateUserSubscription(
	_ context.Context,
	id, userID int64,
	input services.UpdateUserSubscriptionInput,
) (*models.UserSubscription, error) {
	s.lastSubscriptionID = id
	s.lastUserID = userID
	s.lastSubscriptionUpdate = input
	return s.subscriptionResult, s.subscriptionErr
}

func (s *stubAccountService) DeleteUserSubscription(_ context.Context, id, userID int64) error {
	s.lastSubscriptionID = id
	s.lastUserID = userID
	return s.deleteErr
}

func newAccountTestApp(service *stubAccountService) *fiber.App {
	handler := NewAccountHandler(service)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", int64(42))
		return c.Next()
	})
	app.Get("/api/v1/users/data", handler.GetUserData)
	app.Post("/api/v1/users/data", handler.CreateUserData)
	app.Put("/api/v1/users/data", handler.UpdateUserData)
	app.Delete("/api/v1/users/data", handler.DeleteUserData)
	app.Get("/api/v1/users/subscriptions", handler.ListUserSubscriptions)
	app.Post("/api/v1/users/subscriptions", handler.CreateUserSubscription)
	app.Get("/api/v1/users/subscriptions/:id", handler.GetUserSubscription)
	app.Put("/api/v1/users/subscriptions/:id", handler.UpdateUserSubscription)
	app.Delete("/api/v1/users/subscriptions/:id", handler.DeleteUserSubscription)
	return app
}

func TestCreateUserDataBindsCaller(t *testing.T) {
	service := &stubAccountService{
		dataResult: &models.UserData{UserID: 42, Name: "Ann", Age: 30},
	}
	app := newAccountTestApp(service)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/users/data", fiber.Map{
		"name":            "Ann",
		"age":             30,
		"weight":          62.5,
		"height":          168.0,
		"fitness_goal_id": 2,
		"training_level":  1,
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastCreatedData.UserID != 42 {
		t.Fatalf("expected caller bound as owner, got %d", service.lastCreatedData.UserID)
	}
	if service.lastCreatedData.Weight != 62.5 || service.lastCreatedData.FitnessGoalID != 2 {
		t.Fatalf("unexpected payload: %+v", service.lastCreatedData)
	}

	var payload struct {
		UserData models.UserData `json:"user_data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.UserData.Name != "Ann" {
		t.Fatalf("unexpected response: %+v", payload.UserData)
	}
}

func TestCreateUserDataConflictOnSecondProfile(t *testing.T) {
	service := &stubAccountService{dataErr: services.ErrConflict}
	app := newAccountTestApp(service)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/users/data", fiber.Map{
		"name": "Ann", "age": 30, "weight": 62.5, "height": 168.0,
		"fitness_goal_id": 2, "training_level": 1,
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestUpdateUserDataForwardsOnlyProvidedFields(t *testing.T) {
	service := &stubAccountService{
		dataResult: &models.UserData{UserID: 42, Weight: 64.0},
	}
	app := newAccountTestApp(service)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/data",
		bytes.NewBufferString(`{"weight":64.0}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastDataUpdate.Weight == nil || *service.lastDataUpdate.Weight != 64.0 {
		t.Fatalf("expected weight forwarded, got %+v", service.lastDataUpdate.Weight)
	}
	if service.lastDataUpdate.Age != nil || service.lastDataUpdate.Name != nil {
		t.Fatalf("expected untouched fields nil, got %+v", service.lastDataUpdate)
	}
}

func TestGetUserDataMapsNotFound(t *testing.T) {
	service := &stubAccountService{dataErr: services.ErrNotFound}
	app := newAccountTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/users/data", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCreateUserSubscriptionRequiresEndDate(t *testing.T) {
	service := &stubAccountService{}
	app := newAccountTestApp(service)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/users/subscriptions", fiber.Map{
		"subscription_id": 2,
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateUserSubscriptionParsesDates(t *testing.T) {
	service := &stubAccountService{
		subscriptionResult: &models.UserSubscription{ID: 8, UserID: 42, SubscriptionID: 2},
	}
	app := newAccountTestApp(service)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/users/subscriptions", fiber.Map{
		"subscription_id": 2,
		"end_date":        "2026-12-31",
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	input := service.lastSubscriptionCreate
	if input.SubscriptionID != 2 {
		t.Fatalf("expected subscription 2, got %d", input.SubscriptionID)
	}
	if input.StartDate != nil {
		t.Fatalf("expected nil start date, got %v", *input.StartDate)
	}
	want := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	if !input.EndDate.Equal(want) {
		t.Fatalf("expected end %v, got %v", want, input.EndDate)
	}
}

func TestUserSubscriptionActiveDuplicateConflicts(t *testing.T) {
	service := &stubAccountService{subscriptionErr: services.ErrConflict}
	app := newAccountTestApp(service)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/users/subscriptions", fiber.Map{
		"subscription_id": 2,
		"end_date":        "2026-12-31",
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestDeleteUserSubscriptionForwardsIDs(t *testing.T) {
	service := &stubAccountService{}
	app := newAccountTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/users/subscriptions/8", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if service.lastSubscriptionID != 8 || service.lastUserID != 42 {
		t.Fatalf("unexpected forwarding: subscription %d user %d", service.lastSubscriptionID, service.lastUserID)
	}
}
