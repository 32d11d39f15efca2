package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kirurr/mobile-fitness-app-backend/internal/models"
	"github.com/kirurr/mobile-fitness-app-backend/internal/services"
)

type stubCompletionService struct {
	programResult           *models.CompletedProgramDetail
	programErr              error
	exerciseResult          *models.CompletedExerciseDetail
	exerciseErr             error
	deleteErr               error
	lastUserID              int64
	lastProgramID           int64
	lastExerciseID          int64
	lastCreateProgramInput  services.CreateCompletedProgramInput
	lastUpdateProgramInput  services.UpdateCompletedProgramInput
	lastCreateExerciseInput services.CreateCompletedExerciseInput
	lastUpdateExerciseInput services.UpdateCompletedExerciseInput
}

func (s *stubCompletionService) ListCompletedPrograms(_ context.Context, userID int64) ([]models.CompletedProgramDetail, error) {
	s.lastUserID = userID
	return nil, nil
}

func (s *stubCompletionService) GetCompletedProgram(_ context.Context, id, userID int64) (*models.CompletedProgramDetail, error) {
	s.lastProgramID = id
	s.lastUserID = userID
	return s.programResult, s.programErr
}

func (s *stubCompletionService) CreateCompletedProgram(
	_ context.Context,
	userID int64,
	input services.CreateCompletedProgramInput,
) (*models.CompletedProgramDetail, error) {
	s.lastUserID = userID
	s.lastCreateProgramInput = input
	return s.programResult, s.programErr
}

func (s *stubCompletionService) UpdateCompletedProgram(
	_ context.Context,
	id, userID int64,
	input services.UpdateCompletedProgramInput,
) (*models.CompletedProgramDetail, error) {
	s.lastProgramID = id
	s.lastUserID = userID
	s.lastUpdateProgramInput = input
	return s.programResult, s.programErr
}

func (s *stubCompletionService) DeleteCompletedProgram(_ context.Context, id, userID int64) error {
	s.lastProgramID = id
	s.lastUserID = userID
	return s.deleteErr
}

func (s *stubCompletionService) ListCompletedExercises(
	_ context.Context,
	completedProgramID, userID int64,
) ([]models.CompletedExerciseDetail, error) {
	s.lastProgramID = completedProgramID
	s.lastUserID = userID
	return nil, nil
}

func (s *stubCompletionService) GetCompletedExercise(_ context.Context, id, userID int64) (*models.CompletedExerciseDetail, error) {
	s.lastExerciseID = id
	s.lastUserID = userID
	return s.exerciseResult, s.exerciseErr
}

func (s *stubCompletionService) CreateCompletedExercise(
	_ context.Context,
	userID int64,
	input services.CreateCompletedExerciseInput,
) (*models.CompletedExerciseDetail, error) {
	s.lastUserID = userID
	s.lastCreateExerciseInput = input
	return s.exerciseResult, s.exerciseErr
}

func (s *stubCompletionService) UpdateCompletedExercise(
	_ context.Context,
	id, userID int64,
	input services.UpdateCompletedExerciseInput,
) (*models.CompletedExerciseDetail, error) {
	s.lastExerciseID = id
	s.lastUserID = userID
	s.lastUpdateExerciseInput = input
	return s.exerciseResult, s.exerciseErr
}

func (s *stubCompletionService) DeleteCompletedExercise(_ context.Context, id, userID int64) error {
	s.lastExerciseID = id
	s.lastUserID = userID
	return s.deleteErr
}

func newCompletionTestApp(service *stubCompletionService) *fiber.App {
	handler := NewCompletionHandler(service)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", int64(42))
		return c.Next()
	})
	app.Get("/api/v1/completed-programs", handler.ListCompletedPrograms)
	app.Post("/api/v1/completed-programs", handler.CreateCompletedProgram)
	app.Get("/api/v1/completed-programs/:id", handler.GetCompletedProgram)
	app.Put("/api/v1/completed-programs/:id", handler.UpdateCompletedProgram)
	app.Delete("/api/v1/completed-programs/:id", handler.DeleteCompletedProgram)
	app.Get("/api/v1/completed-programs/:id/exercises", handler.ListCompletedExercises)
	app.Post("/api/v1/completed-programs/:id/exercises", handler.CreateCompletedExercise)
	app.Get("/api/v1/completed-exercises/:id", handler.GetCompletedExercise)
	app.Put("/api/v1/completed-exercises/:id", handler.UpdateCompletedExercise)
	app.Delete("/api/v1/completed-exercises/:id", handler.DeleteCompletedExercise)
	return app
}

func TestCreateCompletedProgramParsesDates(t *testing.T) {
	service := &stubCompletionService{
		programResult: &models.CompletedProgramDetail{
			CompletedProgram: models.CompletedProgram{ID: 11, UserID: 42, ProgramID: 3},
		},
	}
	app := newCompletionTestApp(service)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/completed-programs", fiber.Map{
		"program_id": 3,
		"start_date": "2026-08-30",
		"end_date":   "2026-08-30T19:15:00Z",
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	input := service.lastCreateProgramInput
	if input.ProgramID != 3 {
		t.Fatalf("expected program 3, got %d", input.ProgramID)
	}
	if input.StartDate == nil || input.EndDate == nil {
		t.Fatalf("expected both dates parsed, got %+v", input)
	}
	wantEnd := time.Date(2026, 8, 30, 19, 15, 0, 0, time.UTC)
	if !input.EndDate.Equal(wantEnd) {
		t.Fatalf("expected end %v, got %v", wantEnd, *input.EndDate)
	}
}

func TestUpdateCompletedProgramNullEndDateClearsIt(t *testing.T) {
	service := &stubCompletionService{
		programResult: &models.CompletedProgramDetail{
			CompletedProgram: models.CompletedProgram{ID: 11},
		},
	}
	app := newCompletionTestApp(service)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/completed-programs/11",
		bytes.NewBufferString(`{"end_date":null}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if !service.lastUpdateProgramInput.EndDateSet {
		t.Fatalf("expected explicit null end_date to set the flag")
	}
	if service.lastUpdateProgramInput.EndDate != nil {
		t.Fatalf("expected nil end date, got %v", *service.lastUpdateProgramInput.EndDate)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/v1/completed-programs/11",
		bytes.NewBufferString(`{"program_id":4}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if service.lastUpdateProgramInput.EndDateSet {
		t.Fatalf("expected absent end_date key to leave the flag unset")
	}
}

func TestCreateCompletedExerciseTakesProgramFromPath(t *testing.T) {
	service := &stubCompletionService{
		exerciseResult: &models.CompletedExerciseDetail{
			CompletedExercise: models.CompletedExercise{ID: 5, CompletedProgramID: 11},
		},
	}
	app := newCompletionTestApp(service)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/completed-programs/11/exercises", fiber.Map{
		"exercise_id": 7,
		"sets":        3,
		"reps":        10,
		"weight":      60.0,
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	input := service.lastCreateExerciseInput
	if input.CompletedProgramID != 11 {
		t.Fatalf("expected completed program 11 from the path, got %d", input.CompletedProgramID)
	}
	if input.ExerciseID == nil || *input.ExerciseID != 7 {
		t.Fatalf("expected exercise 7, got %+v", input.ExerciseID)
	}
	if input.Weight == nil || *input.Weight != 60.0 {
		t.Fatalf("expected weight 60, got %+v", input.Weight)
	}
}

func TestGetCompletedProgramMapsNotFound(t *testing.T) {
	service := &stubCompletionService{programErr: services.ErrNotFound}
	app := newCompletionTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/completed-programs/11", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestUpdateCompletedExerciseForwardsPartialFields(t *testing.T) {
	service := &stubCompletionService{
		exerciseResult: &models.CompletedExerciseDetail{
			CompletedExercise: models.CompletedExercise{ID: 5},
		},
	}
	app := newCompletionTestApp(service)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/completed-exercises/5",
		bytes.NewBufferString(`{"sets":4,"weight":82.5}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	input := service.lastUpdateExerciseInput
	if input.Sets == nil || *input.Sets != 4 {
		t.Fatalf("expected sets 4, got %+v", input.Sets)
	}
	if input.Weight == nil || *input.Weight != 82.5 {
		t.Fatalf("expected weight 82.5, got %+v", input.Weight)
	}
	if input.Reps != nil || input.Duration != nil {
		t.Fatalf("expected untouched fields nil, got %+v", input)
	}
	if service.lastExerciseID != 5 {
		t.Fatalf("expected exercise id 5, got %d", service.lastExerciseID)
	}
}

func TestDeleteCompletedExerciseMapsNotFound(t *testing.T) {
	service := &stubCompletionService{deleteErr: services.ErrNotFound}
	app := newCompletionTestApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/completed-exercises/5", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
