package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newAuthTestApp() *fiber.App {
	handler := NewAuthHandler(nil, "test-secret")
	app := fiber.New()
	app.Post("/api/auth/register", handler.Register)
	app.Post("/api/auth/login", handler.Login)
	return app
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	app := newAuthTestApp()

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register", fiber.Map{
		"email":    "not-an-email",
		"password": "longenough",
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	app := newAuthTestApp()

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register", fiber.Map{
		"email":    "user@example.com",
		"password": "short",
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestLoginRejectsInvalidEmail(t *testing.T) {
	app := newAuthTestApp()

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "nope",
		"password": "whatever",
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
