package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirurr/mobile-fitness-app-backend/internal/config"
	"github.com/kirurr/mobile-fitness-app-backend/internal/handlers"
	"github.com/kirurr/mobile-fitness-app-backend/internal/middleware"
	"github.com/kirurr/mobile-fitness-app-backend/internal/repository"
	"github.com/kirurr/mobile-fitness-app-backend/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	programRepo := repository.NewExerciseProgramRepository(db)
	plannedRepo := repository.NewPlannedProgramRepository(db)
	completionRepo := repository.NewCompletionRepository(db)
	userDataRepo := repository.NewUserDataRepository(db)
	subscriptionRepo := repository.NewUserSubscriptionRepository(db)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	referenceHandler := handlers.NewReferenceHandler(referenceRepo)
	exerciseHandler := handlers.NewExerciseHandler(exerciseRepo)
	programService := services.NewProgramService(db, programRepo)
	programHandler := handlers.NewProgramHandler(programService)
	plannedService := services.NewPlannedService(db, plannedRepo, programRepo)
	plannedHandler := handlers.NewPlannedHandler(plannedService)
	completionService := services.NewCompletionService(completionRepo)
	completionHandler := handlers.NewCompletionHandler(completionService)
	accountService := services.NewAccountService(userDataRepo, subscriptionRepo)
	accountHandler := handlers.NewAccountHandler(accountService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	authProtected.Get("/difficulty-levels", referenceHandler.ListDifficultyLevels)
	authProtected.Get("/difficulty-levels/:id", referenceHandler.GetDifficultyLevel)
	authProtected.Get("/muscle-groups", referenceHandler.ListMuscleGroups)
	authProtected.Get("/muscle-groups/:id", referenceHandler.GetMuscleGroup)
	authProtected.Get("/fitness-goals", referenceHandler.ListFitnessGoals)
	authProtected.Get("/fitness-goals/:id", referenceHandler.GetFitnessGoal)
	authProtected.Get("/exercise-categories", referenceHandler.ListExerciseCategories)
	authProtected.Get("/exercise-categories/:id", referenceHandler.GetExerciseCategory)
	authProtected.Get("/subscriptions", referenceHandler.ListSubscriptions)
	authProtected.Get("/subscriptions/:id", referenceHandler.GetSubscription)

	exercises := authProtected.Group("/exercises")
	exercises.Get("", exerciseHandler.ListExercises)
	exercises.Get("/:id", exerciseHandler.GetExercise)

	programs := authProtected.Group("/programs")
	programs.Get("", programHandler.ListPrograms)
	programs.Post("", programHandler.CreateProgram)
	programs.Get("/:id", programHandler.GetProgram)
	programs.Put("/:id", programHandler.UpdateProgram)
	programs.Delete("/:id", programHandler.DeleteProgram)

	planned := authProtected.Group("/planned-programs")
	planned.Get("", plannedHandler.ListPlannedPrograms)
	planned.Post("", plannedHandler.CreatePlannedProgram)
	planned.Get("/:id", plannedHandler.GetPlannedProgram)
	planned.Put("/:id", plannedHandler.UpdatePlannedProgram)
	planned.Delete("/:id", plannedHandler.DeletePlannedProgram)
	planned.Post("/:id/dates", plannedHandler.CreateDate)

	plannedDates := authProtected.Group("/planned-program-dates")
	plannedDates.Get("/:id", plannedHandler.GetDate)
	plannedDates.Put("/:id", plannedHandler.UpdateDate)
	plannedDates.Delete("/:id", plannedHandler.DeleteDate)

	completed := authProtected.Group("/completed-programs")
	completed.Get("", completionHandler.ListCompletedPrograms)
	completed.Post("", completionHandler.CreateCompletedProgram)
	completed.Get("/:id", completionHandler.GetCompletedProgram)
	completed.Put("/:id", completionHandler.UpdateCompletedProgram)
	completed.Delete("/:id", completionHandler.DeleteCompletedProgram)
	completed.Get("/:id/exercises", completionHandler.ListCompletedExercises)
	completed.Post("/:id/exercises", completionHandler.CreateCompletedExercise)

	completedExercises := authProtected.Group("/completed-exercises")
	completedExercises.Get("/:id", completionHandler.GetCompletedExercise)
	completedExercises.Put("/:id", completionHandler.UpdateCompletedExercise)
	completedExercises.Delete("/:id", completionHandler.DeleteCompletedExercise)

	users := authProtected.Group("/users")
	users.Get("/data", accountHandler.GetUserData)
	users.Post("/data", accountHandler.CreateUserData)
	users.Put("/data", accountHandler.UpdateUserData)
	users.Delete("/data", accountHandler.DeleteUserData)
	users.Get("/subscriptions", accountHandler.ListUserSubscriptions)
	users.Post("/subscriptions", accountHandler.CreateUserSubscription)
	users.Get("/subscriptions/:id", accountHandler.GetUserSubscription)
	users.Put("/subscriptions/:id", accountHandler.UpdateUserSubscription)
	users.Delete("/subscriptions/:id", accountHandler.DeleteUserSubscription)

	if err := registerDocsRoutes(app, cfg); err != nil {
		log.Printf("api docs disabled: %v", err)
	}
}
