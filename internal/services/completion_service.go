package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kirurr/mobile-fitness-app-backend/internal/models"
	"github.com/kirurr/mobile-fitness-app-backend/internal/repository"
)

type completionStore interface {
	ListByUser(ctx context.Context, userID int64) ([]models.CompletedProgram, error)
	GetOwned(ctx context.Context, id, userID int64) (*models.CompletedProgram, error)
	Insert(ctx context.Context, input repository.CreateCompletedProgramInput) (*models.CompletedProgram, error)
	Update(ctx context.Context, program *models.CompletedProgram) error
	Delete(ctx context.Context, id int64) error
	ListExercises(ctx context.Context, completedProgramID int64) ([]models.CompletedExerciseDetail, error)
	GetExerciseDetail(ctx context.Context, id int64) (*models.CompletedExerciseDetail, error)
	GetExerciseOwned(ctx context.Context, id, userID int64) (*models.CompletedExercise, error)
	InsertExercise(ctx context.Context, input repository.CreateCompletedExerciseInput) (*models.CompletedExercise, error)
	UpdateExercise(ctx context.Context, exercise *models.CompletedExercise) error
	DeleteExercise(ctx context.Context, id int64) error
}

// CompletionService records actual program execution. Completion history is
// personal: every operation requires the calling user to own the parent
// completed program, with no system fallback.
type CompletionService struct {
	completionRepo completionStore
}

func NewCompletionService(completionRepo *repository.CompletionRepository) *CompletionService {
	return &CompletionService{completionRepo: completionRepo}
}

type CreateCompletedProgramInput struct {
	ProgramID int64
	StartDate *time.Time
	EndDate   *time.Time
}

/// UpdateCompletedProgramInput: EndDateSet distinguishes "leave as is" from
// an explicit null that reopens the run.
type UpdateCompletedProgramInput struct {
	ProgramID  *int64
	StartDate  *time.Time
	EndDate    *time.Time
	EndDateSet bool
}

type CreateCompletedExerciseInput struct {
	CompletedProgramID int64
	ProgramExerciseID  *int64
	ExerciseID         *int64
	Sets               int
	Reps               *int
	Duration           *int
	Weight             *float64
	RestDuration       *int
}

type UpdateCompletedExerciseInput struct {
	ProgramExerciseID *int64
	ExerciseID        *int64
	Sets              *int
	Reps              *int
	Duration          *int
	Weight            *float64
	RestDuration      *int
}

func (s *CompletionService) ListCompletedPrograms(ctx context.Context, userID int64) ([]models.CompletedProgramDetail, error) {
	programs, err := s.completionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]models.CompletedProgramDetail, 0, len(programs))
	for _, program := range programs {
		exercises, err := s.completionRepo.ListExercises(ctx, program.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, models.CompletedProgramDetail{
			CompletedProgram:   program,
			CompletedExercises: exercises,
		})
	}
	return details, nil
}

func (s *CompletionService) GetCompletedProgram(ctx context.Context, id, userID int64) (*models.CompletedProgramDetail, error) {
	program, err := s.completionRepo.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	exercises, err := s.completionRepo.ListExercises(ctx, program.ID)
	if err != nil {
		return nil, err
	}
	return &models.CompletedProgramDetail{CompletedProgram: *program, CompletedExercises: exercises}, nil
}

func (s *CompletionService) CreateCompletedProgram(
	ctx context.Context,
	userID int64,
	input CreateCompletedProgramInput,
) (*models.CompletedProgramDetail, error) {
	if input.ProgramID <= 0 {
		return nil, ErrInvalidInput
	}

	program, err := s.completionRepo.Insert(ctx, repository.CreateCompletedProgramInput{
		UserID:    userID,
		ProgramID: input.ProgramID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
	if err != nil {
		return nil, err
	}
	return &models.CompletedProgramDetail{
		CompletedProgram:   *program,
		CompletedExercises: []models.CompletedExerciseDetail{},
	}, nil
}

func (s *CompletionService) UpdateCompletedProgram(
	ctx context.Context,
	id, userID int64,
	input UpdateCompletedProgramInput,
) (*models.CompletedProgramDetail, error) {
	existing, err := s.completionRepo.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	merged := *existing
	if input.ProgramID != nil {
		merged.ProgramID = *input.ProgramID
	}
	if input.StartDate != nil {
		merged.StartDate = *input.StartDate
	}
	if input.EndDateSet {
		merged.EndDate = input.EndDate
	}

	if err := s.completionRepo.Update(ctx, &merged); err != nil {
		return nil, err
	}

	exercises, err := s.completionRepo.ListExercises(ctx, merged.ID)
	if err != nil {
		return nil, err
	}
	return &models.CompletedProgramDetail{CompletedProgram: merged, CompletedExercises: exercises}, nil
}

func (s *CompletionService) DeleteCompletedProgram(ctx context.Context, id, userID int64) error {
	if _, err := s.completionRepo.GetOwned(ctx, id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.completionRepo.Delete(ctx, id)
}

func (s *CompletionService) ListCompletedExercises(
	ctx context.Context,
	completedProgramID, userID int64,
) ([]models.CompletedExerciseDetail, error) {
	if _, err := s.completionRepo.GetOwned(ctx, completedProgramID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.completionRepo.ListExercises(ctx, completedProgramID)
}

func (s *CompletionService) GetCompletedExercise(ctx context.Context, id, userID int64) (*models.CompletedExerciseDetail, error) {
	if _, err := s.completionRepo.GetExerciseOwned(ctx, id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.completionRepo.GetExerciseDetail(ctx, id)
}

// CreateCompletedExercise validates the two row constraints up front, then
// checks parent ownership before anything is written.
func (s *CompletionService) CreateCompletedExercise(
	ctx context.Context,
	userID int64,
	input CreateCompletedExerciseInput,
) (*models.CompletedExerciseDetail, error) {
	if input.ProgramExerciseID == nil && input.ExerciseID == nil {
		return nil, ErrInvalidInput
	}
	if input.Reps == nil && input.Duration == nil {
		return nil, ErrInvalidInput
	}
	if input.Sets < 1 {
		input.Sets = 1
	}

	if _, err := s.completionRepo.GetOwned(ctx, input.CompletedProgramID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	exercise, err := s.completionRepo.InsertExercise(ctx, repository.CreateCompletedExerciseInput{
		CompletedProgramID: input.CompletedProgramID,
		ProgramExerciseID:  input.ProgramExerciseID,
		ExerciseID:         input.ExerciseID,
		Sets:               input.Sets,
		Reps:               input.Reps,
		Duration:           input.Duration,
		Weight:             input.Weight,
		RestDuration:       input.RestDuration,
	})
	if err != nil {
		return nil, err
	}
	return s.completionRepo.GetExerciseDetail(ctx, exercise.ID)
}

func (s *CompletionService) UpdateCompletedExercise(
	ctx context.Context,
	id, userID int64,
	input UpdateCompletedExerciseInput,
) (*models.CompletedExerciseDetail, error) {
	existing, err := s.completionRepo.GetExerciseOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	merged := *existing
	if input.ProgramExerciseID != nil {
		merged.ProgramExerciseID = input.ProgramExerciseID
	}
	if input.ExerciseID != nil {
		merged.ExerciseID = input.ExerciseID
	}
	if input.Sets != nil {
		merged.Sets = *input.Sets
	}
	if input.Reps != nil {
		merged.Reps = input.Reps
	}
	if input.Duration != nil {
		merged.Duration = input.Duration
	}
	if input.Weight != nil {
		merged.Weight = input.Weight
	}
	if input.RestDuration != nil {
		merged.RestDuration = input.RestDuration
	}

	// The merged row must still satisfy the storage constraints.
	if merged.ProgramExerciseID == nil && merged.ExerciseID == nil {
		return nil, ErrInvalidInput
	}
	if merged.Reps == nil && merged.Duration == nil {
		return nil, ErrInvalidInput
	}

	if err := s.completionRepo.UpdateExercise(ctx, &merged); err != nil {
		return nil, err
	}
	return s.completionRepo.GetExerciseDetail(ctx, id)
}

func (s *CompletionService) DeleteCompletedExercise(ctx context.Context, id, userID int64) error {
	if _, err := s.completionRepo.GetExerciseOwned(ctx, id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.completionRepo.DeleteExercise(ctx, id)
}
