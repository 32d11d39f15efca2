package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirurr/mobile-fitness-app-backend/internal/models"
	"github.com/kirurr/mobile-fitness-app-backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

const enrichConcurrency = 8

type exerciseProgramStore interface {
	ListVisible(ctx context.Context, userID int64, filter repository.ProgramFilter) ([]models.ExerciseProgram, error)
	GetVisibleByID(ctx context.Context, id, userID int64) (*models.ExerciseProgram, error)
	ListPrescriptionDetails(ctx context.Context, programID int64) ([]models.ProgramExerciseDetail, error)
	ListFitnessGoals(ctx context.Context, programID int64) ([]models.FitnessGoal, error)
	DeleteFitnessGoalLinks(ctx context.Context, programID int64) error
	DeletePrescriptionsByProgram(ctx context.Context, programID int64) error
	Delete(ctx context.Context, id int64) error
}

type ProgramService struct {
	db          *pgxpool.Pool
	programRepo exerciseProgramStore
}

func NewProgramService(db *pgxpool.Pool, programRepo *repository.ExerciseProgramRepository) *ProgramService {
	return &ProgramService{db: db, programRepo: programRepo}
}

type CreateProgramInput struct {
	UserID            *int64
	IsUserAdded       bool
	Name              string
	Description       string
	DifficultyLevelID int64
	SubscriptionID    *int64
	FitnessGoalIDs    []int64
	Prescriptions     []repository.PrescriptionInput
}

// UpdateProgramInput distinguishes "absent" from "explicit null" only where
// the column is nullable and the distinction changes behavior: UserID.
// Nil pointers elsewhere keep the stored value.
type UpdateProgramInput struct {
	Name              *string
	Description       *string
	IsUserAdded       *bool
	DifficultyLevelID *int64
	SubscriptionID    *int64
	UserID            *int64
	UserIDSet         bool
	FitnessGoalIDs    *[]int64
	Prescriptions     *[]repository.PrescriptionInput
}

func validatePrescriptions(prescriptions []repository.PrescriptionInput) error {
	for i := range prescriptions {
		p := &prescriptions[i]
		if p.ExerciseID <= 0 {
			return ErrInvalidInput
		}
		if p.Order <= 0 {
			p.Order = 1
		}
		if p.Sets < 1 {
			return ErrInvalidInput
		}
		if p.Reps == nil && p.Duration == nil {
			return ErrInvalidInput
		}
		if p.RestDuration < 0 {
			return ErrInvalidInput
		}
	}
	return nil
}

// ListPrograms returns every program visible to the user, filtered, with
// prescriptions and fitness goals attached. Enrichment fans out one
// goroutine per program; the reads are independent.
func (s *ProgramService) ListPrograms(
	ctx context.Context,
	userID int64,
	filter repository.ProgramFilter,
) ([]models.ExerciseProgramDetail, error) {
	programs, err := s.programRepo.ListVisible(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	details := make([]*models.ExerciseProgramDetail, len(programs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i := range programs {
		i := i
		g.Go(func() error {
			detail, err := s.enrich(gctx, programs[i])
			if err != nil {
				return err
			}
			details[i] = detail
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Fitness-goal filtering happens after the fetch: keep a program when it
	// carries at least one of the requested goals.
	result := make([]models.ExerciseProgramDetail, 0, len(details))
	for _, detail := range details {
		if len(filter.FitnessGoalIDs) > 0 && !hasAnyGoal(detail.FitnessGoals, filter.FitnessGoalIDs) {
			continue
		}
		result = append(result, *detail)
	}
	return result, nil
}

func (s *ProgramService) GetProgram(ctx context.Context, id, userID int64) (*models.ExerciseProgramDetail, error) {
	program, err := s.programRepo.GetVisibleByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.enrich(ctx, *program)
}

// CreateProgram inserts the program with its goal links and prescriptions
// in one transaction. The returned row is not enriched; callers re-fetch
// for full detail.
func (s *ProgramService) CreateProgram(ctx context.Context, input CreateProgramInput) (*models.ExerciseProgram, error) {
	if input.Name == "" || input.Description == "" || input.DifficultyLevelID <= 0 {
		return nil, ErrInvalidInput
	}
	if err := validatePrescriptions(input.Prescriptions); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txRepo := repository.NewExerciseProgramRepository(tx)

	program, err := txRepo.Insert(ctx, repository.CreateExerciseProgramInput{
		UserID:            input.UserID,
		IsUserAdded:       input.IsUserAdded,
		Name:              input.Name,
		Description:       input.Description,
		DifficultyLevelID: input.DifficultyLevelID,
		SubscriptionID:    input.SubscriptionID,
	})
	if err != nil {
		return nil, err
	}

	if err := txRepo.InsertFitnessGoalLinks(ctx, program.ID, input.FitnessGoalIDs); err != nil {
		return nil, err
	}
	for _, prescription := range input.Prescriptions {
		if _, err := txRepo.InsertPrescription(ctx, program.ID, prescription); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return program, nil
}

// UpdateProgram applies replace-if-provided semantics to the scalar fields
// and reconciles the child collections. UserID reassignment is refused on
// system programs: they cannot be claimed.
func (s *ProgramService) UpdateProgram(
	ctx context.Context,
	id, userID int64,
	input UpdateProgramInput,
) (*models.ExerciseProgram, error) {
	existing, err := s.programRepo.GetVisibleByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Prescriptions != nil {
		if err := validatePrescriptions(*input.Prescriptions); err != nil {
			return nil, err
		}
	}

	merged := *existing
	if input.Name != nil {
		merged.Name = *input.Name
	}
	if input.Description != nil {
		merged.Description = *input.Description
	}
	if input.IsUserAdded != nil {
		merged.IsUserAdded = *input.IsUserAdded
	}
	if input.DifficultyLevelID != nil {
		merged.DifficultyLevelID = *input.DifficultyLevelID
	}
	if input.SubscriptionID != nil {
		merged.SubscriptionID = input.SubscriptionID
	}
	if existing.UserID != nil && input.UserIDSet {
		merged.UserID = input.UserID
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txRepo := repository.NewExerciseProgramRepository(tx)

	if err := txRepo.Update(ctx, &merged); err != nil {
		return nil, err
	}

	if input.FitnessGoalIDs != nil {
		if err := txRepo.DeleteFitnessGoalLinks(ctx, id); err != nil {
			return nil, err
		}
		if err := txRepo.InsertFitnessGoalLinks(ctx, id, *input.FitnessGoalIDs); err != nil {
			return nil, err
		}
	}

	if input.Prescriptions != nil {
		if err := s.reconcileInTx(ctx, txRepo, id, *input.Prescriptions); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (s *ProgramService) reconcileInTx(
	ctx context.Context,
	txRepo *repository.ExerciseProgramRepository,
	programID int64,
	incoming []repository.PrescriptionInput,
) error {
	existing, err := txRepo.ListPrescriptions(ctx, programID)
	if err != nil {
		return err
	}

	diff := reconcilePrescriptions(existing, incoming)

	for _, update := range diff.toUpdate {
		if err := txRepo.UpdatePrescription(ctx, *update.ID, update); err != nil {
			return err
		}
	}
	for _, insert := range diff.toInsert {
		if _, err := txRepo.InsertPrescription(ctx, programID, insert); err != nil {
			return err
		}
	}

	referenced, err := txRepo.ListCompletionReferencedIDs(ctx, diff.toDeleteCandidates)
	if err != nil {
		return err
	}
	return txRepo.DeletePrescriptions(ctx, filterDeletable(diff.toDeleteCandidates, referenced))
}

// DeleteProgram removes the program and its child rows. Prescriptions still
// referenced by completion history make the delete fail at the storage
// layer; the error propagates as-is.
func (s *ProgramService) DeleteProgram(ctx context.Context, id, userID int64) error {
	if _, err := s.programRepo.GetVisibleByID(ctx, id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if err := s.programRepo.DeleteFitnessGoalLinks(ctx, id); err != nil {
		return err
	}
	if err := s.programRepo.DeletePrescriptionsByProgram(ctx, id); err != nil {
		return err
	}
	return s.programRepo.Delete(ctx, id)
}

func (s *ProgramService) enrich(ctx context.Context, program models.ExerciseProgram) (*models.ExerciseProgramDetail, error) {
	exercises, err := s.programRepo.ListPrescriptionDetails(ctx, program.ID)
	if err != nil {
		return nil, err
	}
	goals, err := s.programRepo.ListFitnessGoals(ctx, program.ID)
	if err != nil {
		return nil, err
	}
	return &models.ExerciseProgramDetail{
		ExerciseProgram: program,
		Exercises:       exercises,
		FitnessGoals:    goals,
	}, nil
}

func hasAnyGoal(goals []models.FitnessGoal, wanted []int64) bool {
	for _, goal := range goals {
		for _, id := range wanted {
			if goal.ID == id {
				return true
			}
		}
	}
	return false
}
