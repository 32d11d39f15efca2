package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirurr/mobile-fitness-app-backend/internal/models"
	"github.com/kirurr/mobile-fitness-app-backend/internal/repository"
)

type plannedProgramStore interface {
	ListVisible(ctx context.Context, userID int64) ([]models.PlannedProgram, error)
	GetVisibleByID(ctx context.Context, id, userID int64) (*models.PlannedProgram, error)
	Delete(ctx context.Context, id int64) error
	ListDates(ctx context.Context, plannedProgramID int64) ([]models.PlannedProgramDate, error)
	InsertDate(ctx context.Context, plannedProgramID int64, date time.Time) (*models.PlannedProgramDate, error)
	GetVisibleDate(ctx context.Context, dateID, userID int64) (*models.PlannedProgramDate, error)
	UpdateDate(ctx context.Context, dateID int64, date time.Time) (*models.PlannedProgramDate, error)
	DeleteDate(ctx context.Context, dateID int64) error
}

type programVisibilityChecker interface {
	IsVisible(ctx context.Context, programID, userID int64) (bool, error)
}

// PlannedService schedules programs onto calendar dates. Authorization is
// transitive: every check resolves through the owning exercise program.
type PlannedService struct {
	db          *pgxpool.Pool
	plannedRepo plannedProgramStore
	programRepo programVisibilityChecker
}

func NewPlannedService(
	db *pgxpool.Pool,
	plannedRepo *repository.PlannedProgramRepository,
	programRepo *repository.ExerciseProgramRepository,
) *PlannedService {
	return &PlannedService{db: db, plannedRepo: plannedRepo, programRepo: programRepo}
}

type CreatePlannedProgramInput struct {
	ProgramID int64
	Dates     []time.Time
}

type UpdatePlannedProgramInput struct {
	ProgramID *int64
	Dates     *[]time.Time
}

func (s *PlannedService) ListPlannedPrograms(ctx context.Context, userID int64) ([]models.PlannedProgramDetail, error) {
	planned, err := s.plannedRepo.ListVisible(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]models.PlannedProgramDetail, 0, len(planned))
	for _, p := range planned {
		dates, err := s.plannedRepo.ListDates(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, models.PlannedProgramDetail{PlannedProgram: p, Dates: dates})
	}
	return details, nil
}

func (s *PlannedService) GetPlannedProgram(ctx context.Context, id, userID int64) (*models.PlannedProgramDetail, error) {
	planned, err := s.plannedRepo.GetVisibleByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	dates, err := s.plannedRepo.ListDates(ctx, planned.ID)
	if err != nil {
		return nil, err
	}
	return &models.PlannedProgramDetail{PlannedProgram: *planned, Dates: dates}, nil
}

func (s *PlannedService) CreatePlannedProgram(
	ctx context.Context,
	userID int64,
	input CreatePlannedProgramInput,
) (*models.PlannedProgramDetail, error) {
	visible, err := s.programRepo.IsVisible(ctx, input.ProgramID, userID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, ErrNotFound
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txRepo := repository.NewPlannedProgramRepository(tx)

	planned, err := txRepo.Insert(ctx, input.ProgramID)
	if err != nil {
		return nil, err
	}

	dates := make([]models.PlannedProgramDate, 0, len(input.Dates))
	for _, date := range input.Dates {
		inserted, err := txRepo.InsertDate(ctx, planned.ID, date)
		if err != nil {
			return nil, err
		}
		dates = append(dates, *inserted)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &models.PlannedProgramDetail{PlannedProgram: *planned, Dates: dates}, nil
}

// UpdatePlannedProgram replaces the whole date set when the dates key is
// present, mirroring the fitness-goal semantics on programs.
func (s *PlannedService) UpdatePlannedProgram(
	ctx context.Context,
	id, userID int64,
	input UpdatePlannedProgramInput,
) (*models.PlannedProgramDetail, error) {
	existing, err := s.plannedRepo.GetVisibleByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	programID := existing.ProgramID
	if input.ProgramID != nil {
		programID = *input.ProgramID
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txRepo := repository.NewPlannedProgramRepository(tx)

	if err := txRepo.Update(ctx, id, programID); err != nil {
		return nil, err
	}

	if input.Dates != nil {
		if err := txRepo.DeleteDatesByPlannedProgram(ctx, id); err != nil {
			return nil, err
		}
		for _, date := range *input.Dates {
			if _, err := txRepo.InsertDate(ctx, id, date); err != nil {
				return nil, err
			}
		}
	}

	dates, err := txRepo.ListDates(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &models.PlannedProgramDetail{
		PlannedProgram: models.PlannedProgram{ID: id, ProgramID: programID},
		Dates:          dates,
	}, nil
}

func (s *PlannedService) DeletePlannedProgram(ctx context.Context, id, userID int64) error {
	if _, err := s.plannedRepo.GetVisibleByID(ctx, id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.plannedRepo.Delete(ctx, id)
}

func (s *PlannedService) CreateDate(
	ctx context.Context,
	userID, plannedProgramID int64,
	date time.Time,
) (*models.PlannedProgramDate, error) {
	if _, err := s.plannedRepo.GetVisibleByID(ctx, plannedProgramID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.plannedRepo.InsertDate(ctx, plannedProgramID, date)
}

func (s *PlannedService) GetDate(ctx context.Context, dateID, userID int64) (*models.PlannedProgramDate, error) {
	existing, err := s.plannedRepo.GetVisibleDate(ctx, dateID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return existing, nil
}

func (s *PlannedService) UpdateDate(
	ctx context.Context,
	dateID, userID int64,
	date time.Time,
) (*models.PlannedProgramDate, error) {
	if _, err := s.plannedRepo.GetVisibleDate(ctx, dateID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.plannedRepo.UpdateDate(ctx, dateID, date)
}

func (s *PlannedService) DeleteDate(ctx context.Context, dateID, userID int64) error {
	if _, err := s.plannedRepo.GetVisibleDate(ctx, dateID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.plannedRepo.DeleteDate(ctx, dateID)
}
