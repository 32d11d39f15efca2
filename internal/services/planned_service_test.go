package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kirurr/mobile-fitness-app-backend/internal/models"
)

type stubPlannedStore struct {
	listResult   []models.PlannedProgram
	listErr      error
	getResult    *models.PlannedProgram
	getErr       error
	dates        map[int64][]models.PlannedProgramDate
	dateResult   *models.PlannedProgramDate
	dateErr      error
	deletedIDs   []int64
	deletedDates []int64
	updatedDate  *time.Time
}

func (r *stubPlannedStore) ListVisible(_ context.Context, _ int64) ([]models.PlannedProgram, error) {
	return r.listResult, r.listErr
}

func (r *stubPlannedStore) GetVisibleByID(_ context.Context, _, _ int64) (*models.PlannedProgram, error) {
	return r.getResult, r.getErr
}

func (r *stubPlannedStore) Delete(_ context.Context, id int64) error {
	r.deletedIDs = append(r.deletedIDs, id)
	return nil
}

func (r *stubPlannedStore) ListDates(_ context.Context, plannedProgramID int64) ([]models.PlannedProgramDate, error) {
	return r.dates[plannedProgramID], nil
}

func (r *stubPlannedStore) InsertDate(_ context.Context, plannedProgramID int64, date time.Time) (*models.PlannedProgramDate, error) {
	return &models.PlannedProgramDate{ID: 1, PlannedProgramID: plannedProgramID, Date: date}, nil
}

func (r *stubPlannedStore) GetVisibleDate(_ context.Context, _, _ int64) (*models.PlannedProgramDate, error) {
	return r.dateResult, r.dateErr
}

func (r *stubPlannedStore) UpdateDate(_ context.Context, dateID int64, date time.Time) (*models.PlannedProgramDate, error) {
	r.updatedDate = &date
	return &models.PlannedProgramDate{ID: dateID, Date: date}, nil
}

func (r *stubPlannedStore) DeleteDate(_ context.Context, dateID int64) error {
	r.deletedDates = append(r.deletedDates, dateID)
	return nil
}

type stubVisibilityChecker struct {
	visible bool
	err     error
	lastID  int64
}

func (r *stubVisibilityChecker) IsVisible(_ context.Context, programID, _ int64) (bool, error) {
	r.lastID = programID
	return r.visible, r.err
}

func TestPlannedServiceListAttachesDates(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store := &stubPlannedStore{
		listResult: []models.PlannedProgram{{ID: 1, ProgramID: 9}, {ID: 2, ProgramID: 9}},
		dates: map[int64][]models.PlannedProgramDate{
			1: {{ID: 10, PlannedProgramID: 1, Date: day}},
		},
	}
	service := &PlannedService{plannedRepo: store}

	planned, err := service.ListPlannedPrograms(context.Background(), 42)
	if err != nil {
		t.Fatalf("ListPlannedPrograms: %v", err)
	}
	if len(planned) != 2 {
		t.Fatalf("expected 2 planned programs, got %d", len(planned))
	}
	if len(planned[0].Dates) != 1 || !planned[0].Dates[0].Date.Equal(day) {
		t.Fatalf("expected dates attached to planned program 1, got %+v", planned[0].Dates)
	}
	if len(planned[1].Dates) != 0 {
		t.Fatalf("expected no dates for planned program 2, got %+v", planned[1].Dates)
	}
}

func TestPlannedServiceCreateRefusesHiddenProgram(t *testing.T) {
	checker := &stubVisibilityChecker{visible: false}
	service := &PlannedService{plannedRepo: &stubPlannedStore{}, programRepo: checker}

	_, err := service.CreatePlannedProgram(context.Background(), 42, CreatePlannedProgramInput{ProgramID: 9})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for hidden program, got %v", err)
	}
	if checker.lastID != 9 {
		t.Fatalf("expected visibility check on program 9, got %d", checker.lastID)
	}
}

func TestPlannedServiceGetMapsMissingRow(t *testing.T) {
	service := &PlannedService{plannedRepo: &stubPlannedStore{getErr: pgx.ErrNoRows}}

	_, err := service.GetPlannedProgram(context.Background(), 1, 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlannedServiceDeleteChecksVisibilityFirst(t *testing.T) {
	store := &stubPlannedStore{getErr: pgx.ErrNoRows}
	service := &PlannedService{plannedRepo: store}

	if err := service.DeletePlannedProgram(context.Background(), 1, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(store.deletedIDs) != 0 {
		t.Fatalf("expected no delete, got %v", store.deletedIDs)
	}
}

func TestPlannedServiceCreateDateRequiresVisibleParent(t *testing.T) {
	service := &PlannedService{plannedRepo: &stubPlannedStore{getErr: pgx.ErrNoRows}}

	_, err := service.CreateDate(context.Background(), 42, 1, time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlannedServiceCreateDateInsertsForVisibleParent(t *testing.T) {
	store := &stubPlannedStore{getResult: &models.PlannedProgram{ID: 1, ProgramID: 9}}
	service := &PlannedService{plannedRepo: store}

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	date, err := service.CreateDate(context.Background(), 42, 1, day)
	if err != nil {
		t.Fatalf("CreateDate: %v", err)
	}
	if date.PlannedProgramID != 1 || !date.Date.Equal(day) {
		t.Fatalf("unexpected date row: %+v", date)
	}
}

func TestPlannedServiceUpdateDateChecksOwnership(t *testing.T) {
	store := &stubPlannedStore{dateErr: pgx.ErrNoRows}
	service := &PlannedService{plannedRepo: store}

	_, err := service.UpdateDate(context.Background(), 5, 42, time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if store.updatedDate != nil {
		t.Fatalf("expected no update, got %v", store.updatedDate)
	}
}

func TestPlannedServiceDeleteDate(t *testing.T) {
	store := &stubPlannedStore{dateResult: &models.PlannedProgramDate{ID: 5, PlannedProgramID: 1}}
	service := &PlannedService{plannedRepo: store}

	if err := service.DeleteDate(context.Background(), 5, 42); err != nil {
		t.Fatalf("DeleteDate: %v", err)
	}
	if len(store.deletedDates) != 1 || store.deletedDates[0] != 5 {
		t.Fatalf("expected date 5 deleted, got %v", store.deletedDates)
	}
}
