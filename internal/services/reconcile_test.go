package services

import (
	"testing"

	"github.com/kirurr/mobile-fitness-app-backend/internal/models"
	"github.com/kirurr/mobile-fitness-app-backend/internal/repository"
)

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func TestReconcilePrescriptionsPartitionsPayload(t *testing.T) {
	existing := []models.ProgramExercise{
		{ID: 1, ExerciseID: 10},
		{ID: 2, ExerciseID: 11},
		{ID: 3, ExerciseID: 12},
	}
	incoming := []repository.PrescriptionInput{
		{ID: int64Ptr(1), ExerciseID: 10, Sets: 5, Reps: intPtr(8)},
		{ExerciseID: 13, Sets: 3, Reps: intPtr(12)},
	}

	diff := reconcilePrescriptions(existing, incoming)

	if len(diff.toUpdate) != 1 || *diff.toUpdate[0].ID != 1 {
		t.Fatalf("expected update for id 1, got %+v", diff.toUpdate)
	}
	if len(diff.toInsert) != 1 || diff.toInsert[0].ExerciseID != 13 {
		t.Fatalf("expected insert for exercise 13, got %+v", diff.toInsert)
	}
	if len(diff.toDeleteCandidates) != 2 {
		t.Fatalf("expected ids 2 and 3 as delete candidates, got %v", diff.toDeleteCandidates)
	}
}

func TestReconcilePrescriptionsUnknownIDBecomesInsert(t *testing.T) {
	existing := []models.ProgramExercise{{ID: 1, ExerciseID: 10}}
	incoming := []repository.PrescriptionInput{
		{ID: int64Ptr(99), ExerciseID: 14, Sets: 3, Reps: intPtr(10)},
	}

	diff := reconcilePrescriptions(existing, incoming)

	if len(diff.toInsert) != 1 {
		t.Fatalf("expected unrecognized id to insert, got %+v", diff)
	}
	if len(diff.toUpdate) != 0 {
		t.Fatalf("expected no updates, got %+v", diff.toUpdate)
	}
	if len(diff.toDeleteCandidates) != 1 || diff.toDeleteCandidates[0] != 1 {
		t.Fatalf("expected id 1 as delete candidate, got %v", diff.toDeleteCandidates)
	}
}

func TestReconcilePrescriptionsIdempotentPayload(t *testing.T) {
	existing := []models.ProgramExercise{
		{ID: 1, ExerciseID: 10},
		{ID: 2, ExerciseID: 11},
	}
	incoming := []repository.PrescriptionInput{
		{ID: int64Ptr(1), ExerciseID: 10, Sets: 3, Reps: intPtr(10)},
		{ID: int64Ptr(2), ExerciseID: 11, Sets: 3, Reps: intPtr(10)},
	}

	diff := reconcilePrescriptions(existing, incoming)

	if len(diff.toInsert) != 0 || len(diff.toDeleteCandidates) != 0 {
		t.Fatalf("expected updates only for a full-coverage payload, got %+v", diff)
	}
	if len(diff.toUpdate) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(diff.toUpdate))
	}
}

func TestReconcilePrescriptionsEmptyPayloadDeletesAll(t *testing.T) {
	existing := []models.ProgramExercise{{ID: 1}, {ID: 2}}

	diff := reconcilePrescriptions(existing, nil)

	if len(diff.toDeleteCandidates) != 2 {
		t.Fatalf("expected every existing row as delete candidate, got %v", diff.toDeleteCandidates)
	}
}

func TestFilterDeletableKeepsReferencedRows(t *testing.T) {
	deletable := filterDeletable([]int64{1, 2, 3}, []int64{2})

	if len(deletable) != 2 || deletable[0] != 1 || deletable[1] != 3 {
		t.Fatalf("expected referenced id 2 to survive, got %v", deletable)
	}
}

func TestFilterDeletableEmptyCandidates(t *testing.T) {
	if deletable := filterDeletable(nil, []int64{1}); deletable != nil {
		t.Fatalf("expected nil for no candidates, got %v", deletable)
	}
}
