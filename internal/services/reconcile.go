package services

import (
	"github.com/kirurr/mobile-fitness-app-backend/internal/models"
	"github.com/kirurr/mobile-fitness-app-backend/internal/repository"
)

// prescriptionDiff is the outcome of comparing a program's stored
// prescriptions against an update payload. Delete candidates still need
// the completion-history guard applied before any row is removed.
type prescriptionDiff struct {
	toInsert           []repository.PrescriptionInput
	toUpdate           []repository.PrescriptionInput
	toDeleteCandidates []int64
}

// reconcilePrescriptions partitions the payload: rows carrying a known
// existing id are updates, everything else is an insert, and existing rows
// missing from the payload become delete candidates. Pure function, no
// side effects.
func reconcilePrescriptions(
	existing []models.ProgramExercise,
	incoming []repository.PrescriptionInput,
) prescriptionDiff {
	existingIDs := make(map[int64]bool, len(existing))
	for _, p := range existing {
		existingIDs[p.ID] = true
	}

	var diff prescriptionDiff
	incomingIDs := make(map[int64]bool, len(incoming))
	for _, in := range incoming {
		if in.ID != nil && existingIDs[*in.ID] {
			incomingIDs[*in.ID] = true
			diff.toUpdate = append(diff.toUpdate, in)
		} else {
			diff.toInsert = append(diff.toInsert, in)
		}
	}

	for _, p := range existing {
		if !incomingIDs[p.ID] {
			diff.toDeleteCandidates = append(diff.toDeleteCandidates, p.ID)
		}
	}
	return diff
}

// filterDeletable drops every candidate that completion history still
// references, preserving those rows.
func filterDeletable(candidates []int64, referenced []int64) []int64 {
	if len(candidates) == 0 {
		return nil
	}
	blocked := make(map[int64]bool, len(referenced))
	for _, id := range referenced {
		blocked[id] = true
	}

	deletable := make([]int64, 0, len(candidates))
	for _, id := range candidates {
		if !blocked[id] {
			deletable = append(deletable, id)
		}
	}
	return deletable
}
