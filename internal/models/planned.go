package models

import "time"

// PlannedProgram has no owner of its own; access is derived from the
// exercise program it points at.
type PlannedProgram struct {
	ID        int64 `json:"id"`
	ProgramID int64 `json:"program_id"`
}

type PlannedProgramDate struct {
	ID               int64     `json:"id"`
	PlannedProgramID int64     `json:"planned_program_id"`
	Date             time.Time `json:"date"`
}

type PlannedProgramDetail struct {
	PlannedProgram
	Dates []PlannedProgramDate `json:"dates"`
}
