package models

import "time"

// CompletedProgram records that a user executed a program. A nil EndDate
// means the run is still in progress. Always user-owned, never shared.
type CompletedProgram struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	ProgramID int64      `json:"program_id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// CompletedExercise keeps a link back to either a catalog exercise or a
// specific program prescription; at least one must be set.
type CompletedExercise struct {
	ID                 int64    `json:"id"`
	CompletedProgramID int64    `json:"completed_program_id"`
	ProgramExerciseID  *int64   `json:"program_exercise_id"`
	ExerciseID         *int64   `json:"exercise_id"`
	Sets               int      `json:"sets"`
	Reps               *int     `json:"reps"`
	Duration           *int     `json:"duration"`
	Weight             *float64 `json:"weight"`
	RestDuration       *int     `json:"rest_duration"`
}

type CompletedExerciseDetail struct {
	CompletedExercise
	Exercise        *Exercise        `json:"exercise"`
	ProgramExercise *ProgramExercise `json:"program_exercise"`
}

type CompletedProgramDetail struct {
	CompletedProgram
	CompletedExercises []CompletedExerciseDetail `json:"completed_exercises"`
}
