package models

// ExerciseProgram with a nil UserID is a system program: visible to every
// user, claimable by none.
type ExerciseProgram struct {
	ID                int64  `json:"id"`
	UserID            *int64 `json:"user_id"`
	IsUserAdded       bool   `json:"is_user_added"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	DifficultyLevelID int64  `json:"difficulty_level_id"`
	SubscriptionID    *int64 `json:"subscription_id"`
}

// ProgramExercise is one prescribed exercise slot within a program.
// Either Reps or Duration must be set.
type ProgramExercise struct {
	ID           int64 `json:"id"`
	ProgramID    int64 `json:"program_id"`
	ExerciseID   int64 `json:"exercise_id"`
	Order        int   `json:"order"`
	Sets         int   `json:"sets"`
	Reps         *int  `json:"reps"`
	Duration     *int  `json:"duration"`
	RestDuration int   `json:"rest_duration"`
}

type ProgramExerciseDetail struct {
	Exercise
	ProgramExercise ProgramExercise `json:"program_exercise"`
}

type ExerciseProgramDetail struct {
	ExerciseProgram
	Exercises    []ProgramExerciseDetail `json:"exercises"`
	FitnessGoals []FitnessGoal           `json:"fitness_goals"`
}
