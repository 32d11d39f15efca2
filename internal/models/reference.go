package models

type DifficultyLevel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type MuscleGroup struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type FitnessGoal struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ExerciseCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Subscription is a purchasable plan tier, not a user's enrollment in one.
type Subscription struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
