package models

type Exercise struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	CategoryID        int64   `json:"category_id"`
	MuscleGroupID     int64   `json:"muscle_group_id"`
	DifficultyLevelID int64   `json:"difficulty_level_id"`
}
