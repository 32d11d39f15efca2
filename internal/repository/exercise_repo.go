package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/kirurr/mobile-fitness-app-backend/internal/models"
)

// ExerciseFilter holds parsed multi-value filters; a nil slice means the
// filter was absent or unparseable and is skipped.
type ExerciseFilter struct {
	CategoryIDs        []int64
	MuscleGroupIDs     []int64
	DifficultyLevelIDs []int64
}

type ExerciseRepository struct {
	db DBTX
}

func NewExerciseRepository(db DBTX) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

const exerciseColumns = `id, name, description, category_id, muscle_group_id, difficulty_level_id`

func (r *ExerciseRepository) List(ctx context.Context, filter ExerciseFilter) ([]models.Exercise, error) {
	conditions := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if len(filter.CategoryIDs) > 0 {
		args = append(args, filter.CategoryIDs)
		conditions = append(conditions, fmt.Sprintf("category_id = ANY($%d)", len(args)))
	}
	if len(filter.MuscleGroupIDs) > 0 {
		args = append(args, filter.MuscleGroupIDs)
		conditions = append(conditions, fmt.Sprintf("muscle_group_id = ANY($%d)", len(args)))
	}
	if len(filter.DifficultyLevelIDs) > 0 {
		args = append(args, filter.DifficultyLevelIDs)
		conditions = append(conditions, fmt.Sprintf("difficulty_level_id = ANY($%d)", len(args)))
	}

	query := `SELECT ` + exerciseColumns + ` FROM exercises`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]models.Exercise, 0)
	for rows.Next() {
		var exercise models.Exercise
		if err := rows.Scan(
			&exercise.ID,
			&exercise.Name,
			&exercise.Description,
			&exercise.CategoryID,
			&exercise.MuscleGroupID,
			&exercise.DifficultyLevelID,
		); err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}
	return exercises, rows.Err()
}

func (r *ExerciseRepository) GetByID(ctx context.Context, id int64) (*models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE id = $1`

	var exercise models.Exercise
	err := r.db.QueryRow(ctx, query, id).Scan(
		&exercise.ID,
		&exercise.Name,
		&exercise.Description,
		&exercise.CategoryID,
		&exercise.MuscleGroupID,
		&exercise.DifficultyLevelID,
	)
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}
