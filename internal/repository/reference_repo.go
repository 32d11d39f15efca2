package repository

import (
	"context"

	"github.com/kirurr/mobile-fitness-app-backend/internal/models"
)

// ReferenceRepository serves the read-only lookup tables. All of them are
// id+name rows except subscriptions, which carry a price.
type ReferenceRepository struct {
	db DBTX
}

func NewReferenceRepository(db DBTX) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) listNamed(ctx context.Context, table string) ([]int64, []string, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM `+table+` ORDER BY id`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	names := make([]string, 0)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, nil, err
		}
		ids = append(ids, id)
		names = append(names, name)
	}
	return ids, names, rows.Err()
}

func (r *ReferenceRepository) getNamed(ctx context.Context, table string, id int64) (string, error) {
	var name string
	err := r.db.QueryRow(ctx, `SELECT name FROM `+table+` WHERE id = $1`, id).Scan(&name)
	return name, err
}

func (r *ReferenceRepository) ListDifficultyLevels(ctx context.Context) ([]models.DifficultyLevel, error) {
	ids, names, err := r.listNamed(ctx, "difficulty_levels")
	if err != nil {
		return nil, err
	}
	levels := make([]models.DifficultyLevel, 0, len(ids))
	for i := range ids {
		levels = append(levels, models.DifficultyLevel{ID: ids[i], Name: names[i]})
	}
	return levels, nil
}

func (r *ReferenceRepository) GetDifficultyLevel(ctx context.Context, id int64) (*models.DifficultyLevel, error) {
	name, err := r.getNamed(ctx, "difficulty_levels", id)
	if err != nil {
		return nil, err
	}
	return &models.DifficultyLevel{ID: id, Name: name}, nil
}

func (r *ReferenceRepository) ListMuscleGroups(ctx context.Context) ([]models.MuscleGroup, error) {
	ids, names, err := r.listNamed(ctx, "muscle_groups")
	if err != nil {
		return nil, err
	}
	groups := make([]models.MuscleGroup, 0, len(ids))
	for i := range ids {
		groups = append(groups, models.MuscleGroup{ID: ids[i], Name: names[i]})
	}
	return groups, nil
}

func (r *ReferenceRepository) GetMuscleGroup(ctx context.Context, id int64) (*models.MuscleGroup, error) {
	name, err := r.getNamed(ctx, "muscle_groups", id)
	if err != nil {
		return nil, err
	}
	return &models.MuscleGroup{ID: id, Name: name}, nil
}

func (r *ReferenceRepository) ListFitnessGoals(ctx context.Context) ([]models.FitnessGoal, error) {
	ids, names, err := r.listNamed(ctx, "fitness_goals")
	if err != nil {
		return nil, err
	}
	goals := make([]models.FitnessGoal, 0, len(ids))
	for i := range ids {
		goals = append(goals, models.FitnessGoal{ID: ids[i], Name: names[i]})
	}
	return goals, nil
}

func (r *ReferenceRepository) GetFitnessGoal(ctx context.Context, id int64) (*models.FitnessGoal, error) {
	name, err := r.getNamed(ctx, "fitness_goals", id)
	if err != nil {
		return nil, err
	}
	return &models.FitnessGoal{ID: id, Name: name}, nil
}

func (r *ReferenceRepository) ListExerciseCategories(ctx context.Context) ([]models.ExerciseCategory, error) {
	ids, names, err := r.listNamed(ctx, "exercise_categories")
	if err != nil {
		return nil, err
	}
	categories := make([]models.ExerciseCategory, 0, len(ids))
	for i := range ids {
		categories = append(categories, models.ExerciseCategory{ID: ids[i], Name: names[i]})
	}
	return categories, nil
}

func (r *ReferenceRepository) GetExerciseCategory(ctx context.Context, id int64) (*models.ExerciseCategory, error) {
	name, err := r.getNamed(ctx, "exercise_categories", id)
	if err != nil {
		return nil, err
	}
	return &models.ExerciseCategory{ID: id, Name: name}, nil
}

func (r *ReferenceRepository) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, price FROM subscriptions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subscriptions := make([]models.Subscription, 0)
	for rows.Next() {
		var sub models.Subscription
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Price); err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, sub)
	}
	return subscriptions, rows.Err()
}

func (r *ReferenceRepository) GetSubscription(ctx context.Context, id int64) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.QueryRow(ctx, `SELECT id, name, price FROM subscriptions WHERE id = $1`, id).
		Scan(&sub.ID, &sub.Name, &sub.Price)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
