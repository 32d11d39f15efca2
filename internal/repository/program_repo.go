package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/kirurr/mobile-fitness-app-backend/internal/models"
)

type CreateExerciseProgramInput struct {
	UserID            *int64
	IsUserAdded       bool
	Name              string
	Description       string
	DifficultyLevelID int64
	SubscriptionID    *int64
}

// PrescriptionInput is one exercise row of a program payload. A non-nil ID
// refers to an existing prescription during update reconciliation.
type PrescriptionInput struct {
	ID           *int64
	ExerciseID   int64
	Order        int
	Sets         int
	Reps         *int
	Duration     *int
	RestDuration int
}

// ProgramFilter holds parsed multi-value filters for listing programs.
// Fitness-goal filtering happens after the fetch, in the service.
type ProgramFilter struct {
	DifficultyLevelIDs []int64
	SubscriptionIDs    []int64
	FitnessGoalIDs     []int64
}

type ExerciseProgramRepository struct {
	db DBTX
}

func NewExerciseProgramRepository(db DBTX) *ExerciseProgramRepository {
	return &ExerciseProgramRepository{db: db}
}

const programColumns = `id, user_id, is_user_added, name, description, difficulty_level_id, subscription_id`

// visibleCondition is the single ownership rule everything derives from:
// a program is visible to a user when they own it or when it is a system
// program (user_id IS NULL).
const visibleCondition = `(exercise_programs.user_id = $%d OR exercise_programs.user_id IS NULL)`

func scanProgram(row interface{ Scan(...any) error }) (*models.ExerciseProgram, error) {
	var program models.ExerciseProgram
	err := row.Scan(
		&program.ID,
		&program.UserID,
		&program.IsUserAdded,
		&program.Name,
		&program.Description,
		&program.DifficultyLevelID,
		&program.SubscriptionID,
	)
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *ExerciseProgramRepository) ListVisible(
	ctx context.Context,
	userID int64,
	filter ProgramFilter,
) ([]models.ExerciseProgram, error) {
	args := []any{userID}
	conditions := []string{fmt.Sprintf(visibleCondition, 1)}

	if len(filter.DifficultyLevelIDs) > 0 {
		args = append(args, filter.DifficultyLevelIDs)
		conditions = append(conditions, fmt.Sprintf("difficulty_level_id = ANY($%d)", len(args)))
	}
	if len(filter.SubscriptionIDs) > 0 {
		args = append(args, filter.SubscriptionIDs)
		conditions = append(conditions, fmt.Sprintf("subscription_id = ANY($%d)", len(args)))
	}

	query := `SELECT ` + programColumns + ` FROM exercise_programs WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	programs := make([]models.ExerciseProgram, 0)
	for rows.Next() {
		program, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, *program)
	}
	return programs, rows.Err()
}

func (r *ExerciseProgramRepository) GetVisibleByID(
	ctx context.Context,
	id int64,
	userID int64,
) (*models.ExerciseProgram, error) {
	query := `
		SELECT ` + programColumns + `
		FROM exercise_programs
		WHERE id = $1 AND ` + fmt.Sprintf(visibleCondition, 2)

	return scanProgram(r.db.QueryRow(ctx, query, id, userID))
}

// IsVisible is the shared predicate the planned-schedule operations lean on
// instead of re-deriving the ownership join per call site.
func (r *ExerciseProgramRepository) IsVisible(ctx context.Context, programID, userID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM exercise_programs
			WHERE id = $1 AND ` + fmt.Sprintf(visibleCondition, 2) + `
		)`

	var visible bool
	err := r.db.QueryRow(ctx, query, programID, userID).Scan(&visible)
	return visible, err
}

func (r *ExerciseProgramRepository) Insert(
	ctx context.Context,
	input CreateExerciseProgramInput,
) (*models.ExerciseProgram, error) {
	query := `
		INSERT INTO exercise_programs (user_id, is_user_added, name, description, difficulty_level_id, subscription_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + programColumns

	return scanProgram(r.db.QueryRow(
		ctx,
		query,
		input.UserID,
		input.IsUserAdded,
		input.Name,
		input.Description,
		input.DifficultyLevelID,
		input.SubscriptionID,
	))
}

// Update writes every scalar column; the service merges payload fields with
// the existing row before calling.
func (r *ExerciseProgramRepository) Update(ctx context.Context, program *models.ExerciseProgram) error {
	query := `
		UPDATE exercise_programs
		SET user_id = $2, is_user_added = $3, name = $4, description = $5,
		    difficulty_level_id = $6, subscription_id = $7
		WHERE id = $1
	`
	_, err := r.db.Exec(
		ctx,
		query,
		program.ID,
		program.UserID,
		program.IsUserAdded,
		program.Name,
		program.Description,
		program.DifficultyLevelID,
		program.SubscriptionID,
	)
	return err
}

func (r *ExerciseProgramRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM exercise_programs WHERE id = $1`, id)
	return err
}

func (r *ExerciseProgramRepository) ListFitnessGoals(ctx context.Context, programID int64) ([]models.FitnessGoal, error) {
	query := `
		SELECT fg.id, fg.name
		FROM exercise_program_fitness_goals epfg
		JOIN fitness_goals fg ON fg.id = epfg.fitness_goal_id
		WHERE epfg.program_id = $1
		ORDER BY fg.id
	`
	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]models.FitnessGoal, 0)
	for rows.Next() {
		var goal models.FitnessGoal
		if err := rows.Scan(&goal.ID, &goal.Name); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

func (r *ExerciseProgramRepository) InsertFitnessGoalLinks(ctx context.Context, programID int64, goalIDs []int64) error {
	for _, goalID := range goalIDs {
		_, err := r.db.Exec(
			ctx,
			`INSERT INTO exercise_program_fitness_goals (program_id, fitness_goal_id) VALUES ($1, $2)`,
			programID,
			goalID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *ExerciseProgramRepository) DeleteFitnessGoalLinks(ctx context.Context, programID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM exercise_program_fitness_goals WHERE program_id = $1`, programID)
	return err
}

const prescriptionColumns = `id, program_id, exercise_id, sort_order, sets, reps, duration, rest_duration`

func (r *ExerciseProgramRepository) ListPrescriptions(ctx context.Context, programID int64) ([]models.ProgramExercise, error) {
	query := `
		SELECT ` + prescriptionColumns + `
		FROM exercise_program_exercises
		WHERE program_id = $1
		ORDER BY sort_order, id
	`
	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prescriptions := make([]models.ProgramExercise, 0)
	for rows.Next() {
		var p models.ProgramExercise
		if err := rows.Scan(
			&p.ID, &p.ProgramID, &p.ExerciseID, &p.Order,
			&p.Sets, &p.Reps, &p.Duration, &p.RestDuration,
		); err != nil {
			return nil, err
		}
		prescriptions = append(prescriptions, p)
	}
	return prescriptions, rows.Err()
}

// ListPrescriptionDetails joins each prescription with its catalog
// exercise, ordered by the prescribed position.
func (r *ExerciseProgramRepository) ListPrescriptionDetails(
	ctx context.Context,
	programID int64,
) ([]models.ProgramExerciseDetail, error) {
	query := `
		SELECT e.id, e.name, e.description, e.category_id, e.muscle_group_id, e.difficulty_level_id,
		       pe.id, pe.program_id, pe.exercise_id, pe.sort_order, pe.sets, pe.reps, pe.duration, pe.rest_duration
		FROM exercise_program_exercises pe
		JOIN exercises e ON e.id = pe.exercise_id
		WHERE pe.program_id = $1
		ORDER BY pe.sort_order, pe.id
	`
	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]models.ProgramExerciseDetail, 0)
	for rows.Next() {
		var d models.ProgramExerciseDetail
		if err := rows.Scan(
			&d.ID, &d.Name, &d.Description, &d.CategoryID, &d.MuscleGroupID, &d.DifficultyLevelID,
			&d.ProgramExercise.ID, &d.ProgramExercise.ProgramID, &d.ProgramExercise.ExerciseID,
			&d.ProgramExercise.Order, &d.ProgramExercise.Sets, &d.ProgramExercise.Reps,
			&d.ProgramExercise.Duration, &d.ProgramExercise.RestDuration,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *ExerciseProgramRepository) InsertPrescription(
	ctx context.Context,
	programID int64,
	input PrescriptionInput,
) (*models.ProgramExercise, error) {
	query := `
		INSERT INTO exercise_program_exercises (program_id, exercise_id, sort_order, sets, reps, duration, rest_duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + prescriptionColumns

	var p models.ProgramExercise
	err := r.db.QueryRow(
		ctx,
		query,
		programID,
		input.ExerciseID,
		input.Order,
		input.Sets,
		input.Reps,
		input.Duration,
		input.RestDuration,
	).Scan(&p.ID, &p.ProgramID, &p.ExerciseID, &p.Order, &p.Sets, &p.Reps, &p.Duration, &p.RestDuration)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ExerciseProgramRepository) UpdatePrescription(ctx context.Context, id int64, input PrescriptionInput) error {
	query := `
		UPDATE exercise_program_exercises
		SET exercise_id = $2, sort_order = $3, sets = $4, reps = $5, duration = $6, rest_duration = $7
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id, input.ExerciseID, input.Order, input.Sets, input.Reps, input.Duration, input.RestDuration)
	return err
}

func (r *ExerciseProgramRepository) DeletePrescriptions(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, `DELETE FROM exercise_program_exercises WHERE id = ANY($1)`, ids)
	return err
}

func (r *ExerciseProgramRepository) DeletePrescriptionsByProgram(ctx context.Context, programID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM exercise_program_exercises WHERE program_id = $1`, programID)
	return err
}

// ListCompletionReferencedIDs returns the subset of prescription ids that
// completion history points at. Those rows must never be hard-deleted.
func (r *ExerciseProgramRepository) ListCompletionReferencedIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT DISTINCT program_exercise_id
		FROM user_completed_exercises
		WHERE program_exercise_id = ANY($1)
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	referenced := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		referenced = append(referenced, id)
	}
	return referenced, rows.Err()
}
