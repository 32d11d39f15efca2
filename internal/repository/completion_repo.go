package repository

import (
	"context"
	"time"

	"github.com/kirurr/mobile-fitness-app-backend/internal/models"
)

type CreateCompletedProgramInput struct {
	UserID    int64
	ProgramID int64
	StartDate *time.Time
	EndDate   *time.Time
}

type CreateCompletedExerciseInput struct {
	CompletedProgramID int64
	ProgramExerciseID  *int64
	ExerciseID         *int64
	Sets               int
	Reps               *int
	Duration           *int
	Weight             *float64
	RestDuration       *int
}

// CompletionRepository owns completion history. Everything here is strictly
// user-scoped: there is no system-shared fallback.
type CompletionRepository struct {
	db DBTX
}

func NewCompletionRepository(db DBTX) *CompletionRepository {
	return &CompletionRepository{db: db}
}

const completedProgramColumns = `id, user_id, program_id, start_date, end_date`

func (r *CompletionRepository) ListByUser(ctx context.Context, userID int64) ([]models.CompletedProgram, error) {
	query := `
		SELECT ` + completedProgramColumns + `
		FROM user_completed_programs
		WHERE user_id = $1
		ORDER BY start_date DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	programs := make([]models.CompletedProgram, 0)
	for rows.Next() {
		var p models.CompletedProgram
		if err := rows.Scan(&p.ID, &p.UserID, &p.ProgramID, &p.StartDate, &p.EndDate); err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

func (r *CompletionRepository) GetOwned(ctx context.Context, id, userID int64) (*models.CompletedProgram, error) {
	query := `
		SELECT ` + completedProgramColumns + `
		FROM user_completed_programs
		WHERE id = $1 AND user_id = $2
	`
	var p models.CompletedProgram
	err := r.db.QueryRow(ctx, query, id, userID).Scan(&p.ID, &p.UserID, &p.ProgramID, &p.StartDate, &p.EndDate)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CompletionRepository) Insert(ctx context.Context, input CreateCompletedProgramInput) (*models.CompletedProgram, error) {
	query := `
		INSERT INTO user_completed_programs (user_id, program_id, start_date, end_date)
		VALUES ($1, $2, COALESCE($3, now()), $4)
		RETURNING ` + completedProgramColumns

	var p models.CompletedProgram
	err := r.db.QueryRow(ctx, query, input.UserID, input.ProgramID, input.StartDate, input.EndDate).
		Scan(&p.ID, &p.UserID, &p.ProgramID, &p.StartDate, &p.EndDate)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update writes every column; the service merges payload fields with the
// existing row first.
func (r *CompletionRepository) Update(ctx context.Context, program *models.CompletedProgram) error {
	query := `
		UPDATE user_completed_programs
		SET user_id = $2, program_id = $3, start_date = $4, end_date = $5
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, program.ID, program.UserID, program.ProgramID, program.StartDate, program.EndDate)
	return err
}

// Delete relies on the FK cascade to remove the completed exercises.
func (r *CompletionRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_completed_programs WHERE id = $1`, id)
	return err
}

const completedExerciseJoin = `
	SELECT ce.id, ce.completed_program_id, ce.program_exercise_id, ce.exercise_id,
	       ce.sets, ce.reps, ce.duration, ce.weight, ce.rest_duration,
	       e.id, e.name, e.description, e.category_id, e.muscle_group_id, e.difficulty_level_id,
	       pe.id, pe.program_id, pe.exercise_id, pe.sort_order, pe.sets, pe.reps, pe.duration, pe.rest_duration
	FROM user_completed_exercises ce
	LEFT JOIN exercises e ON e.id = ce.exercise_id
	LEFT JOIN exercise_program_exercises pe ON pe.id = ce.program_exercise_id
`

func scanCompletedExerciseDetail(row interface{ Scan(...any) error }) (*models.CompletedExerciseDetail, error) {
	var d models.CompletedExerciseDetail
	var (
		exID           *int64
		exName         *string
		exDescription  *string
		exCategory     *int64
		exMuscleGroup  *int64
		exDifficulty   *int64
		peID           *int64
		peProgramID    *int64
		peExerciseID   *int64
		peOrder        *int
		peSets         *int
		peReps         *int
		peDuration     *int
		peRestDuration *int
	)
	err := row.Scan(
		&d.ID, &d.CompletedProgramID, &d.ProgramExerciseID, &d.ExerciseID,
		&d.Sets, &d.Reps, &d.Duration, &d.Weight, &d.RestDuration,
		&exID, &exName, &exDescription, &exCategory, &exMuscleGroup, &exDifficulty,
		&peID, &peProgramID, &peExerciseID, &peOrder, &peSets, &peReps, &peDuration, &peRestDuration,
	)
	if err != nil {
		return nil, err
	}
	if exID != nil {
		d.Exercise = &models.Exercise{
			ID:                *exID,
			Name:              *exName,
			Description:       exDescription,
			CategoryID:        *exCategory,
			MuscleGroupID:     *exMuscleGroup,
			DifficultyLevelID: *exDifficulty,
		}
	}
	if peID != nil {
		d.ProgramExercise = &models.ProgramExercise{
			ID:           *peID,
			ProgramID:    *peProgramID,
			ExerciseID:   *peExerciseID,
			Order:        *peOrder,
			Sets:         *peSets,
			Reps:         peReps,
			Duration:     peDuration,
			RestDuration: *peRestDuration,
		}
	}
	return &d, nil
}

func (r *CompletionRepository) ListExercises(ctx context.Context, completedProgramID int64) ([]models.CompletedExerciseDetail, error) {
	query := completedExerciseJoin + `
		WHERE ce.completed_program_id = $1
		ORDER BY ce.id
	`
	rows, err := r.db.Query(ctx, query, completedProgramID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]models.CompletedExerciseDetail, 0)
	for rows.Next() {
		detail, err := scanCompletedExerciseDetail(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, *detail)
	}
	return exercises, rows.Err()
}

func (r *CompletionRepository) GetExerciseDetail(ctx context.Context, id int64) (*models.CompletedExerciseDetail, error) {
	query := completedExerciseJoin + ` WHERE ce.id = $1`
	return scanCompletedExerciseDetail(r.db.QueryRow(ctx, query, id))
}

// GetExerciseOwned verifies ownership through the parent completed program.
func (r *CompletionRepository) GetExerciseOwned(ctx context.Context, id, userID int64) (*models.CompletedExercise, error) {
	query := `
		SELECT ce.id, ce.completed_program_id, ce.program_exercise_id, ce.exercise_id,
		       ce.sets, ce.reps, ce.duration, ce.weight, ce.rest_duration
		FROM user_completed_exercises ce
		JOIN user_completed_programs cp ON cp.id = ce.completed_program_id
		WHERE ce.id = $1 AND cp.user_id = $2
	`
	var e models.CompletedExercise
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&e.ID, &e.CompletedProgramID, &e.ProgramExerciseID, &e.ExerciseID,
		&e.Sets, &e.Reps, &e.Duration, &e.Weight, &e.RestDuration,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *CompletionRepository) InsertExercise(
	ctx context.Context,
	input CreateCompletedExerciseInput,
) (*models.CompletedExercise, error) {
	query := `
		INSERT INTO user_completed_exercises
			(completed_program_id, program_exercise_id, exercise_id, sets, reps, duration, weight, rest_duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, completed_program_id, program_exercise_id, exercise_id, sets, reps, duration, weight, rest_duration
	`
	var e models.CompletedExercise
	err := r.db.QueryRow(
		ctx,
		query,
		input.CompletedProgramID,
		input.ProgramExerciseID,
		input.ExerciseID,
		input.Sets,
		input.Reps,
		input.Duration,
		input.Weight,
		input.RestDuration,
	).Scan(
		&e.ID, &e.CompletedProgramID, &e.ProgramExerciseID, &e.ExerciseID,
		&e.Sets, &e.Reps, &e.Duration, &e.Weight, &e.RestDuration,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *CompletionRepository) UpdateExercise(ctx context.Context, exercise *models.CompletedExercise) error {
	query := `
		UPDATE user_completed_exercises
		SET program_exercise_id = $2, exercise_id = $3, sets = $4, reps = $5,
		    duration = $6, weight = $7, rest_duration = $8
		WHERE id = $1
	`
	_, err := r.db.Exec(
		ctx,
		query,
		exercise.ID,
		exercise.ProgramExerciseID,
		exercise.ExerciseID,
		exercise.Sets,
		exercise.Reps,
		exercise.Duration,
		exercise.Weight,
		exercise.RestDuration,
	)
	return err
}

func (r *CompletionRepository) DeleteExercise(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_completed_exercises WHERE id = $1`, id)
	return err
}
