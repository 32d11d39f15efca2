package repository

import (
	"context"
	"time"

	"github.com/kirurr/mobile-fitness-app-backend/internal/models"
)

// PlannedProgramRepository owns planned programs and their calendar dates.
// Every visibility-filtered query joins up to exercise_programs: planned
// rows have no owner of their own.
type PlannedProgramRepository struct {
	db DBTX
}

func NewPlannedProgramRepository(db DBTX) *PlannedProgramRepository {
	return &PlannedProgramRepository{db: db}
}

func (r *PlannedProgramRepository) ListVisible(ctx context.Context, userID int64) ([]models.PlannedProgram, error) {
	query := `
		SELECT pp.id, pp.program_id
		FROM planned_exercise_programs pp
		JOIN exercise_programs ep ON ep.id = pp.program_id
		WHERE ep.user_id = $1 OR ep.user_id IS NULL
		ORDER BY pp.id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	planned := make([]models.PlannedProgram, 0)
	for rows.Next() {
		var p models.PlannedProgram
		if err := rows.Scan(&p.ID, &p.ProgramID); err != nil {
			return nil, err
		}
		planned = append(planned, p)
	}
	return planned, rows.Err()
}

func (r *PlannedProgramRepository) GetVisibleByID(ctx context.Context, id, userID int64) (*models.PlannedProgram, error) {
	query := `
		SELECT pp.id, pp.program_id
		FROM planned_exercise_programs pp
		JOIN exercise_programs ep ON ep.id = pp.program_id
		WHERE pp.id = $1 AND (ep.user_id = $2 OR ep.user_id IS NULL)
	`
	var p models.PlannedProgram
	err := r.db.QueryRow(ctx, query, id, userID).Scan(&p.ID, &p.ProgramID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlannedProgramRepository) Insert(ctx context.Context, programID int64) (*models.PlannedProgram, error) {
	query := `
		INSERT INTO planned_exercise_programs (program_id)
		VALUES ($1)
		RETURNING id, program_id
	`
	var p models.PlannedProgram
	err := r.db.QueryRow(ctx, query, programID).Scan(&p.ID, &p.ProgramID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlannedProgramRepository) Update(ctx context.Context, id, programID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE planned_exercise_programs SET program_id = $2 WHERE id = $1`, id, programID)
	return err
}

// Delete relies on the FK cascade to remove the dates.
func (r *PlannedProgramRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM planned_exercise_programs WHERE id = $1`, id)
	return err
}

func (r *PlannedProgramRepository) ListDates(ctx context.Context, plannedProgramID int64) ([]models.PlannedProgramDate, error) {
	query := `
		SELECT id, planned_program_id, date
		FROM planned_exercise_program_dates
		WHERE planned_program_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, plannedProgramID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make([]models.PlannedProgramDate, 0)
	for rows.Next() {
		var d models.PlannedProgramDate
		if err := rows.Scan(&d.ID, &d.PlannedProgramID, &d.Date); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *PlannedProgramRepository) InsertDate(
	ctx context.Context,
	plannedProgramID int64,
	date time.Time,
) (*models.PlannedProgramDate, error) {
	query := `
		INSERT INTO planned_exercise_program_dates (planned_program_id, date)
		VALUES ($1, $2)
		RETURNING id, planned_program_id, date
	`
	var d models.PlannedProgramDate
	err := r.db.QueryRow(ctx, query, plannedProgramID, date).Scan(&d.ID, &d.PlannedProgramID, &d.Date)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PlannedProgramRepository) DeleteDatesByPlannedProgram(ctx context.Context, plannedProgramID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM planned_exercise_program_dates WHERE planned_program_id = $1`, plannedProgramID)
	return err
}

// GetVisibleDate resolves date → planned program → exercise program and
// applies the ownership rule in one query.
func (r *PlannedProgramRepository) GetVisibleDate(ctx context.Context, dateID, userID int64) (*models.PlannedProgramDate, error) {
	query := `
		SELECT d.id, d.planned_program_id, d.date
		FROM planned_exercise_program_dates d
		JOIN planned_exercise_programs pp ON pp.id = d.planned_program_id
		JOIN exercise_programs ep ON ep.id = pp.program_id
		WHERE d.id = $1 AND (ep.user_id = $2 OR ep.user_id IS NULL)
	`
	var d models.PlannedProgramDate
	err := r.db.QueryRow(ctx, query, dateID, userID).Scan(&d.ID, &d.PlannedProgramID, &d.Date)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PlannedProgramRepository) UpdateDate(ctx context.Context, dateID int64, date time.Time) (*models.PlannedProgramDate, error) {
	query := `
		UPDATE planned_exercise_program_dates
		SET date = $2
		WHERE id = $1
		RETURNING id, planned_program_id, date
	`
	var d models.PlannedProgramDate
	err := r.db.QueryRow(ctx, query, dateID, date).Scan(&d.ID, &d.PlannedProgramID, &d.Date)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PlannedProgramRepository) DeleteDate(ctx context.Context, dateID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM planned_exercise_program_dates WHERE id = $1`, dateID)
	return err
}
