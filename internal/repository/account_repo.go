package repository

import (
	"context"
	"time"

	"github.com/kirurr/mobile-fitness-app-backend/internal/models"
)

// UserDataRepository holds the one-row-per-user body metrics profile.
type UserDataRepository struct {
	db DBTX
}

func NewUserDataRepository(db DBTX) *UserDataRepository {
	return &UserDataRepository{db: db}
}

const userDataColumns = `user_id, name, age, weight, height, fitness_goal_id, training_level`

func (r *UserDataRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserData, error) {
	query := `SELECT ` + userDataColumns + ` FROM user_data WHERE user_id = $1`

	var data models.UserData
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&data.UserID, &data.Name, &data.Age, &data.Weight,
		&data.Height, &data.FitnessGoalID, &data.TrainingLevel,
	)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *UserDataRepository) Insert(ctx context.Context, data *models.UserData) error {
	query := `
		INSERT INTO user_data (user_id, name, age, weight, height, fitness_goal_id, training_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(
		ctx,
		query,
		data.UserID, data.Name, data.Age, data.Weight,
		data.Height, data.FitnessGoalID, data.TrainingLevel,
	)
	return err
}

func (r *UserDataRepository) Update(ctx context.Context, data *models.UserData) error {
	query := `
		UPDATE user_data
		SET name = $2, age = $3, weight = $4, height = $5, fitness_goal_id = $6, training_level = $7
		WHERE user_id = $1
	`
	_, err := r.db.Exec(
		ctx,
		query,
		data.UserID, data.Name, data.Age, data.Weight,
		data.Height, data.FitnessGoalID, data.TrainingLevel,
	)
	return err
}

func (r *UserDataRepository) Delete(ctx context.Context, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM user_data WHERE user_id = $1`, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type CreateUserSubscriptionInput struct {
	UserID         int64
	SubscriptionID int64
	StartDate      *time.Time
	EndDate        time.Time
}

type UserSubscriptionRepository struct {
	db DBTX
}

func NewUserSubscriptionRepository(db DBTX) *UserSubscriptionRepository {
	return &UserSubscriptionRepository{db: db}
}

const userSubscriptionColumns = `id, user_id, subscription_id, start_date, end_date`

func (r *UserSubscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]models.UserSubscription, error) {
	query := `
		SELECT ` + userSubscriptionColumns + `
		FROM user_subscriptions
		WHERE user_id = $1
		ORDER BY id
	`
	return r.list(ctx, query, userID)
}

// ListByUserAndPlan feeds the active-subscription conflict check.
func (r *UserSubscriptionRepository) ListByUserAndPlan(
	ctx context.Context,
	userID, subscriptionID int64,
) ([]models.UserSubscription, error) {
	query := `
		SELECT ` + userSubscriptionColumns + `
		FROM user_subscriptions
		WHERE user_id = $1 AND subscription_id = $2
		ORDER BY id
	`
	return r.list(ctx, query, userID, subscriptionID)
}

func (r *UserSubscriptionRepository) list(ctx context.Context, query string, args ...any) ([]models.UserSubscription, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subscriptions := make([]models.UserSubscription, 0)
	for rows.Next() {
		var sub models.UserSubscription
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.SubscriptionID, &sub.StartDate, &sub.EndDate); err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, sub)
	}
	return subscriptions, rows.Err()
}

func (r *UserSubscriptionRepository) GetByID(ctx context.Context, id int64) (*models.UserSubscription, error) {
	query := `SELECT ` + userSubscriptionColumns + ` FROM user_subscriptions WHERE id = $1`

	var sub models.UserSubscription
	err := r.db.QueryRow(ctx, query, id).
		Scan(&sub.ID, &sub.UserID, &sub.SubscriptionID, &sub.StartDate, &sub.EndDate)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *UserSubscriptionRepository) Insert(ctx context.Context, input CreateUserSubscriptionInput) (*models.UserSubscription, error) {
	query := `
		INSERT INTO user_subscriptions (user_id, subscription_id, start_date, end_date)
		VALUES ($1, $2, COALESCE($3, now()), $4)
		RETURNING ` + userSubscriptionColumns

	var sub models.UserSubscription
	err := r.db.QueryRow(ctx, query, input.UserID, input.SubscriptionID, input.StartDate, input.EndDate).
		Scan(&sub.ID, &sub.UserID, &sub.SubscriptionID, &sub.StartDate, &sub.EndDate)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *UserSubscriptionRepository) Update(ctx context.Context, sub *models.UserSubscription) error {
	query := `
		UPDATE user_subscriptions
		SET user_id = $2, subscription_id = $3, start_date = $4, end_date = $5
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, sub.ID, sub.UserID, sub.SubscriptionID, sub.StartDate, sub.EndDate)
	return err
}

func (r *UserSubscriptionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM user_subscriptions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
