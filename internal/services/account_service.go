package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kirurr/mobile-fitness-app-backend/internal/models"
	"github.com/kirurr/mobile-fitness-app-backend/internal/repository"
)

type userDataStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.UserData, error)
	Insert(ctx context.Context, data *models.UserData) error
	Update(ctx context.Context, data *models.UserData) error
	Delete(ctx context.Context, userID int64) (bool, error)
}

type userSubscriptionStore interface {
	ListByUser(ctx context.Context, userID int64) ([]models.UserSubscription, error)
	ListByUserAndPlan(ctx context.Context, userID, subscriptionID int64) ([]models.UserSubscription, error)
	GetByID(ctx context.Context, id int64) (*models.UserSubscription, error)
	Insert(ctx context.Context, input repository.CreateUserSubscriptionInput) (*models.UserSubscription, error)
	Update(ctx context.Context, sub *models.UserSubscription) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// AccountService covers the user's body-metrics profile and plan
// enrollments.
type AccountService struct {
	userDataRepo     userDataStore
	subscriptionRepo userSubscriptionStore
}

func NewAccountService(
	userDataRepo *repository.UserDataRepository,
	subscriptionRepo *repository.UserSubscriptionRepository,
) *AccountService {
	return &AccountService{userDataRepo: userDataRepo, subscriptionRepo: subscriptionRepo}
}

type UpdateUserDataInput struct {
	Name          *string
	Age           *int
	Weight        *float64
	Height        *float64
	FitnessGoalID *int64
	TrainingLevel *int
}

type CreateUserSubscriptionInput struct {
	SubscriptionID int64
	StartDate      *time.Time
	EndDate        time.Time
}

type UpdateUserSubscriptionInput struct {
	SubscriptionID *int64
	StartDate      *time.Time
	EndDate        *time.Time
}

func (s *AccountService) GetUserData(ctx context.Context, userID int64) (*models.UserData, error) {
	data, err := s.userDataRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *AccountService) CreateUserData(ctx context.Context, data models.UserData) (*models.UserData, error) {
	if data.Name == "" || data.Age <= 0 || data.Age > 120 || data.Weight <= 0 || data.Height <= 0 {
		return nil, ErrInvalidInput
	}

	existing, err := s.userDataRepo.GetByUserID(ctx, data.UserID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}

	if err := s.userDataRepo.Insert(ctx, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *AccountService) UpdateUserData(ctx context.Context, userID int64, input UpdateUserDataInput) (*models.UserData, error) {
	existing, err := s.userDataRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	merged := *existing
	if input.Name != nil {
		merged.Name = *input.Name
	}
	if input.Age != nil {
		merged.Age = *input.Age
	}
	if input.Weight != nil {
		merged.Weight = *input.Weight
	}
	if input.Height != nil {
		merged.Height = *input.Height
	}
	if input.FitnessGoalID != nil {
		merged.FitnessGoalID = *input.FitnessGoalID
	}
	if input.TrainingLevel != nil {
		merged.TrainingLevel = *input.TrainingLevel
	}

	if merged.Name == "" || merged.Age <= 0 || merged.Age > 120 || merged.Weight <= 0 || merged.Height <= 0 {
		return nil, ErrInvalidInput
	}

	if err := s.userDataRepo.Update(ctx, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (s *AccountService) DeleteUserData(ctx context.Context, userID int64) error {
	found, err := s.userDataRepo.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *AccountService) ListUserSubscriptions(ctx context.Context, userID int64) ([]models.UserSubscription, error) {
	return s.subscriptionRepo.ListByUser(ctx, userID)
}

func (s *AccountService) GetUserSubscription(ctx context.Context, id, userID int64) (*models.UserSubscription, error) {
	sub, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sub.UserID != userID {
		return nil, ErrNotFound
	}
	return sub, nil
}

// CreateUserSubscription refuses a second enrollment while one for the same
// plan is still active (end date in the future).
func (s *AccountService) CreateUserSubscription(
	ctx context.Context,
	userID int64,
	input CreateUserSubscriptionInput,
) (*models.UserSubscription, error) {
	if input.SubscriptionID <= 0 || input.EndDate.IsZero() {
		return nil, ErrInvalidInput
	}

	existing, err := s.subscriptionRepo.ListByUserAndPlan(ctx, userID, input.SubscriptionID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for _, sub := range existing {
		if sub.EndDate.After(now) {
			return nil, ErrConflict
		}
	}

	return s.subscriptionRepo.Insert(ctx, repository.CreateUserSubscriptionInput{
		UserID:         userID,
		SubscriptionID: input.SubscriptionID,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
	})
}

func (s *AccountService) UpdateUserSubscription(
	ctx context.Context,
	id, userID int64,
	input UpdateUserSubscriptionInput,
) (*models.UserSubscription, error) {
	existing, err := s.GetUserSubscription(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	merged := *existing
	if input.SubscriptionID != nil {
		merged.SubscriptionID = *input.SubscriptionID
	}
	if input.StartDate != nil {
		merged.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		merged.EndDate = *input.EndDate
	}

	if err := s.subscriptionRepo.Update(ctx, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (s *AccountService) DeleteUserSubscription(ctx context.Context, id, userID int64) error {
	if _, err := s.GetUserSubscription(ctx, id, userID); err != nil {
		return err
	}

	found, err := s.subscriptionRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
