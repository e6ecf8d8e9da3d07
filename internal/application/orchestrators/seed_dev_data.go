package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"eventhub/internal/domain/account"
	"eventhub/internal/domain/event"
)

// AccountStoreForSeeding defines the store interface needed by the dev seed.
type AccountStoreForSeeding interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	Count(ctx context.Context) (int, error)
}

// SeedDevDataDeps holds dependencies for SeedDevData.
type SeedDevDataDeps struct {
	AccountStore AccountStoreForSeeding
	EventStore   EventStoreForAuthoring
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteSeedDevData seeds a coordinator, a participant and one sample event
// for development. Idempotent: a non-empty account table skips everything.
// PRE: Runs only outside production
// POST: Known dev logins exist; no-op when accounts already exist
func ExecuteSeedDevData(ctx context.Context, deps SeedDevDataDeps) error {
	n, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	coordinator := account.Account{
		ID:        deps.GenerateID(),
		Username:  "dev-coordinator",
		Email:     "coordinator@eventhub.local",
		Role:      account.RoleCoordinator,
		CreatedAt: deps.Now(),
	}
	if err := coordinator.SetPassword("coordinator-dev"); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, coordinator); err != nil {
		return err
	}

	participant := account.Account{
		ID:          deps.GenerateID(),
		Username:    "dev-participant",
		Email:       "participant@eventhub.local",
		Role:        account.RoleParticipant,
		Department:  "CSE",
		YearOfStudy: "2",
		College:     "Dev College",
		CreatedAt:   deps.Now(),
	}
	if err := participant.SetPassword("participant-dev"); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, participant); err != nil {
		return err
	}

	sample := event.Event{
		ID:            deps.GenerateID(),
		Title:         "Welcome Orientation",
		Description:   "Kick-off session for new members. Bring your student ID.",
		Date:          deps.Now().AddDate(0, 0, 14).Format("2006-01-02"),
		Time:          "10:00",
		Location:      "Main Auditorium",
		CoordinatorID: coordinator.ID,
		CreatedAt:     deps.Now(),
	}
	if err := sample.Validate(); err != nil {
		return err
	}
	if err := deps.EventStore.Save(ctx, sample); err != nil {
		return err
	}

	slog.Info("seed_event", "event", "dev_data_seeded", "coordinator", coordinator.Email, "participant", participant.Email)
	return nil
}
