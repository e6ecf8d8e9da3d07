package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"eventhub/internal/domain/account"
)

// AccountStoreForSignup defines the store interface needed by Signup.
type AccountStoreForSignup interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	GetByUsernameOrPhone(ctx context.Context, identifier string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// SignupInput carries input for the signup orchestrator.
type SignupInput struct {
	Username    string
	Email       string
	Password    string
	Role        string
	Phone       string
	Department  string
	YearOfStudy string
	College     string
}

// SignupDeps holds dependencies for Signup.
type SignupDeps struct {
	AccountStore AccountStoreForSignup
	GenerateID   func() string
	Now          func() time.Time
}

var (
	ErrEmailTaken    = errors.New("an account with this email already exists")
	ErrUsernameTaken = errors.New("this username or phone number is already in use")
)

// ExecuteSignup creates a new account with the chosen role. Role is fixed at
// signup; there is no promotion flow.
// PRE: Input fields provided; email and username/phone not yet in use
// POST: Account persisted with hashed password
func ExecuteSignup(ctx context.Context, input SignupInput, deps SignupDeps) (account.Account, error) {
	acct := account.Account{
		ID:          deps.GenerateID(),
		Username:    input.Username,
		Email:       input.Email,
		Role:        input.Role,
		Phone:       input.Phone,
		Department:  input.Department,
		YearOfStudy: input.YearOfStudy,
		College:     input.College,
		CreatedAt:   deps.Now(),
	}
	if err := acct.Validate(); err != nil {
		return account.Account{}, err
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return account.Account{}, err
	}

	// Uniqueness pre-checks; the store's constraints remain the backstop.
	if _, err := deps.AccountStore.GetByEmail(ctx, input.Email); err == nil {
		return account.Account{}, ErrEmailTaken
	}
	if _, err := deps.AccountStore.GetByUsernameOrPhone(ctx, input.Username); err == nil {
		return account.Account{}, ErrUsernameTaken
	}
	if input.Phone != "" {
		if _, err := deps.AccountStore.GetByUsernameOrPhone(ctx, input.Phone); err == nil {
			return account.Account{}, ErrUsernameTaken
		}
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return account.Account{}, err
	}

	slog.Info("auth_event", "event", "signup", "account_id", acct.ID, "role", acct.Role)
	return acct, nil
}
