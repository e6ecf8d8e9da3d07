package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"eventhub/internal/domain/account"
)

// AccountStoreForLogin defines the store interface needed by Login.
type AccountStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	GetByUsernameOrPhone(ctx context.Context, identifier string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// LoginInput carries input for the login orchestrator. Identifier may be an
// email, a username, or a phone number.
type LoginInput struct {
	Identifier string
	Password   string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	AccountID string
	Email     string
	Role      string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore AccountStoreForLogin
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account is locked due to too many failed attempts")
)

// ExecuteLogin resolves the identifier to an account and validates credentials.
// Identifiers containing '@' authenticate by email directly and never touch
// the username/phone lookup; all lookup and password failures collapse into
// ErrInvalidCredentials so callers cannot distinguish "no such user" from
// "wrong password".
// PRE: Identifier and password provided
// POST: Returns account info on success, records failed login on failure
// INVARIANT: Account must not be locked
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	identifier := strings.TrimSpace(input.Identifier)
	if identifier == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	var acct account.Account
	var err error
	if strings.Contains(identifier, "@") {
		acct, err = deps.AccountStore.GetByEmail(ctx, identifier)
		if err != nil {
			slog.Info("auth_event", "event", "login_failed", "identifier", identifier, "reason", "email_not_found")
			return LoginResult{}, ErrInvalidCredentials
		}
	} else {
		acct, err = deps.AccountStore.GetByUsernameOrPhone(ctx, identifier)
		if err != nil {
			slog.Info("auth_event", "event", "login_failed", "identifier", identifier, "reason", "lookup_miss")
			return LoginResult{}, ErrInvalidCredentials
		}
	}

	// Check if account is locked
	if acct.IsLocked() {
		slog.Info("auth_event", "event", "login_blocked", "account_id", acct.ID, "reason", "locked")
		return LoginResult{}, ErrAccountLocked
	}

	// Verify password
	if err := acct.CheckPassword(input.Password); err != nil {
		acct.RecordFailedLogin()
		_ = deps.AccountStore.Save(ctx, acct)
		slog.Info("auth_event", "event", "login_failed", "account_id", acct.ID, "reason", "wrong_password", "failed_logins", acct.FailedLogins)
		return LoginResult{}, ErrInvalidCredentials
	}

	// Successful login resets the failure counter
	acct.ResetFailedLogins()
	_ = deps.AccountStore.Save(ctx, acct)

	slog.Info("auth_event", "event", "login_success", "account_id", acct.ID, "role", acct.Role)

	return LoginResult{
		AccountID: acct.ID,
		Email:     acct.Email,
		Role:      acct.Role,
	}, nil
}
