package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/stabulum/stabulum/internal/core/domain"
)

// AccountRepository persists the chart of accounts.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	// FindAccountByNumber returns apperrors.ErrNotFound when no account in the
	// organization carries the number.
	FindAccountByNumber(ctx context.Context, organizationID string, accountNumber string) (*domain.Account, error)
	// MaxAccountNumberInBand returns the highest numeric account number within
	// the band [prefix*1000, prefix*1000+999], or 0 when the band is empty.
	MaxAccountNumberInBand(ctx context.Context, organizationID string, prefix int) (int, error)
	ListAccounts(ctx context.Context, organizationID string, includeArchived bool) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
	ArchiveAccount(ctx context.Context, accountID string, userID string, now time.Time) error
	DeleteAccount(ctx context.Context, accountID string) error
	HasJournalLines(ctx context.Context, accountID string) (bool, error)
	HasChildren(ctx context.Context, accountID string) (bool, error)
}

// AccountBalanceUpdater mutates cached account balances inside an open
// database transaction. Only the posting path uses it; external callers never
// adjust balances directly.
type AccountBalanceUpdater interface {
	// FindAccountsByIDsForUpdate locks the account rows (SELECT ... FOR
	// UPDATE) and returns their current state.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
	// UpdateAccountBalancesInTx applies signed deltas to the cached balances.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines read/write access with the
// transaction-scoped balance updater.
type AccountRepositoryFacade interface {
	AccountRepository
	AccountBalanceUpdater
}
