package repo_interfaces

import (
	"context"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
)

type AccountRepository interface {
	GetByID(ctx context.Context, id string) (domain.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	ListByStatus(ctx context.Context, status domain.AccountStatus) ([]domain.Account, error)
	Update(ctx context.Context, account domain.Account) (domain.Account, error)
}
