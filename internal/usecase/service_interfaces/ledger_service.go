package service_interfaces

import (
	"context"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/commons"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/models"
)

type LedgerService interface {
	Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.OperationResult], error)
	Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.OperationResult], error)
	Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.OperationResult], error)
}
