package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/adapter/repository/repo_interfaces"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/approval"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/commons"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/logger"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/models"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/notification"
)

type LedgerService struct {
	accountRepo         repo_interfaces.AccountRepository
	transactionRepo     repo_interfaces.TransactionRepository
	chain               *approval.Chain
	notifier            *notification.Subject
	lowBalanceThreshold decimal.Decimal
}

func NewLedgerService(
	accountRepo repo_interfaces.AccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
	chain *approval.Chain,
	notifier *notification.Subject,
	lowBalanceThreshold decimal.Decimal,
) *LedgerService {
	return &LedgerService{
		accountRepo:         accountRepo,
		transactionRepo:     transactionRepo,
		chain:               chain,
		notifier:            notifier,
		lowBalanceThreshold: lowBalanceThreshold,
	}
}

var transactionNumberCounter uint32

func (s *LedgerService) Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.OperationResult], error) {
	logger.Info("ledger service deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.OperationResult]("validation failed", err.Error()), err
	}

	account, err := s.resolveActiveAccount(ctx, req.AccountNumber)
	if err != nil {
		return accountErrorResponse(err), err
	}

	previousBalance := account.Balance
	txn := s.newTransaction(account, nil, domain.TransactionTypeDeposit, req.Amount, req.Description)

	decision := s.chain.Submit(approval.Context{Transaction: txn, Amount: req.Amount})
	switch decision.Status {
	case approval.StatusRejected:
		return commons.ErrorResponse[models.OperationResult]("transaction rejected", decision.Comment), domain.ErrApprovalRejected

	case approval.StatusAutoApproved:
		now := time.Now().UTC()
		account.Balance = previousBalance.Add(req.Amount)
		account.LastActivityAt = &now
		txn.Status = domain.TransactionStatusCompleted
		txn.CompletedAt = &now

		if err := s.commitWithRetry(ctx, &txn, account); err != nil {
			return commons.ErrorResponse[models.OperationResult]("failed to process deposit", "Unable to process deposit right now"), err
		}

		s.notifier.NotifyObservers(ctx, s.newEvent(domain.EventDeposit, account, &txn, req.Amount, previousBalance,
			fmt.Sprintf("deposit of %s %s completed", req.Amount.StringFixed(2), account.Currency)))

		return commons.SuccessResponse("transaction completed successfully", mapOperationResult(txn, account)), nil

	default:
		if err := s.createWithRetry(ctx, &txn); err != nil {
			return commons.ErrorResponse[models.OperationResult]("failed to process deposit", "Unable to process deposit right now"), err
		}
		return commons.PendingResponse(decision.Message, mapOperationResult(txn, account)), nil
	}
}

func (s *LedgerService) Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.OperationResult], error) {
	logger.Info("ledger service withdraw request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.OperationResult]("validation failed", err.Error()), err
	}

	account, err := s.resolveActiveAccount(ctx, req.AccountNumber)
	if err != nil {
		return accountErrorResponse(err), err
	}

	if account.Balance.LessThan(req.Amount) {
		err := domain.ErrInsufficientBalance
		return commons.ErrorResponse[models.OperationResult]("Insufficient balance", err.Error()), err
	}

	previousBalance := account.Balance
	txn := s.newTransaction(account, nil, domain.TransactionTypeWithdrawal, req.Amount, req.Description)

	decision := s.chain.Submit(approval.Context{Transaction: txn, Amount: req.Amount})
	switch decision.Status {
	case approval.StatusRejected:
		return commons.ErrorResponse[models.OperationResult]("transaction rejected", decision.Comment), domain.ErrApprovalRejected

	case approval.StatusAutoApproved:
		now := time.Now().UTC()
		account.Balance = previousBalance.Sub(req.Amount)
		account.LastActivityAt = &now
		txn.Status = domain.TransactionStatusCompleted
		txn.CompletedAt = &now

		if err := s.commitWithRetry(ctx, &txn, account); err != nil {
			return commons.ErrorResponse[models.OperationResult]("failed to process withdrawal", "Unable to process withdrawal right now"), err
		}

		s.notifier.NotifyObservers(ctx, s.newEvent(domain.EventWithdrawal, account, &txn, req.Amount, previousBalance,
			fmt.Sprintf("withdrawal of %s %s completed", req.Amount.StringFixed(2), account.Currency)))
		s.notifyLowBalance(ctx, account)

		return commons.SuccessResponse("transaction completed successfully", mapOperationResult(txn, account)), nil

	default:
		if err := s.createWithRetry(ctx, &txn); err != nil {
			return commons.ErrorResponse[models.OperationResult]("failed to process withdrawal", "Unable to process withdrawal right now"), err
		}
		return commons.PendingResponse(decision.Message, mapOperationResult(txn, account)), nil
	}
}

func (s *LedgerService) Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.OperationResult], error) {
	logger.Info("ledger service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.OperationResult]("validation failed", err.Error()), err
	}

	fromNumber := strings.TrimSpace(req.FromAccountNumber)
	toNumber := strings.TrimSpace(req.ToAccountNumber)
	if fromNumber == toNumber {
		err := domain.ErrSameAccount
		return commons.ErrorResponse[models.OperationResult]("validation failed", err.Error()), err
	}

	fromAccount, err := s.resolveActiveAccount(ctx, fromNumber)
	if err != nil {
		return accountErrorResponse(err), err
	}
	toAccount, err := s.resolveActiveAccount(ctx, toNumber)
	if err != nil {
		return accountErrorResponse(err), err
	}

	if fromAccount.Balance.LessThan(req.Amount) {
		err := domain.ErrInsufficientBalance
		return commons.ErrorResponse[models.OperationResult]("Insufficient balance", err.Error()), err
	}

	previousBalance := fromAccount.Balance
	txn := s.newTransaction(fromAccount, &toAccount.ID, domain.TransactionTypeTransfer, req.Amount, req.Description)

	decision := s.chain.Submit(approval.Context{Transaction: txn, Amount: req.Amount})
	switch decision.Status {
	case approval.StatusRejected:
		return commons.ErrorResponse[models.OperationResult]("transaction rejected", decision.Comment), domain.ErrApprovalRejected

	case approval.StatusAutoApproved:
		now := time.Now().UTC()
		fromAccount.Balance = previousBalance.Sub(req.Amount)
		fromAccount.LastActivityAt = &now
		toAccount.Balance = toAccount.Balance.Add(req.Amount)
		toAccount.LastActivityAt = &now
		txn.Status = domain.TransactionStatusCompleted
		txn.CompletedAt = &now

		// Both balance mutations and the status flip land in one unit.
		if err := s.commitWithRetry(ctx, &txn, fromAccount, toAccount); err != nil {
			return commons.ErrorResponse[models.OperationResult]("failed to process transfer", "Unable to process transfer right now"), err
		}

		s.notifier.NotifyObservers(ctx, s.newEvent(domain.EventTransfer, fromAccount, &txn, req.Amount, previousBalance,
			fmt.Sprintf("transfer of %s %s to account %s completed", req.Amount.StringFixed(2), fromAccount.Currency, toAccount.AccountNumber)))
		s.notifyLowBalance(ctx, fromAccount)

		return commons.SuccessResponse("transaction completed successfully", mapOperationResult(txn, fromAccount)), nil

	default:
		if err := s.createWithRetry(ctx, &txn); err != nil {
			return commons.ErrorResponse[models.OperationResult]("failed to process transfer", "Unable to process transfer right now"), err
		}
		return commons.PendingResponse(decision.Message, mapOperationResult(txn, fromAccount)), nil
	}
}

func (s *LedgerService) resolveActiveAccount(ctx context.Context, accountNumber string) (domain.Account, error) {
	account, err := s.accountRepo.GetByAccountNumber(ctx, strings.TrimSpace(accountNumber))
	if err != nil {
		return domain.Account{}, err
	}
	if !account.CanTransact() {
		return domain.Account{}, domain.ErrAccountNotActive
	}
	return account, nil
}

// newTransaction builds the PENDING record. Currency is inherited from the
// source account.
func (s *LedgerService) newTransaction(from domain.Account, toAccountID *string, txnType domain.TransactionType, amount decimal.Decimal, description string) domain.Transaction {
	return domain.Transaction{
		ID:                uuid.NewString(),
		TransactionNumber: generateTransactionNumber(),
		FromAccountID:     from.ID,
		ToAccountID:       toAccountID,
		Type:              txnType,
		Amount:            amount,
		Currency:          from.Currency,
		Status:            domain.TransactionStatusPending,
		Description:       strings.TrimSpace(description),
		CreatedAt:         time.Now().UTC(),
	}
}

func (s *LedgerService) newEvent(eventType domain.EventType, account domain.Account, txn *domain.Transaction, amount, previousBalance decimal.Decimal, message string) domain.AccountEvent {
	newBalance := account.Balance
	return domain.AccountEvent{
		Type:            eventType,
		Account:         account,
		Transaction:     txn,
		Amount:          &amount,
		PreviousBalance: &previousBalance,
		NewBalance:      &newBalance,
		Message:         message,
		Timestamp:       time.Now().UTC(),
	}
}

// notifyLowBalance fans out the secondary alert after a debiting operation
// leaves the balance under the configured threshold.
func (s *LedgerService) notifyLowBalance(ctx context.Context, account domain.Account) {
	if account.Balance.GreaterThanOrEqual(s.lowBalanceThreshold) {
		return
	}

	balance := account.Balance
	s.notifier.NotifyObservers(ctx, domain.AccountEvent{
		Type:       domain.EventLowBalance,
		Account:    account,
		NewBalance: &balance,
		Message: fmt.Sprintf("balance %s %s is below the low-balance threshold %s",
			balance.StringFixed(2), account.Currency, s.lowBalanceThreshold.StringFixed(2)),
		Timestamp: time.Now().UTC(),
	})
}

func (s *LedgerService) createWithRetry(ctx context.Context, txn *domain.Transaction) error {
	var err error
	for attempt := 0; attempt < 5; attempt++ {
		_, err = s.transactionRepo.Create(ctx, *txn)
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}
		txn.TransactionNumber = generateTransactionNumber()
	}
	return err
}

func (s *LedgerService) commitWithRetry(ctx context.Context, txn *domain.Transaction, accounts ...domain.Account) error {
	var err error
	for attempt := 0; attempt < 5; attempt++ {
		err = s.transactionRepo.CommitOperation(ctx, *txn, accounts...)
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}
		txn.TransactionNumber = generateTransactionNumber()
	}
	return err
}

func mapOperationResult(txn domain.Transaction, account domain.Account) models.OperationResult {
	return models.OperationResult{
		TransactionID:     txn.ID,
		TransactionNumber: txn.TransactionNumber,
		AccountNumber:     account.AccountNumber,
		Amount:            txn.Amount.StringFixed(2),
		NewBalance:        account.Balance.StringFixed(2),
		Currency:          txn.Currency,
		Status:            string(txn.Status),
		Timestamp:         time.Now().UTC(),
	}
}

func accountErrorResponse(err error) commons.Response[models.OperationResult] {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return commons.ErrorResponse[models.OperationResult]("Account not found")
	case errors.Is(err, domain.ErrAccountNotActive):
		return commons.ErrorResponse[models.OperationResult]("validation failed", err.Error())
	default:
		return commons.ErrorResponse[models.OperationResult]("failed to process operation", "Unable to process operation right now")
	}
}

func generateTransactionNumber() string {
	now := time.Now().UTC()
	base := now.Format("20060102150405") + fmt.Sprintf("%09d", now.Nanosecond())
	counter := atomic.AddUint32(&transactionNumberCounter, 1) % 1000000
	return "TXN" + base + fmt.Sprintf("%06d", counter)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
