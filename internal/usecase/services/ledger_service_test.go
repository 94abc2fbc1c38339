package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/adapter/repository/memory"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/approval"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/models"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/notification"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/usecase/services"
)

type ledgerFixture struct {
	service          *services.LedgerService
	accountRepo      *memory.AccountRepository
	transactionRepo  *memory.TransactionRepository
	auditRepo        *memory.AuditRecordRepository
	notificationRepo *memory.NotificationRepository
}

func newLedgerFixture(t *testing.T, chain *approval.Chain) *ledgerFixture {
	t.Helper()

	accountRepo := memory.NewAccountRepository()
	transactionRepo := memory.NewTransactionRepository(accountRepo)
	auditRepo := memory.NewAuditRecordRepository()
	notificationRepo := memory.NewNotificationRepository()

	notifier := notification.NewSubject(
		notification.NewAuditLogger(auditRepo),
		notification.NewEmailNotifier(notificationRepo),
		notification.NewInAppNotifier(notificationRepo),
	)

	return &ledgerFixture{
		service: services.NewLedgerService(
			accountRepo, transactionRepo, chain, notifier, decimal.NewFromInt(100)),
		accountRepo:      accountRepo,
		transactionRepo:  transactionRepo,
		auditRepo:        auditRepo,
		notificationRepo: notificationRepo,
	}
}

func (f *ledgerFixture) seedAccount(t *testing.T, accountNumber, balance string) domain.Account {
	t.Helper()

	account, err := f.accountRepo.Create(context.Background(), domain.Account{
		AccountNumber: accountNumber,
		Type:          domain.AccountTypeChecking,
		Status:        domain.AccountStatusActive,
		Balance:       decimal.RequireFromString(balance),
		Currency:      "USD",
		OpenedAt:      time.Now().UTC().AddDate(0, -1, 0),
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return account
}

func defaultChain() *approval.Chain {
	return approval.NewDefaultChain(approval.DefaultThresholds())
}

func TestDepositIncreasesBalance(t *testing.T) {
	f := newLedgerFixture(t, defaultChain())
	account := f.seedAccount(t, "1000000001", "100")

	resp, err := f.service.Deposit(context.Background(), models.DepositRequest{
		AccountNumber: "1000000001",
		Amount:        decimal.RequireFromString("500"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got %q", resp.Message)
	}
	if resp.Data.NewBalance != "600.00" {
		t.Fatalf("expected new balance 600.00, got %s", resp.Data.NewBalance)
	}

	stored, err := f.accountRepo.GetByID(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Balance.StringFixed(2) != "600.00" {
		t.Fatalf("expected stored balance 600.00, got %s", stored.Balance.StringFixed(2))
	}

	transactions, err := f.transactionRepo.ListByAccountID(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("expected exactly one transaction, got %d", len(transactions))
	}
	if transactions[0].Type != domain.TransactionTypeDeposit || transactions[0].Status != domain.TransactionStatusCompleted {
		t.Fatalf("expected a COMPLETED DEPOSIT, got %s %s", transactions[0].Type, transactions[0].Status)
	}
}

func TestDepositUnknownAccount(t *testing.T) {
	f := newLedgerFixture(t, defaultChain())

	_, err := f.service.Deposit(context.Background(), models.DepositRequest{
		AccountNumber: "9999999999",
		Amount:        decimal.NewFromInt(10),
	})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestDepositToFrozenAccount(t *testing.T) {
	f := newLedgerFixture(t, defaultChain())
	account := f.seedAccount(t, "1000000001", "100")
	account.Status = domain.AccountStatusFrozen
	if _, err := f.accountRepo.Update(context.Background(), account); err != nil {
		t.Fatalf("freeze account: %v", err)
	}

	_, err := f.service.Deposit(context.Background(), models.DepositRequest{
		AccountNumber: "1000000001",
		Amount:        decimal.NewFromInt(10),
	})
	if !errors.Is(err, domain.ErrAccountNotActive) {
		t.Fatalf("expected ErrAccountNotActive, got %v", err)
	}
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	f := newLedgerFixture(t, defaultChain())
	f.seedAccount(t, "1000000001", "100")

	_, err := f.service.Deposit(context.Background(), models.DepositRequest{
		AccountNumber: "1000000001",
		Amount:        decimal.Zero,
	})
	if err == nil {
		t.Fatal("expected validation error for zero amount")
	}
}

func TestWithdrawInsufficientBalance(t *testing.T) {
	f := newLedgerFixture(t, defaultChain())
	account := f.seedAccount(t, "1000000001", "100")

	_, err := f.service.Withdraw(context.Background(), models.WithdrawRequest{
		AccountNumber: "1000000001",
		Amount:        decimal.RequireFromString("100.01"),
	})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	stored, _ := f.accountRepo.GetByID(context.Background(), account.ID)
	if stored.Balance.StringFixed(2) != "100.00" {
		t.Fatalf("balance must be unchanged, got %s", stored.Balance.StringFixed(2))
	}

	transactions, _ := f.transactionRepo.ListByAccountID(context.Background(), account.ID)
	if len(transactions) != 0 {
		t.Fatalf("expected no transaction record, got %d", len(transactions))
	}
}

func TestWithdrawEmitsLowBalanceAlert(t *testing.T) {
	f := newLedgerFixture(t, defaultChain())
	f.seedAccount(t, "1000000001", "150")

	resp, err := f.service.Withdraw(context.Background(), models.WithdrawRequest{
		AccountNumber: "1000000001",
		Amount:        decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Data.NewBalance != "50.00" {
		t.Fatalf("expected new balance 50.00, got %s", resp.Data.NewBalance)
	}

	var sawWithdrawal, sawAlert bool
	for _, record := range f.auditRepo.All() {
		switch record.Action {
		case domain.AuditActionFundsDebited:
			sawWithdrawal = true
		case domain.AuditActionBalanceAlert:
			sawAlert = true
		}
	}
	if !sawWithdrawal || !sawAlert {
		t.Fatalf("expected withdrawal and low-balance audit records, got %+v", f.auditRepo.All())
	}
}

func TestTransferMovesFundsAtomically(t *testing.T) {
	f := newLedgerFixture(t, defaultChain())
	from := f.seedAccount(t, "1000000001", "1000")
	to := f.seedAccount(t, "1000000002", "100")

	resp, err := f.service.Transfer(context.Background(), models.TransferRequest{
		FromAccountNumber: "1000000001",
		ToAccountNumber:   "1000000002",
		Amount:            decimal.NewFromInt(250),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got %q", resp.Message)
	}

	storedFrom, _ := f.accountRepo.GetByID(context.Background(), from.ID)
	storedTo, _ := f.accountRepo.GetByID(context.Background(), to.ID)
	if storedFrom.Balance.StringFixed(2) != "750.00" {
		t.Fatalf("expected source balance 750.00, got %s", storedFrom.Balance.StringFixed(2))
	}
	if storedTo.Balance.StringFixed(2) != "350.00" {
		t.Fatalf("expected destination balance 350.00, got %s", storedTo.Balance.StringFixed(2))
	}

	transactions, _ := f.transactionRepo.ListByAccountID(context.Background(), from.ID)
	if len(transactions) != 1 {
		t.Fatalf("expected one transfer transaction, got %d", len(transactions))
	}
	txn := transactions[0]
	if txn.Type != domain.TransactionTypeTransfer || txn.Status != domain.TransactionStatusCompleted {
		t.Fatalf("expected a COMPLETED TRANSFER, got %s %s", txn.Type, txn.Status)
	}
	if txn.ToAccountID == nil || *txn.ToAccountID != to.ID {
		t.Fatal("expected the transfer to reference the destination account")
	}
}

func TestTransferToSameAccount(t *testing.T) {
	f := newLedgerFixture(t, defaultChain())
	f.seedAccount(t, "1000000001", "1000")

	_, err := f.service.Transfer(context.Background(), models.TransferRequest{
		FromAccountNumber: "1000000001",
		ToAccountNumber:   "1000000001",
		Amount:            decimal.NewFromInt(50),
	})
	if !errors.Is(err, domain.ErrSameAccount) {
		t.Fatalf("expected ErrSameAccount, got %v", err)
	}
}

func TestLargeDepositStaysPending(t *testing.T) {
	f := newLedgerFixture(t, defaultChain())
	account := f.seedAccount(t, "1000000001", "100")

	resp, err := f.service.Deposit(context.Background(), models.DepositRequest{
		AccountNumber: "1000000001",
		Amount:        decimal.NewFromInt(10000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success {
		t.Fatalf("a held transaction is still an accepted request, got %q", resp.Message)
	}
	if resp.Data.Status != string(domain.TransactionStatusPending) {
		t.Fatalf("expected PENDING status, got %s", resp.Data.Status)
	}
	if resp.Data.NewBalance != "100.00" {
		t.Fatalf("pending operations must not move the balance, got %s", resp.Data.NewBalance)
	}

	transactions, _ := f.transactionRepo.ListByAccountID(context.Background(), account.ID)
	if len(transactions) != 1 || transactions[0].Status != domain.TransactionStatusPending {
		t.Fatalf("expected one PENDING transaction, got %+v", transactions)
	}

	if len(f.auditRepo.All()) != 0 {
		t.Fatalf("pending operations must not fan out events, got %d", len(f.auditRepo.All()))
	}
}

type rejectAllHandler struct{}

func (rejectAllHandler) Name() string                    { return "reject-all" }
func (rejectAllHandler) CanHandle(approval.Context) bool { return true }
func (rejectAllHandler) Process(approval.Context) approval.Result {
	return approval.Result{Status: approval.StatusRejected, Comment: "rejected by policy"}
}

func TestRejectedTransactionLeavesNoRecord(t *testing.T) {
	f := newLedgerFixture(t, approval.NewChain(rejectAllHandler{}))
	account := f.seedAccount(t, "1000000001", "500")

	_, err := f.service.Withdraw(context.Background(), models.WithdrawRequest{
		AccountNumber: "1000000001",
		Amount:        decimal.NewFromInt(50),
	})
	if !errors.Is(err, domain.ErrApprovalRejected) {
		t.Fatalf("expected ErrApprovalRejected, got %v", err)
	}

	stored, _ := f.accountRepo.GetByID(context.Background(), account.ID)
	if stored.Balance.StringFixed(2) != "500.00" {
		t.Fatalf("balance must be unchanged, got %s", stored.Balance.StringFixed(2))
	}

	// Rejection raises before anything is persisted.
	transactions, _ := f.transactionRepo.ListByAccountID(context.Background(), account.ID)
	if len(transactions) != 0 {
		t.Fatalf("expected no persisted record of the rejection, got %d", len(transactions))
	}
}

type brokenObserver struct{}

func (brokenObserver) Name() string { return "broken" }

func (brokenObserver) Update(context.Context, domain.AccountEvent) error {
	return errors.New("observer down")
}

func TestObserverFailureDoesNotFailOperation(t *testing.T) {
	accountRepo := memory.NewAccountRepository()
	transactionRepo := memory.NewTransactionRepository(accountRepo)
	auditRepo := memory.NewAuditRecordRepository()

	notifier := notification.NewSubject(
		brokenObserver{},
		notification.NewAuditLogger(auditRepo),
	)
	service := services.NewLedgerService(
		accountRepo, transactionRepo, defaultChain(), notifier, decimal.NewFromInt(100))

	if _, err := accountRepo.Create(context.Background(), domain.Account{
		AccountNumber: "1000000001",
		Type:          domain.AccountTypeSavings,
		Status:        domain.AccountStatusActive,
		Balance:       decimal.NewFromInt(100),
		Currency:      "USD",
		OpenedAt:      time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	resp, err := service.Deposit(context.Background(), models.DepositRequest{
		AccountNumber: "1000000001",
		Amount:        decimal.NewFromInt(25),
	})
	if err != nil {
		t.Fatalf("observer failures must not surface: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success despite broken observer, got %q", resp.Message)
	}
	if len(auditRepo.All()) != 1 {
		t.Fatalf("expected the audit logger to still receive the event, got %d", len(auditRepo.All()))
	}
}
