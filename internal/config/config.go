package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=core_banking_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"

type Config struct {
	DatabaseDSN   string
	MigrationsDir string
	Approval      ApprovalConfig
	Ledger        LedgerConfig
	Interest      InterestConfig
}

// ApprovalConfig carries the approval chain thresholds. They are runtime
// configuration, never compiled-in constants.
type ApprovalConfig struct {
	AutoLimit   decimal.Decimal
	ManagerMin  decimal.Decimal
	ManagerMax  decimal.Decimal
	DirectorMin decimal.Decimal
}

type LedgerConfig struct {
	LowBalanceThreshold decimal.Decimal
}

// InterestConfig holds default annual rates per account type plus the bonus
// and penalty adjustor parameters. An account's own rate, when set,
// overrides the default for its type.
type InterestConfig struct {
	SavingsAnnualRate  decimal.Decimal
	CheckingAnnualRate decimal.Decimal
	LoanAnnualRate     decimal.Decimal

	BonusBalanceMin      decimal.Decimal
	BonusAnnualRate      decimal.Decimal
	LoyaltyMonths        int
	LoyaltyAnnualRate    decimal.Decimal
	PenaltyBalanceMax    decimal.Decimal
	PenaltyLowBalanceFee decimal.Decimal
	InactivityDays       int
	PenaltyInactivityFee decimal.Decimal
}

func Load() (Config, error) {
	conn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if conn == "" {
		conn = defaultConnectionString
	}

	migrationsDir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))
	if migrationsDir == "" {
		migrationsDir = filepath.Join("migrations")
	}

	approval, err := loadApprovalConfig()
	if err != nil {
		return Config{}, err
	}

	lowBalance, err := decimalEnv("LOW_BALANCE_THRESHOLD", "100")
	if err != nil {
		return Config{}, err
	}

	interest, err := loadInterestConfig()
	if err != nil {
		return Config{}, err
	}

	return Config{
		DatabaseDSN:   normalizeConnectionString(conn),
		MigrationsDir: migrationsDir,
		Approval:      approval,
		Ledger:        LedgerConfig{LowBalanceThreshold: lowBalance},
		Interest:      interest,
	}, nil
}

func loadApprovalConfig() (ApprovalConfig, error) {
	autoLimit, err := decimalEnv("APPROVAL_AUTO_LIMIT", "10000")
	if err != nil {
		return ApprovalConfig{}, err
	}
	managerMin, err := decimalEnv("APPROVAL_MANAGER_MIN", "1000")
	if err != nil {
		return ApprovalConfig{}, err
	}
	managerMax, err := decimalEnv("APPROVAL_MANAGER_MAX", "10000")
	if err != nil {
		return ApprovalConfig{}, err
	}
	directorMin, err := decimalEnv("APPROVAL_DIRECTOR_MIN", "10000")
	if err != nil {
		return ApprovalConfig{}, err
	}

	return ApprovalConfig{
		AutoLimit:   autoLimit,
		ManagerMin:  managerMin,
		ManagerMax:  managerMax,
		DirectorMin: directorMin,
	}, nil
}

func loadInterestConfig() (InterestConfig, error) {
	cfg := InterestConfig{
		LoyaltyMonths:  12,
		InactivityDays: 90,
	}

	var err error
	if cfg.SavingsAnnualRate, err = decimalEnv("INTEREST_SAVINGS_ANNUAL_RATE", "0.03"); err != nil {
		return InterestConfig{}, err
	}
	if cfg.CheckingAnnualRate, err = decimalEnv("INTEREST_CHECKING_ANNUAL_RATE", "0.005"); err != nil {
		return InterestConfig{}, err
	}
	if cfg.LoanAnnualRate, err = decimalEnv("INTEREST_LOAN_ANNUAL_RATE", "0.12"); err != nil {
		return InterestConfig{}, err
	}
	if cfg.BonusBalanceMin, err = decimalEnv("INTEREST_BONUS_BALANCE_MIN", "50000"); err != nil {
		return InterestConfig{}, err
	}
	if cfg.BonusAnnualRate, err = decimalEnv("INTEREST_BONUS_ANNUAL_RATE", "0.005"); err != nil {
		return InterestConfig{}, err
	}
	if cfg.LoyaltyAnnualRate, err = decimalEnv("INTEREST_LOYALTY_ANNUAL_RATE", "0.0025"); err != nil {
		return InterestConfig{}, err
	}
	if cfg.PenaltyBalanceMax, err = decimalEnv("INTEREST_PENALTY_BALANCE_MAX", "100"); err != nil {
		return InterestConfig{}, err
	}
	if cfg.PenaltyLowBalanceFee, err = decimalEnv("INTEREST_PENALTY_LOW_BALANCE_FEE", "0.25"); err != nil {
		return InterestConfig{}, err
	}
	if cfg.PenaltyInactivityFee, err = decimalEnv("INTEREST_PENALTY_INACTIVITY_FEE", "0.50"); err != nil {
		return InterestConfig{}, err
	}

	return cfg, nil
}

func decimalEnv(key string, fallback string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		raw = fallback
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %s=%q: %w", key, raw, err)
	}

	return value, nil
}

func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
