package approval_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/approval"
)

func submit(t *testing.T, chain *approval.Chain, amount string) approval.Result {
	t.Helper()
	return chain.Submit(approval.Context{Amount: decimal.RequireFromString(amount)})
}

func TestDefaultChainAutoApprovesBelowLimit(t *testing.T) {
	chain := approval.NewDefaultChain(approval.DefaultThresholds())

	result := submit(t, chain, "9999.99")
	if result.Status != approval.StatusAutoApproved {
		t.Fatalf("expected AUTO_APPROVED for 9999.99, got %s", result.Status)
	}
	if result.ApprovedAt.IsZero() {
		t.Fatal("expected ApprovedAt to be set on auto approval")
	}
}

func TestDefaultChainHoldsExactlyAtLimit(t *testing.T) {
	chain := approval.NewDefaultChain(approval.DefaultThresholds())

	result := submit(t, chain, "10000.00")
	if result.Status != approval.StatusPending {
		t.Fatalf("expected PENDING for 10000.00, got %s", result.Status)
	}
	if !strings.Contains(result.Comment, "director") {
		t.Fatalf("expected director approval comment, got %q", result.Comment)
	}
}

func TestDefaultChainRoutesLargeAmountsToDirector(t *testing.T) {
	chain := approval.NewDefaultChain(approval.DefaultThresholds())

	result := submit(t, chain, "50000")
	if result.Status != approval.StatusPending {
		t.Fatalf("expected PENDING for 50000, got %s", result.Status)
	}
	if !strings.Contains(result.Comment, "director") {
		t.Fatalf("expected director approval comment, got %q", result.Comment)
	}
}

func TestManagerHandlerWindowWithLoweredAutoLimit(t *testing.T) {
	thresholds := approval.Thresholds{
		AutoLimit:   decimal.NewFromInt(1000),
		ManagerMin:  decimal.NewFromInt(1000),
		ManagerMax:  decimal.NewFromInt(10000),
		DirectorMin: decimal.NewFromInt(10000),
	}
	chain := approval.NewDefaultChain(thresholds)

	result := submit(t, chain, "5000")
	if result.Status != approval.StatusPending {
		t.Fatalf("expected PENDING for 5000, got %s", result.Status)
	}
	if !strings.Contains(result.Comment, "manager") {
		t.Fatalf("expected manager approval comment, got %q", result.Comment)
	}
}

func TestChainStopsAtFirstEligibleHandler(t *testing.T) {
	t1 := approval.DefaultThresholds()
	// Auto and director both match 10000 when the auto limit is raised; the
	// earlier handler must win.
	t1.AutoLimit = decimal.NewFromInt(20000)
	chain := approval.NewDefaultChain(t1)

	result := submit(t, chain, "10000")
	if result.Status != approval.StatusAutoApproved {
		t.Fatalf("expected first eligible handler (auto) to win, got %s", result.Status)
	}
}

func TestEmptyChainFallsBackToPending(t *testing.T) {
	chain := approval.NewChain()

	result := submit(t, chain, "5")
	if result.Status != approval.StatusPending {
		t.Fatalf("expected PENDING fallback, got %s", result.Status)
	}
	if result.Message == "" {
		t.Fatal("expected fallback message")
	}
}

func TestChainAppendKeepsOrder(t *testing.T) {
	base := approval.NewChain(approval.NewManagerApprovalHandler(decimal.NewFromInt(0), decimal.NewFromInt(100)))
	chain := base.Append(approval.NewAutoApprovalHandler(decimal.NewFromInt(1000)))

	result := submit(t, chain, "50")
	if result.Status != approval.StatusPending {
		t.Fatalf("expected the earlier manager handler to win, got %s", result.Status)
	}
}
