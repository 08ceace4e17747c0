package fastpath

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"k8s.io/klog/v2"
)

func (e *Executor) handleFinanceAccounts(ctx context.Context) *Result {
	accounts, err := e.finance.GetAccounts(ctx)
	if err != nil {
		klog.Warningf("账户快速路径失败: %v", err)
		return &Result{Response: fmt.Sprintf("Couldn't fetch your accounts: %v", err), Tool: "Finance"}
	}
	if len(accounts) == 0 {
		return &Result{Response: "No accounts found.", Tool: "Finance"}
	}

	total := 0.0
	var lines []string
	for _, a := range accounts {
		total += a.Balance
		lines = append(lines, fmt.Sprintf("- **%s** (%s): %s", a.Name, a.Type, dollars(a.Balance)))
	}

	header := fmt.Sprintf("**Accounts** — net worth %s\n\n", dollars(total))
	return &Result{Response: header + strings.Join(lines, "\n"), Tool: "Finance", Data: accounts}
}

func (e *Executor) handleFinanceTransactions(ctx context.Context) *Result {
	transactions, err := e.finance.GetTransactions(ctx, 10)
	if err != nil {
		klog.Warningf("交易快速路径失败: %v", err)
		return &Result{Response: fmt.Sprintf("Couldn't fetch your transactions: %v", err), Tool: "Finance"}
	}
	if len(transactions) == 0 {
		return &Result{Response: "No recent transactions.", Tool: "Finance"}
	}

	var b strings.Builder
	b.WriteString("**Recent Transactions**\n\n")
	for _, t := range transactions {
		fmt.Fprintf(&b, "- %s **%s**: %s (%s)\n", t.Date, t.Merchant, dollars(t.Amount), t.Category)
	}
	return &Result{Response: b.String(), Tool: "Finance", Data: transactions}
}

func (e *Executor) handleFinanceBudgets(ctx context.Context) *Result {
	budgets, err := e.finance.GetBudgets(ctx)
	if err != nil {
		klog.Warningf("预算快速路径失败: %v", err)
		return &Result{Response: fmt.Sprintf("Couldn't fetch your budgets: %v", err), Tool: "Finance"}
	}
	if len(budgets) == 0 {
		return &Result{Response: "No budgets set up.", Tool: "Finance"}
	}

	var b strings.Builder
	b.WriteString("**Budgets**\n\n")
	for _, bd := range budgets {
		fmt.Fprintf(&b, "- **%s**: %s of %s (%s left)\n",
			bd.Category, dollars(bd.Actual), dollars(bd.Budgeted), dollars(bd.Remaining))
	}
	return &Result{Response: b.String(), Tool: "Finance", Data: budgets}
}

func (e *Executor) handleFinanceOverview(ctx context.Context) *Result {
	cashflow, err := e.finance.GetCashflow(ctx)
	if err != nil {
		klog.Warningf("收支快速路径失败: %v", err)
		return &Result{Response: fmt.Sprintf("Couldn't fetch your cashflow: %v", err), Tool: "Finance"}
	}

	var b strings.Builder
	b.WriteString("**Cashflow Overview**\n\n")
	fmt.Fprintf(&b, "- **Income:** %s\n", dollars(cashflow.Income))
	fmt.Fprintf(&b, "- **Expenses:** %s\n", dollars(cashflow.Expenses))
	fmt.Fprintf(&b, "- **Savings:** %s (%.1f%%)", dollars(cashflow.Savings), cashflow.SavingsRate)
	return &Result{Response: b.String(), Tool: "Finance", Data: cashflow}
}

// dollars 货币格式: 两位小数加千位分隔
func dollars(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-$%s", humanize.FormatFloat("#,###.##", -amount))
	}
	return fmt.Sprintf("$%s", humanize.FormatFloat("#,###.##", amount))
}
