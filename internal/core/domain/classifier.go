package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
)

// AccountGroup is the closed set of ledger groups a user can file an account under.
type AccountGroup string

const (
	GroupFixedAssets         AccountGroup = "FIXED_ASSETS"
	GroupCurrentAssets       AccountGroup = "CURRENT_ASSETS"
	GroupCashInHand          AccountGroup = "CASH_IN_HAND"
	GroupBankAccounts        AccountGroup = "BANK_ACCOUNTS"
	GroupSundryDebtors       AccountGroup = "SUNDRY_DEBTORS"
	GroupStockInHand         AccountGroup = "STOCK_IN_HAND"
	GroupAssets              AccountGroup = "ASSETS"
	GroupInvestments         AccountGroup = "INVESTMENTS"
	GroupLoansAssets         AccountGroup = "LOANS_ASSETS"
	GroupCapital             AccountGroup = "CAPITAL"
	GroupReservesSurplus     AccountGroup = "RESERVES_SURPLUS"
	GroupCurrentLiabilities  AccountGroup = "CURRENT_LIABILITIES"
	GroupSundryCreditors     AccountGroup = "SUNDRY_CREDITORS"
	GroupLiabilities         AccountGroup = "LIABILITIES"
	GroupLongTermLiabilities AccountGroup = "LONG_TERM_LIABILITIES"
	GroupLoansLiability      AccountGroup = "LOANS_LIABILITY"
	GroupProvisions          AccountGroup = "PROVISIONS"
	GroupDutiesTaxes         AccountGroup = "DUTIES_TAXES"
	GroupSalesAccounts       AccountGroup = "SALES_ACCOUNTS"
	GroupDirectIncome        AccountGroup = "DIRECT_INCOME"
	GroupIndirectIncome      AccountGroup = "INDIRECT_INCOME"
	GroupIncome              AccountGroup = "INCOME"
	GroupPurchaseAccounts    AccountGroup = "PURCHASE_ACCOUNTS"
	GroupDirectExpenses      AccountGroup = "DIRECT_EXPENSES"
	GroupIndirectExpenses    AccountGroup = "INDIRECT_EXPENSES"
	GroupExpenses            AccountGroup = "EXPENSES"
)

// ReportCategory is the report bucket a group rolls up into.
type ReportCategory string

const (
	CategoryFixedAssets         ReportCategory = "FIXED_ASSETS"
	CategoryCurrentAssets       ReportCategory = "CURRENT_ASSETS"
	CategoryInvestments         ReportCategory = "INVESTMENTS"
	CategoryLoansAssets         ReportCategory = "LOANS_ASSETS"
	CategoryCapital             ReportCategory = "CAPITAL"
	CategoryCurrentLiabilities  ReportCategory = "CURRENT_LIABILITIES"
	CategoryLongTermLiabilities ReportCategory = "LONG_TERM_LIABILITIES"
	CategoryProvisions          ReportCategory = "PROVISIONS"
	CategoryDirectIncome        ReportCategory = "DIRECT_INCOME"
	CategoryIndirectIncome      ReportCategory = "INDIRECT_INCOME"
	CategoryDirectExpenses      ReportCategory = "DIRECT_EXPENSES"
	CategoryIndirectExpenses    ReportCategory = "INDIRECT_EXPENSES"
)

// GroupInfo is one row of the classification table.
type GroupInfo struct {
	Group    AccountGroup   `json:"group"`
	Nature   AccountNature  `json:"nature"`
	Category ReportCategory `json:"category"`
}

// Classifier maps ledger groups to their nature and report category.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	groups map[AccountGroup]GroupInfo
}

// NewClassifier builds the classification table.
func NewClassifier() *Classifier {
	rows := []GroupInfo{
		{GroupFixedAssets, Asset, CategoryFixedAssets},
		{GroupCurrentAssets, Asset, CategoryCurrentAssets},
		{GroupCashInHand, Asset, CategoryCurrentAssets},
		{GroupBankAccounts, Asset, CategoryCurrentAssets},
		{GroupSundryDebtors, Asset, CategoryCurrentAssets},
		{GroupStockInHand, Asset, CategoryCurrentAssets},
		{GroupAssets, Asset, CategoryCurrentAssets},
		{GroupInvestments, Asset, CategoryInvestments},
		{GroupLoansAssets, Asset, CategoryLoansAssets},
		{GroupCapital, Equity, CategoryCapital},
		{GroupReservesSurplus, Equity, CategoryCapital},
		{GroupCurrentLiabilities, Liability, CategoryCurrentLiabilities},
		{GroupSundryCreditors, Liability, CategoryCurrentLiabilities},
		{GroupLiabilities, Liability, CategoryCurrentLiabilities},
		{GroupLongTermLiabilities, Liability, CategoryLongTermLiabilities},
		{GroupLoansLiability, Liability, CategoryLongTermLiabilities},
		{GroupProvisions, Liability, CategoryProvisions},
		{GroupDutiesTaxes, Liability, CategoryProvisions},
		{GroupSalesAccounts, Income, CategoryDirectIncome},
		{GroupDirectIncome, Income, CategoryDirectIncome},
		{GroupIndirectIncome, Income, CategoryIndirectIncome},
		{GroupIncome, Income, CategoryIndirectIncome},
		{GroupPurchaseAccounts, Expense, CategoryDirectExpenses},
		{GroupDirectExpenses, Expense, CategoryDirectExpenses},
		{GroupIndirectExpenses, Expense, CategoryIndirectExpenses},
		{GroupExpenses, Expense, CategoryIndirectExpenses},
	}
	c := &Classifier{groups: make(map[AccountGroup]GroupInfo, len(rows))}
	for _, r := range rows {
		c.groups[r.Group] = r
	}
	return c
}

// NormalizeGroup accepts either the enum spelling or a display name
// ("Sundry Debtors", "sundry-debtors") and returns the enum spelling.
func NormalizeGroup(raw string) AccountGroup {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.NewReplacer("-", "_", "&", "").Replace(s)
	return AccountGroup(whitespaceRun.ReplaceAllString(s, "_"))
}

// Lookup returns the table row for a group. Unknown groups fail with
// apperrors.ErrInvalidAccountGroup; there is no fallback nature.
func (c *Classifier) Lookup(raw string) (GroupInfo, error) {
	g := NormalizeGroup(raw)
	info, ok := c.groups[g]
	if !ok {
		return GroupInfo{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidAccountGroup, raw)
	}
	return info, nil
}

// Classify returns the nature of a group.
func (c *Classifier) Classify(raw string) (AccountNature, error) {
	info, err := c.Lookup(raw)
	if err != nil {
		return "", err
	}
	return info.Nature, nil
}

// Category returns the report bucket for a group, or "" if unknown.
func (c *Classifier) Category(g AccountGroup) ReportCategory {
	return c.groups[g].Category
}

// NormalSide is shorthand for nature.NormalSide().
func (c *Classifier) NormalSide(n AccountNature) Side {
	return n.NormalSide()
}

// Groups lists the table sorted by nature then group.
func (c *Classifier) Groups() []GroupInfo {
	out := make([]GroupInfo, 0, len(c.groups))
	for _, info := range c.groups {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Nature != out[j].Nature {
			return out[i].Nature < out[j].Nature
		}
		return out[i].Group < out[j].Group
	})
	return out
}
