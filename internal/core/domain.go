package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Checking   AccountType = "checking"
	Savings    AccountType = "savings"
	Credit     AccountType = "credit"
	Cash       AccountType = "cash"
	Investment AccountType = "investment"
)

const (
	dateLayout           = "2006-01-02"
	maxDescriptionLength = 200
	maxNameLength        = 100
)

type (
	TransactionType string
	AccountType     string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Account struct {
		ID       string      `json:"id"`
		Name     string      `json:"name"`
		Type     AccountType `json:"type"`
		Balance  Money       `json:"balance"`
		Color    string      `json:"color"`
		BankName string      `json:"bankName,omitempty"`
	}

	// Transaction is either account-funded or budget-funded. HasBudget is
	// fixed when the transaction is recorded.
	Transaction struct {
		ID          string          `json:"id"`
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        Date            `json:"date"`
		AccountID   string          `json:"accountId"`
		HasBudget   bool            `json:"hasBudget"`
	}

	Budget struct {
		ID       string `json:"id"`
		Category string `json:"category"`
		Limit    Money  `json:"limit"`
		Spent    Money  `json:"spent"`
	}
)

var (
	ErrInvalidDay         = errors.New("invalid day")
	ErrInvalidMonth       = errors.New("invalid month")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrAmountTooLarge     = errors.New("amount too large (max 100,000,000,000.00)")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrEmptyCategory      = errors.New("empty category")
	ErrEmptyName          = errors.New("empty account name")
	ErrNameTooLong        = errors.New("account name too long (max 100 characters)")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrInvalidTxType      = errors.New("invalid transaction type")
	ErrIncomeWithBudget   = errors.New("income cannot be budget-funded")
	ErrInvalidMonthKey    = errors.New("invalid month key")
)

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	// Older documents may carry a full timestamp.
	if len(s) > len(dateLayout) {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			*d = NewDate(t.Year(), int(t.Month()), t.Day())
			return nil
		}
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Validate accepts positive amounts up to MaxAmountCents.
func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	if m.Cents > MaxAmountCents {
		return ErrAmountTooLarge
	}
	return nil
}

// ValidateBalance accepts signed amounts within MaxAmountCents.
func (m Money) ValidateBalance() error {
	if m.Cents > MaxAmountCents || m.Cents < -MaxAmountCents {
		return ErrAmountTooLarge
	}
	return nil
}

func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// AccountTypes returns every supported account type.
func AccountTypes() []AccountType {
	return []AccountType{Checking, Savings, Credit, Cash, Investment}
}

func (t AccountType) IsValid() bool {
	for _, at := range AccountTypes() {
		if t == at {
			return true
		}
	}
	return false
}

// Validate checks the transaction fields. Cross-entity rules (account and
// budget existence) belong to the ledger.
func (t Transaction) Validate() error {
	if !t.Type.IsValid() {
		return ErrInvalidTxType
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if len(t.Description) > maxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if t.Type == Income && t.HasBudget {
		return ErrIncomeWithBudget
	}
	return nil
}

// BudgetFunded reports whether the transaction draws on a budget rather
// than an account.
func (t Transaction) BudgetFunded() bool {
	return t.Type == Expense && t.HasBudget
}

func (a Account) Validate() error {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > maxNameLength {
		return ErrNameTooLong
	}
	if !a.Type.IsValid() {
		return ErrInvalidAccountType
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if err := b.Limit.Validate(); err != nil {
		return err
	}
	return nil
}

// Utilization returns spent as a percentage of the limit.
func (b Budget) Utilization() float64 {
	if b.Limit.Cents <= 0 {
		return 0
	}
	return float64(b.Spent.Cents) / float64(b.Limit.Cents) * 100
}

func (b Budget) OverBudget() bool {
	return b.Spent.Cents > b.Limit.Cents
}
