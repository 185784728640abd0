package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/fintrack-dev/fintrack/internal/money"
)

// Kind tells income from expense. The zero value is not a valid kind.
type Kind uint8

const (
	KindIncome Kind = iota + 1
	KindExpense
)

func (k Kind) String() string {
	switch k {
	case KindIncome:
		return "Income"
	case KindExpense:
		return "Expense"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// ParseKind accepts the stored spellings "Income" and "Expense".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "Income":
		return KindIncome, nil
	case "Expense":
		return KindExpense, nil
	default:
		return 0, fmt.Errorf("unknown transaction kind %q", s)
	}
}

// ParseKindFold is ParseKind without case sensitivity, for user input.
func ParseKindFold(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return KindIncome, nil
	case "expense":
		return KindExpense, nil
	default:
		return 0, fmt.Errorf("unknown transaction kind %q (want income or expense)", s)
	}
}

// Transaction is one line of the ledger. Records are never edited; their
// identity is their position in the ledger.
type Transaction struct {
	Date        Date
	Kind        Kind
	Category    string
	Amount      money.Money
	Description string
}

// Budget is a monthly spending limit for one category.
type Budget struct {
	Category string
	Limit    money.Money
}

// DateFormat is the stored layout of Transaction.Date.
const DateFormat = "2006-01-02"

// Date is the day a transaction happened, kept as its stored YYYY-MM-DD
// text. Loaded dates are not validated so that month prefix matching
// behaves the same on hand-edited ledgers.
type Date string

// NewDate formats t as a Date.
func NewDate(t time.Time) Date {
	return Date(t.Format(DateFormat))
}

// Time parses the date.
func (d Date) Time() (time.Time, error) {
	t, err := time.Parse(DateFormat, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", string(d), err)
	}
	return t, nil
}

// HasMonth reports whether the date text starts with the month key.
func (d Date) HasMonth(m MonthKey) bool {
	return strings.HasPrefix(string(d), string(m))
}

func (d Date) String() string { return string(d) }
