package budget

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/money"
)

const (
	numFields   = 2
	colCategory = 0
	colLimit    = 1
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("invalid budget")

// ValidationError rejects a budget before the store is touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid budget: %s %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) hold for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validate checks a budget can be stored.
func Validate(b model.Budget) error {
	if strings.TrimSpace(b.Category) == "" {
		return &ValidationError{Field: "category", Reason: "must not be empty"}
	}
	if strings.ContainsAny(b.Category, ",\r\n") {
		return &ValidationError{Field: "category", Reason: "must not contain commas or line breaks"}
	}
	if !b.Limit.IsPositive() {
		return &ValidationError{Field: "limit", Reason: fmt.Sprintf("must be positive, got %s", b.Limit)}
	}
	return nil
}

// MarshalBudget renders b as one line, newline included.
func MarshalBudget(b model.Budget) string {
	return b.Category + "," + strconv.FormatInt(b.Limit.Minor(), 10) + "\n"
}

// UnmarshalBudget parses one budget line (without its newline).
func UnmarshalBudget(line string) (model.Budget, error) {
	fields := strings.Split(line, ",")
	if len(fields) != numFields {
		return model.Budget{}, fmt.Errorf("expected %d fields, got %d", numFields, len(fields))
	}
	if fields[colCategory] == "" {
		return model.Budget{}, errors.New("empty category")
	}
	units, err := strconv.ParseInt(fields[colLimit], 10, 64)
	if err != nil {
		return model.Budget{}, fmt.Errorf("parsing limit %q: %w", fields[colLimit], err)
	}
	if units < 0 {
		return model.Budget{}, fmt.Errorf("limit %d is negative", units)
	}
	return model.Budget{Category: fields[colCategory], Limit: money.FromMinor(units)}, nil
}

// ReadBudgets returns the well-formed lines of r in file order. Malformed
// lines are dropped without complaint.
func ReadBudgets(r io.Reader) ([]model.Budget, error) {
	br := bufio.NewReader(r)

	var budgets []model.Budget
	for {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading budgets: %w", err)
		}
		line := strings.TrimRight(raw, "\r\n")
		if strings.TrimSpace(line) != "" {
			if b, perr := UnmarshalBudget(line); perr == nil {
				budgets = append(budgets, b)
			}
		}
		if errors.Is(err, io.EOF) {
			return budgets, nil
		}
	}
}

// Render writes every budget into a single buffer so the file can be
// replaced in one step.
func Render(budgets []model.Budget) []byte {
	var buf bytes.Buffer
	for _, b := range budgets {
		buf.WriteString(MarshalBudget(b))
	}
	return buf.Bytes()
}

// Upsert replaces the first entry for b.Category (exact, case-sensitive
// match) and drops any later duplicates, or appends b when absent. Other
// entries keep their order.
func Upsert(budgets []model.Budget, b model.Budget) []model.Budget {
	out := make([]model.Budget, 0, len(budgets)+1)
	replaced := false
	for _, existing := range budgets {
		if existing.Category != b.Category {
			out = append(out, existing)
			continue
		}
		if !replaced {
			out = append(out, b)
			replaced = true
		}
	}
	if !replaced {
		out = append(out, b)
	}
	return out
}

// ToMap indexes budgets by category; a later duplicate wins.
func ToMap(budgets []model.Budget) map[string]money.Money {
	m := make(map[string]money.Money, len(budgets))
	for _, b := range budgets {
		m[b.Category] = b.Limit
	}
	return m
}
