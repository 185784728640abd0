package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/money"
)

const (
	numFields   = 5
	colDate     = 0
	colKind     = 1
	colCategory = 2
	colAmount   = 3
	colDesc     = 4

	separator = ","

	// DefaultDescription replaces an empty description on append.
	DefaultDescription = "No description"
)

// MarshalTransaction renders t as one ledger line, newline included.
// t must already be sanitized; see Prepare.
func MarshalTransaction(t model.Transaction) string {
	fields := make([]string, numFields)
	fields[colDate] = string(t.Date)
	fields[colKind] = t.Kind.String()
	fields[colCategory] = t.Category
	fields[colAmount] = strconv.FormatInt(t.Amount.Minor(), 10)
	fields[colDesc] = t.Description
	return strings.Join(fields, separator) + "\n"
}

// UnmarshalTransaction parses one ledger line (without its newline).
func UnmarshalTransaction(line string) (model.Transaction, error) {
	fields := strings.Split(line, separator)
	if len(fields) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(fields))
	}

	kind, err := model.ParseKind(fields[colKind])
	if err != nil {
		return model.Transaction{}, err
	}

	if fields[colCategory] == "" {
		return model.Transaction{}, errors.New("empty category")
	}

	units, err := strconv.ParseInt(fields[colAmount], 10, 64)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", fields[colAmount], err)
	}
	if units <= 0 {
		return model.Transaction{}, fmt.Errorf("amount %d is not positive", units)
	}

	return model.Transaction{
		Date:        model.Date(fields[colDate]),
		Kind:        kind,
		Category:    fields[colCategory],
		Amount:      money.FromMinor(units),
		Description: fields[colDesc],
	}, nil
}

// ReadTransactions reads every line from r. Malformed lines are skipped and
// reported one ParseError each; only a read failure aborts.
func ReadTransactions(r io.Reader) ([]model.Transaction, []ParseError, error) {
	br := bufio.NewReader(r)

	var (
		txns     []model.Transaction
		warnings []ParseError
	)
	for lineNo := 1; ; lineNo++ {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("reading ledger: %w", err)
		}

		line := strings.TrimRight(raw, "\r\n")
		if strings.TrimSpace(line) != "" {
			txn, perr := UnmarshalTransaction(line)
			if perr != nil {
				warnings = append(warnings, ParseError{Line: lineNo, Text: line, Err: perr})
			} else {
				txns = append(txns, txn)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
	}
	return txns, warnings, nil
}

// Prepare validates t and returns the form that will be stored: commas and
// line breaks in the description become spaces and an empty description
// gets a placeholder. Nothing about t is silently dropped except those
// characters.
func Prepare(t model.Transaction) (model.Transaction, error) {
	if !t.Kind.Valid() {
		return model.Transaction{}, &ValidationError{Field: "kind", Reason: "must be Income or Expense"}
	}
	if _, err := t.Date.Time(); err != nil {
		return model.Transaction{}, &ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", string(t.Date))}
	}
	if err := ValidateCategory(t.Category); err != nil {
		return model.Transaction{}, err
	}
	if !t.Amount.IsPositive() {
		return model.Transaction{}, &ValidationError{Field: "amount", Reason: fmt.Sprintf("must be positive, got %s", t.Amount)}
	}

	t.Description = sanitizeDescription(t.Description)
	return t, nil
}

// ValidateCategory rejects categories that cannot be stored in a line.
func ValidateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return &ValidationError{Field: "category", Reason: "must not be empty"}
	}
	if strings.ContainsAny(category, ",\r\n") {
		return &ValidationError{Field: "category", Reason: "must not contain commas or line breaks"}
	}
	return nil
}

var descReplacer = strings.NewReplacer(",", " ", "\r", " ", "\n", " ")

func sanitizeDescription(desc string) string {
	desc = descReplacer.Replace(desc)
	if strings.TrimSpace(desc) == "" {
		return DefaultDescription
	}
	return desc
}
