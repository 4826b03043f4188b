package errs

import (
	"errors"
	"fmt"

	"github.com/govalues/money"
)

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")
	// ErrUnprocessable is used for semantic validation failures (HTTP 422)
	ErrUnprocessable = errors.New("unprocessable")
	// ErrCurrencyMismatch indicates arithmetic between amounts of different currencies.
	ErrCurrencyMismatch = errors.New("currency_mismatch")
	// ErrReferenceNotFound indicates an entry detail names an unknown account,
	// invoice or payment.
	ErrReferenceNotFound = errors.New("reference_not_found")
)

// DebitCreditMismatchError reports an entry whose debit and credit sides
// do not sum to the same amount. Such an entry is never persisted.
type DebitCreditMismatchError struct {
	Debit  money.Amount
	Credit money.Amount
}

func (e *DebitCreditMismatchError) Error() string {
	return fmt.Sprintf("debit/credit mismatch: debit %v, credit %v", e.Debit, e.Credit)
}

// DebtorAmountMismatchError reports that postings to debtor accounts do not
// reconcile with the sale invoices the entry claims to settle.
type DebtorAmountMismatchError struct {
	Expected money.Amount
	Actual   money.Amount
}

func (e *DebtorAmountMismatchError) Error() string {
	return fmt.Sprintf("debtor amount mismatch: expected %v from invoices, posted %v", e.Expected, e.Actual)
}

// CreditorAmountMismatchError reports that postings to creditor accounts do
// not reconcile with the purchase invoices the entry claims to settle.
type CreditorAmountMismatchError struct {
	Expected money.Amount
	Actual   money.Amount
}

func (e *CreditorAmountMismatchError) Error() string {
	return fmt.Sprintf("creditor amount mismatch: expected %v from invoices, posted %v", e.Expected, e.Actual)
}
