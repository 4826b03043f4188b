package report

import (
	"github.com/google/uuid"
	"github.com/govalues/money"

	"github.com/finrep/bookkeeper/internal/book"
	"github.com/finrep/bookkeeper/internal/errs"
)

// CrossCheck verifies that a batch of entry details reconciles with the
// invoices it claims to settle. The intrinsic debit/credit balance check
// only proves an entry balances internally; this check catches entries that
// settle an invoice but post the money to the wrong debtor/creditor account
// or for the wrong amount.
//
// Details referencing an invoice build the expected totals: postings against
// sale invoices accumulate the expected debtor movement (normalized
// debit-positive), postings against purchase invoices the expected creditor
// movement (normalized credit-positive). Details posted directly to an
// account in debtorCodes or creditorCodes build the actual totals. A
// difference fails with DebtorAmountMismatchError or
// CreditorAmountMismatchError.
func CrossCheck(details []book.EntryDetail, invoicesByID map[uuid.UUID]book.Invoice, debtorCodes, creditorCodes map[string]struct{}, currency string) error {
	zero, err := book.Zero(currency)
	if err != nil {
		return err
	}
	expectedDebtor, expectedCreditor := zero, zero
	actualDebtor, actualCreditor := zero, zero

	for _, d := range details {
		if d.InvoiceID != nil {
			inv, ok := invoicesByID[*d.InvoiceID]
			if !ok {
				return errs.ErrReferenceNotFound
			}
			switch {
			case inv.IsSale():
				// A credit posting against a sale invoice implies the debtor
				// account is debited by the same amount.
				expectedDebtor, err = applySigned(expectedDebtor, d.Amount, d.Side, book.SideCredit)
			case inv.IsPurchase():
				expectedCreditor, err = applySigned(expectedCreditor, d.Amount, d.Side, book.SideDebit)
			}
			if err != nil {
				return err
			}
			continue
		}
		if _, ok := debtorCodes[d.AccountCode]; ok {
			actualDebtor, err = applySigned(actualDebtor, d.Amount, d.Side, book.SideDebit)
			if err != nil {
				return err
			}
			continue
		}
		if _, ok := creditorCodes[d.AccountCode]; ok {
			actualCreditor, err = applySigned(actualCreditor, d.Amount, d.Side, book.SideCredit)
			if err != nil {
				return err
			}
		}
	}

	if !equalAmounts(expectedDebtor, actualDebtor) {
		return &errs.DebtorAmountMismatchError{Expected: expectedDebtor, Actual: actualDebtor}
	}
	if !equalAmounts(expectedCreditor, actualCreditor) {
		return &errs.CreditorAmountMismatchError{Expected: expectedCreditor, Actual: actualCreditor}
	}
	return nil
}

func equalAmounts(a, b money.Amount) bool {
	cmp, err := a.Cmp(b)
	return err == nil && cmp == 0
}
