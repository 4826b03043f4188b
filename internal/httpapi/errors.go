package httpapi

import (
	"errors"
	"net/http"

	"github.com/finrep/bookkeeper/internal/errs"
	"github.com/finrep/bookkeeper/internal/service/account"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "") }
func notFound(w http.ResponseWriter)               { writeErr(w, http.StatusNotFound, "not_found", "not_found") }

// writeDomainErr maps service/domain errors onto HTTP statuses and stable
// machine-readable codes.
func writeDomainErr(w http.ResponseWriter, err error) {
	var dcErr *errs.DebitCreditMismatchError
	var debtorErr *errs.DebtorAmountMismatchError
	var creditorErr *errs.CreditorAmountMismatchError
	switch {
	case errors.Is(err, errs.ErrNotFound):
		notFound(w)
	case errors.Is(err, errs.ErrConflict), errors.Is(err, account.ErrCodeExists):
		writeErr(w, http.StatusConflict, err.Error(), "conflict")
	case errors.Is(err, errs.ErrInvalid):
		writeErr(w, http.StatusBadRequest, err.Error(), "invalid")
	case errors.As(err, &dcErr):
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), "debit_credit_mismatch")
	case errors.As(err, &debtorErr):
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), "debtor_amount_mismatch")
	case errors.As(err, &creditorErr):
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), "creditor_amount_mismatch")
	case errors.Is(err, errs.ErrCurrencyMismatch):
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), "currency_mismatch")
	case errors.Is(err, errs.ErrReferenceNotFound):
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), "reference_not_found")
	case errors.Is(err, errs.ErrUnprocessable):
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), "unprocessable")
	default:
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), "validation_error")
	}
}
