// Package chart provides the curated default chart of accounts used to seed
// a new administration.
package chart

import "github.com/finrep/bookkeeper/internal/book"

type AccountDef struct {
	Code string           `json:"code"`
	Name string           `json:"name"`
	Kind book.AccountKind `json:"kind"`
}

var curated = []AccountDef{
	{Code: "A100", Name: "Bank", Kind: book.KindAsset},
	{Code: "A110", Name: "Cash", Kind: book.KindAsset},
	{Code: "A200", Name: "Inventory", Kind: book.KindAsset},
	{Code: "D100", Name: "Accounts receivable", Kind: book.KindDebtor},
	{Code: "C100", Name: "Accounts payable", Kind: book.KindCreditor},
	{Code: "L100", Name: "Loans", Kind: book.KindLiability},
	{Code: "L200", Name: "Taxes payable", Kind: book.KindLiability},
	{Code: "E100", Name: "Capital", Kind: book.KindEquity},
	{Code: "R100", Name: "Sales", Kind: book.KindRevenue},
	{Code: "X100", Name: "Purchases", Kind: book.KindExpense},
	{Code: "X110", Name: "Office costs", Kind: book.KindExpense},
	{Code: "X120", Name: "Bank charges", Kind: book.KindExpense},
}

// Default returns the curated default chart. Callers receive a copy and may
// modify it freely.
func Default() []AccountDef {
	out := make([]AccountDef, len(curated))
	copy(out, curated)
	return out
}

// ByKind returns the defaults for one account kind, in curated order.
func ByKind(kind book.AccountKind) []AccountDef {
	out := make([]AccountDef, 0, 4)
	for _, d := range curated {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}
