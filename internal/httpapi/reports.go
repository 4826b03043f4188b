package httpapi

import (
	"net/http"
)

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	adminID, err := uuidParam(r, "adminID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	periodStart, reportEnd, err := periodFromQuery(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	rep, err := s.reportSvc.BuildReport(r.Context(), adminID, periodStart, reportEnd)
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	result, _ := rep.ResultOfOperations().MinorUnits()
	totalAssets, _ := rep.TotalAssets().MinorUnits()
	totalLiabilities, _ := rep.TotalLiabilities().MinorUnits()
	totalDebtors, _ := rep.TotalDebtors().MinorUnits()
	totalCreditors, _ := rep.TotalCreditors().MinorUnits()

	toJSON(w, http.StatusOK, reportResponse{
		PeriodStart:           rep.PeriodStart(),
		ReportEnd:             rep.ReportEnd(),
		Currency:              rep.Currency(),
		Assets:                toBalanceLines(rep.Assets()),
		Liabilities:           toBalanceLines(rep.Liabilities()),
		Expenses:              toBalanceLines(rep.Expenses()),
		Revenues:              toBalanceLines(rep.Revenues()),
		ResultMinor:           result,
		TotalAssetsMinor:      totalAssets,
		TotalLiabilitiesMinor: totalLiabilities,
		Debtors:               toPartyLines(rep.Debtors()),
		Creditors:             toPartyLines(rep.Creditors()),
		TotalDebtorsMinor:     totalDebtors,
		TotalCreditorsMinor:   totalCreditors,
	})
}
