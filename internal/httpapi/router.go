package httpapi

// routes declares the public HTTP API endpoints.
func (s *Server) routes() {
	// Administrations (v1)
	s.rt.Post("/v1/administrations", s.postAdministration)
	s.rt.Get("/v1/administrations/{adminID}", s.getAdministration)
	// Accounts (v1)
	s.rt.Post("/v1/administrations/{adminID}/accounts", s.postAccount)
	s.rt.Get("/v1/administrations/{adminID}/accounts", s.listAccounts)
	s.rt.Get("/v1/administrations/{adminID}/accounts/{code}", s.getAccount)
	s.rt.Get("/v1/administrations/{adminID}/accounts/{code}/ledger", s.getAccountLedger)
	// Parties (v1)
	s.rt.Post("/v1/administrations/{adminID}/parties", s.postParty)
	s.rt.Get("/v1/administrations/{adminID}/parties", s.listParties)
	// Entries (v1)
	s.rt.Post("/v1/administrations/{adminID}/entries", s.postEntry)
	s.rt.Get("/v1/administrations/{adminID}/entries", s.listEntries)
	s.rt.Get("/v1/administrations/{adminID}/entries/{entryID}", s.getEntry)
	s.rt.Delete("/v1/administrations/{adminID}/entries/{entryID}", s.deleteEntry)
	// Invoices & payments (v1)
	s.rt.Post("/v1/administrations/{adminID}/invoices", s.postInvoice)
	s.rt.Get("/v1/administrations/{adminID}/invoices", s.listInvoices)
	s.rt.Get("/v1/administrations/{adminID}/invoices/{invoiceID}", s.getInvoice)
	s.rt.Post("/v1/administrations/{adminID}/invoices/{invoiceID}/payments", s.postPayment)
	// Reports (v1)
	s.rt.Get("/v1/administrations/{adminID}/report", s.getReport)
	// Chart dictionary (v1)
	s.rt.Get("/v1/chart/default", s.getDefaultChart)
	// Operational endpoints (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Handle("/metrics", metricsHandler())
}
