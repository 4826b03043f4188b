package memory

import (
	"github.com/finrep/bookkeeper/internal/service/account"
	"github.com/finrep/bookkeeper/internal/service/entry"
	"github.com/finrep/bookkeeper/internal/service/invoice"
	"github.com/finrep/bookkeeper/internal/service/party"
	"github.com/finrep/bookkeeper/internal/service/report"
)

// Compile-time interface assertions documenting which interfaces Store satisfies.
var (
	_ account.Repo   = (*Store)(nil)
	_ account.Writer = (*Store)(nil)
	_ party.Repo     = (*Store)(nil)
	_ party.Writer   = (*Store)(nil)
	_ entry.Repo     = (*Store)(nil)
	_ entry.Writer   = (*Store)(nil)
	_ invoice.Repo   = (*Store)(nil)
	_ invoice.Writer = (*Store)(nil)
	_ report.Repo    = (*Store)(nil)
)
