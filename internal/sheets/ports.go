package sheets

import (
	"context"

	"spendview/internal/core"
)

// Ports for outbound adapters.
type (
	// WorksheetReader fetches the full contents of one worksheet. A fetch
	// either succeeds with a complete RowSet or fails with an error wrapping
	// one of the core error kinds; there is no partial result.
	WorksheetReader interface {
		ReadWorksheet(ctx context.Context, ref core.SheetRef) (core.RowSet, error)
	}
)
