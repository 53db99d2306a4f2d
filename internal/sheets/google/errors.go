package google

import (
	"context"
	"errors"
	"fmt"
	"net"

	"spendview/internal/core"

	"google.golang.org/api/googleapi"
)

// classifyError maps a Sheets API failure onto one of the core error kinds,
// keeping the original message for the UI.
//
// Status mapping: 401 authentication, 403 permission, 404 spreadsheet not
// found, 400 worksheet not found (the API reports a missing worksheet as an
// unparsable range), 429 and 5xx transient. Transport-level failures and
// timeouts are transient as well.
func classifyError(err error, ref core.SheetRef) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == 401:
			return fmt.Errorf("%w: %s", core.ErrAuthentication, gerr.Message)
		case gerr.Code == 403:
			return fmt.Errorf("%w: spreadsheet %s not shared with the service account", core.ErrPermissionDenied, ref.SpreadsheetID)
		case gerr.Code == 404:
			return fmt.Errorf("%w: spreadsheet %s", core.ErrSheetNotFound, ref.SpreadsheetID)
		case gerr.Code == 400:
			return fmt.Errorf("%w: worksheet %q", core.ErrSheetNotFound, ref.Worksheet)
		case gerr.Code == 429 || gerr.Code >= 500:
			return fmt.Errorf("%w: %s", core.ErrTransient, gerr.Message)
		default:
			return fmt.Errorf("%w: %s", core.ErrMalformedResponse, gerr.Message)
		}
	}

	var nerr net.Error
	if errors.As(err, &nerr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", core.ErrTransient, err)
	}

	return fmt.Errorf("%w: %v", core.ErrTransient, err)
}
