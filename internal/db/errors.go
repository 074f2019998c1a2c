package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/go-sql-driver/mysql"
	pkgerrors "github.com/pkg/errors"

	"github.com/Jeomhps/happier-hour-api/internal/errs"
)

// ErrNotFound is returned by Store.Get when no row has the requested key.
var ErrNotFound = errors.New("row not found")

// MySQL server error numbers the store tells apart.
const (
	erDupEntry          = 1062
	erRowIsReferenced   = 1451
	erNoReferencedRow   = 1452
	erBadNullError      = 1048
	erTruncatedWrongVal = 1292
	erWrongValueForType = 1366
	erDataOutOfRange    = 1264
	erDataTooLong       = 1406
)

// classify converts a driver error into an *errs.Error. Unclassified errors
// keep a stack trace for the log.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var already *errs.Error
	if errors.As(err, &already) {
		return err
	}

	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case erDupEntry, erRowIsReferenced, erNoReferencedRow:
			return &errs.Error{Kind: errs.Conflict, Message: me.Message, Err: err}
		case erBadNullError, erTruncatedWrongVal, erWrongValueForType, erDataOutOfRange, erDataTooLong:
			return &errs.Error{Kind: errs.Validation, Message: me.Message, Err: err}
		}
		return errs.Wrap(errs.Internal, pkgerrors.WithStack(err))
	}

	if unavailable(err) {
		return errs.Wrap(errs.Unavailable, err)
	}
	return errs.Wrap(errs.Internal, pkgerrors.WithStack(err))
}

func unavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
