package participantRepository

import (
	contextPkg "TravelLedger/pkg/context"
	"context"
	"database/sql"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func execNamed(c context.Context, q SQLExecutor, log *logrus.Logger, namedQuery string, argsKV map[string]interface{}, op string) (sql.Result, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for " + op)
		return nil, err
	}
	query = q.Rebind(query)

	res, err := q.ExecContext(c, query, args...)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// getNamed scans one row into dest. sql.ErrNoRows is returned untouched so
// callers can map it to their domain error.
func getNamed(c context.Context, q SQLExecutor, log *logrus.Logger, dest interface{}, namedQuery string, argsKV map[string]interface{}, op string) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return err
	}
	query = q.Rebind(query)

	return q.QueryRowxContext(c, query, args...).StructScan(dest)
}

func selectNamed(c context.Context, q SQLExecutor, log *logrus.Logger, dest interface{}, namedQuery string, argsKV map[string]interface{}, op string) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return err
	}
	query = q.Rebind(query)

	if err := q.SelectContext(c, dest, query, args...); err != nil {
		log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return err
	}
	return nil
}
