// internal/candidates/errors.go
package candidates

import (
	"context"
	"database/sql/driver"
	stderrors "errors"
	"net"

	"intel-search-workers/internal/common/errors"
)

// ClassifyFetchError maps a Fetch failure onto the job error codes. The
// source name decides between database and search codes.
func ClassifyFetchError(source string, err error) *errors.StandardError {
	var stdErr *errors.StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}

	if stderrors.Is(err, ErrUnknownSource) {
		return errors.NewCandidateSourceUnknownError(source)
	}

	timedOut := stderrors.Is(err, context.DeadlineExceeded)
	var netErr net.Error
	connFailed := stderrors.As(err, &netErr) || stderrors.Is(err, driver.ErrBadConn)

	switch source {
	case ElasticsearchSourceName:
		switch {
		case timedOut:
			return errors.NewSearchTimeoutError("candidates")
		case stderrors.Is(err, ErrIndexNotFound), stderrors.Is(err, ErrMissingIndex):
			return errors.NewIndexNotFoundError(err.Error())
		case connFailed:
			return errors.NewElasticsearchConnectionFailedError(err)
		default:
			return errors.NewSearchQueryFailedError("candidates", err)
		}
	case PostgresSourceName:
		switch {
		case timedOut:
			return errors.NewQueryTimeoutError("candidates")
		case connFailed:
			return errors.NewDatabaseConnectionFailedError(err)
		default:
			return errors.NewQueryExecutionFailedError("candidates", err)
		}
	}

	if timedOut {
		return errors.NewTimeoutError(source, err)
	}
	return errors.NewExternalServiceError(source, err)
}
