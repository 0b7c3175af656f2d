package server

import (
	stderrors "errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/razdine10/Groovify/internal/domain"
	"github.com/razdine10/Groovify/internal/errors"
)

const dateLayout = "2006-01-02"

// parseRange reads the optional from/to query parameters. Missing bounds
// stay zero; the service fills them from the invoice table.
func parseRange(c echo.Context) (domain.DateRange, error) {
	var rng domain.DateRange

	if raw := c.QueryParam("from"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return rng, errors.ValidationError("from must be a YYYY-MM-DD date").WithField("from", raw)
		}
		rng.From = t
	}

	if raw := c.QueryParam("to"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return rng, errors.ValidationError("to must be a YYYY-MM-DD date").WithField("to", raw)
		}
		rng.To = t
	}

	return rng, nil
}

// intParam reads an optional integer query parameter, returning def when
// absent.
func intParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.ValidationError(name + " must be an integer").WithField(name, raw)
	}
	return n, nil
}

// reportError maps domain sentinel errors onto structured HTTP errors.
// Anything unrecognized is a backing-store failure.
func reportError(report string, err error) error {
	switch {
	case stderrors.Is(err, domain.ErrEmptyRange):
		return errors.ValidationError("from must not be after to")
	case stderrors.Is(err, domain.ErrBadGranularity):
		return errors.ValidationError("granularity must be month, quarter or year")
	case stderrors.Is(err, domain.ErrUnknownTable):
		return errors.NotFoundError("table does not exist")
	case stderrors.Is(err, domain.ErrNoData):
		return errors.NotFoundError("no invoice data available")
	default:
		return errors.UnavailableError("report query failed", err).WithField("report", report)
	}
}
