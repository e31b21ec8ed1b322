package handler

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the authenticated user's ID placed in the context
// by the JWT middleware.  The claim arrives as whatever type the JSON
// decoder produced, so all the plausible shapes are handled.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case float64:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case uint64:
		return t, nil
	case string:
		return strconv.ParseUint(t, 10, 64)
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, err
		}
		return uint64(n), nil
	}
	return 0, errors.New("no user in context")
}

// dateLayout is the wire format for stay dates.
const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD date in UTC.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}
