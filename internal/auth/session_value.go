package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const sessionValueSep = "|"

// session values are stored as "<created at unix>|<user id>"
func sessionValue(createdAt time.Time, userID string) string {
	return fmt.Sprintf("%d%s%s", createdAt.Unix(), sessionValueSep, userID)
}

func parseSessionValue(val string) (time.Time, string, error) {
	createdAtStr, userID, found := strings.Cut(val, sessionValueSep)
	if !found || userID == "" {
		return time.Time{}, "", errors.New("malformed session value")
	}
	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("parse session created at: %w", err)
	}
	return time.Unix(createdAtUnix, 0), userID, nil
}
