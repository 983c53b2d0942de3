package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/footsies/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

func (c *LoginChecker) UserID(ctx context.Context, token string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.login_checker.user_id")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cmd := c.redisClient.Get(ctx, sessionKeyPrefix+token)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotLoggedIn
		}
		return "", fmt.Errorf("get session: %w", err)
	}

	createdAt, userID, err := parseSessionValue(cmd.Val())
	if err != nil {
		return "", err
	}

	if time.Since(createdAt) > c.ttl {
		return "", ErrNotLoggedIn
	}

	return userID, nil
}
