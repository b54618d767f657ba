package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"Storefront/config"
	"Storefront/pkg/log"
	"Storefront/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// 滑动窗口：zset 记录窗口内的请求时间戳
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local counter_key = KEYS[2]
local now = tonumber(ARGV[1])
local window_start = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local window_ms = tonumber(ARGV[4])

redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)
local count = redis.call('ZCARD', key)
if count < limit then
	local seq = redis.call('INCR', counter_key)
	redis.call('ZADD', key, now, now .. ':' .. seq)
	redis.call('PEXPIRE', key, window_ms)
	redis.call('PEXPIRE', counter_key, window_ms)
	return {1, limit - count - 1, 0}
end
local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local retry = 0
if #oldest >= 2 then
	retry = oldest[2] + window_ms - now
end
return {0, 0, retry}
`)

type RateLimiter struct {
	rds    *redis.Client
	limit  config.RateLimit
	prefix string
}

func NewRateLimiter(rds *redis.Client, limit config.RateLimit, prefix string) *RateLimiter {
	return &RateLimiter{rds: rds, limit: limit, prefix: prefix}
}

// Allow 返回是否放行、剩余次数和建议的重试间隔
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, int, time.Duration, error) {
	now := time.Now()
	redisKey := l.prefix + key
	res, err := slidingWindow.Run(ctx, l.rds, []string{redisKey, redisKey + ":seq"},
		now.UnixMilli(),
		now.Add(-l.limit.Window).UnixMilli(),
		l.limit.Requests,
		l.limit.Window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return false, 0, 0, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) < 3 {
		return false, 0, 0, fmt.Errorf("rate limit script: unexpected result %v", res)
	}
	return res[0] == 1, int(res[1]), time.Duration(res[2]) * time.Millisecond, nil
}

// Handler 按客户端 IP 限流，Redis 不可用时放行
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, retry, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.L.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.limit.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			if retry > 0 {
				c.Header("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
			}
			response.Abort(c, http.StatusTooManyRequests, "too many requests")
			return
		}
		c.Next()
	}
}
