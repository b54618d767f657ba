package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// 日序号 key 保留两天，跨零点的请求仍能拿到前一天的计数
const orderSeqExpireAt = 48 * time.Hour

// OrderSequence 按自然日递增的订单序号
type OrderSequence struct {
	redis *redis.Client
}

func NewOrderSequence(rds *redis.Client) *OrderSequence {
	return &OrderSequence{rds}
}

// Next 原子自增并返回当天的序号，从 1 开始
func (s *OrderSequence) Next(ctx context.Context, day time.Time) (int64, error) {
	name := s.name(day)

	var incr *redis.IntCmd
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, name)
		pipe.Expire(ctx, name, orderSeqExpireAt)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return incr.Val(), nil
}

// order:seq:260119
func (s *OrderSequence) name(day time.Time) string {
	return fmt.Sprintf("order:seq:%s", day.Format("060102"))
}
