package rocketmq

import (
	"Storefront/config"
	"Storefront/pkg/log"
	"context"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

const defaultTopic = "storefront_order_events"

// Publisher 订单事件生产者；未配置 nameserver 时为空实现
type Publisher struct {
	producer rocketmq.Producer
	topic    string
}

func init() {
	rlog.SetLogLevel("error")
}

func NewPublisher(cfg *config.RocketMQConfig) *Publisher {
	if cfg == nil || len(cfg.NameServer) == 0 {
		log.L.Info("rocketmq not configured, order events disabled")
		return &Publisher{}
	}

	p, err := rocketmq.NewProducer(
		producer.WithNameServer(cfg.NameServer),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(cfg.Producer.Retry),
	)
	if err != nil {
		log.L.Fatal("init producer error", zap.Error(err))
	}
	if err = p.Start(); err != nil {
		log.L.Fatal("start producer error", zap.Error(err))
	}
	log.L.Info("init producer success")

	topic := cfg.Topic
	if topic == "" {
		topic = defaultTopic
	}
	return &Publisher{producer: p, topic: topic}
}

// Publish 同步发送，key 用于按订单号检索消息
func (p *Publisher) Publish(ctx context.Context, key string, body []byte) error {
	if p == nil || p.producer == nil {
		return nil
	}

	msg := primitive.NewMessage(p.topic, body)
	msg.WithKeys([]string{key})

	res, err := p.producer.SendSync(ctx, msg)
	if err != nil {
		return err
	}
	log.L.Debug("send message success", zap.String("msg_id", res.MsgID))
	return nil
}

func (p *Publisher) Shutdown() {
	if p == nil || p.producer == nil {
		return
	}
	if err := p.producer.Shutdown(); err != nil {
		log.L.Warn("shutdown producer", zap.Error(err))
	}
}
