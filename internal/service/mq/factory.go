package mq

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NewProducer 根据 mq.type 选择实现，未配置时返回 NoopProducer
func NewProducer(mqType string, brokers []string, topic string, rdb *redis.Client) (Producer, error) {
	switch mqType {
	case "", "none":
		return NoopProducer{}, nil
	case "kafka":
		return NewKafkaProducer(brokers, topic), nil
	case "redis":
		if rdb == nil {
			return nil, errors.New("redis mq requires a redis client")
		}
		return NewRedisProducer(rdb), nil
	default:
		return nil, fmt.Errorf("unknown mq type: %s", mqType)
	}
}

// NewConsumer group 同时用作 Kafka GroupID 与 Redis Stream 消费者组
func NewConsumer(mqType string, brokers []string, group, name string, rdb *redis.Client) (Consumer, error) {
	switch mqType {
	case "kafka":
		return NewKafkaConsumer(brokers, group), nil
	case "redis":
		if rdb == nil {
			return nil, errors.New("redis mq requires a redis client")
		}
		return NewRedisConsumer(rdb, group, name), nil
	default:
		return nil, fmt.Errorf("mq type %q has no consumer", mqType)
	}
}
