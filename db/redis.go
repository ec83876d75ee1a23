package db

import (
	"context"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

// Hand-off queues consumed by the external orchestrator/notifier. Run
// summaries land on the notify queue; genres whose fetch or write failed
// land on the failed queue so the next scheduled run can be judged.
const (
	NotifyQueueKey      = "crackcrawl:queue:notify"
	FailedGenreQueueKey = "crackcrawl:queue:failed"
)

func ConnectRedis(redisURL string) error {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(Ctx).Result()
	return err
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

func PushToQueue(queueKey string, data string) error {
	return Redis.LPush(Ctx, queueKey, data).Err()
}
