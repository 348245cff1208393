package events

import (
	"context"
	"encoding/json"

	"github.com/mkopp/mysite-backend/domain"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedisExternalizer returns a subscriber that republishes every
// event on a Redis pub/sub channel named after its topic, so outside
// consumers (notification systems, search indexers) can pick them up.
func NewRedisExternalizer(client *redis.Client) Subscriber {
	return func(ctx context.Context, event domain.Event) {
		data, err := json.Marshal(event)
		if err != nil {
			logrus.Errorf("failed to marshal %s event: %v", event.Topic(), err)
			return
		}
		if err := client.Publish(ctx, event.Topic(), data).Err(); err != nil {
			logrus.Warnf("failed to externalize %s event: %v", event.Topic(), err)
		}
	}
}
