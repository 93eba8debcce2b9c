package deps

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

func IgniteCache(container Deps) (Deps, error) {
	address, err := container.Config().String("redis.address")
	if err != nil {
		return container, err
	}

	client := redis.NewClient(&redis.Options{Addr: address})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return container, err
	}

	container.CacheProvider = client
	container.onClose(client.Close)
	return container, nil
}
