package xbloom_test

import (
	"context"
	"fmt"
	"log"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/omeyang/rediskit/pkg/storage/xbloom"
)

// Example 演示布隆过滤器的基本用法。
func Example() {
	// 使用 miniredis 模拟 Redis（实际使用时换成真实 Redis）
	mr, err := miniredis.Run()
	if err != nil {
		log.Fatal(err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	bf, err := xbloom.New(client, "bloom:names", 100, 0.01)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := bf.AddMany(ctx, "rajiv", "raj", "dan"); err != nil {
		log.Fatal(err)
	}

	for _, name := range []string{"rajiv", "luis"} {
		ok, err := bf.Contains(ctx, name)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s: %v\n", name, ok)
	}

	// Output:
	// rajiv: true
	// luis: false
}
