package cart

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	lediscfg "github.com/siddontang/ledisdb/config"
	"github.com/siddontang/ledisdb/ledis"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tidwall/buntdb"
)

func bucketContract(bucket Bucket) {
	data, err := bucket.Restore()
	So(err, ShouldBeNil)
	So(data, ShouldEqual, "")

	c := Boot(bucket)
	c.Add(Item{Id: "p1", Title: "Samsung Galaxy", Price: 15999})
	c.Add(Item{Id: "p1", Title: "Samsung Galaxy", Price: 15999})
	c.Add(Item{Id: "p2", Title: "Nike Air", Price: 4599})

	restored := Boot(bucket)
	So(restored.Items(), ShouldResemble, c.Items())
	So(restored.Total(), ShouldEqual, 15999*2+4599)
}

func TestBuntBucket(t *testing.T) {

	Convey("A cart survives a reboot on buntdb", t, func() {
		db, err := buntdb.Open(":memory:")
		So(err, ShouldBeNil)
		defer db.Close()

		bucketContract(BuntBucket{DB: db, Key: DefaultSlot})
	})

	Convey("A cart survives reopening the buntdb file", t, func() {
		path := filepath.Join(t.TempDir(), "cart.db")

		db, err := buntdb.Open(path)
		So(err, ShouldBeNil)
		Boot(BuntBucket{DB: db, Key: DefaultSlot}).Add(Item{Id: "p1", Price: 10})
		So(db.Close(), ShouldBeNil)

		db, err = buntdb.Open(path)
		So(err, ShouldBeNil)
		defer db.Close()

		items := Boot(BuntBucket{DB: db, Key: DefaultSlot}).Items()
		So(items, ShouldHaveLength, 1)
		So(items[0].Id, ShouldEqual, "p1")
	})
}

func TestLedisBucket(t *testing.T) {

	Convey("A cart survives a reboot on ledisdb", t, func() {
		conf := lediscfg.NewConfigDefault()
		conf.DataDir = t.TempDir()

		conn, err := ledis.Open(conf)
		So(err, ShouldBeNil)
		defer conn.Close()

		db, err := conn.Select(0)
		So(err, ShouldBeNil)

		bucketContract(LedisBucket{DB: db, Key: DefaultSlot})
	})
}

func TestRedisBucket(t *testing.T) {
	address := os.Getenv("REDIS_ADDR")
	if address == "" {
		t.Skip("REDIS_ADDR not set")
	}

	Convey("A cart survives a reboot on redis", t, func() {
		client := redis.NewClient(&redis.Options{Addr: address})
		defer client.Close()

		key := "storefront-test:" + t.Name()
		client.Del(context.Background(), key)
		defer client.Del(context.Background(), key)

		bucketContract(RedisBucket{Client: client, Key: key})
	})
}

func TestRegistry(t *testing.T) {

	Convey("Registry hands out one cart per key", t, func() {
		buckets := map[string]*MemoryBucket{}
		changed := []string{}
		registry := NewRegistry(func(key string) Bucket {
			buckets[key] = &MemoryBucket{}
			return buckets[key]
		}, 0, 0, func(key string, change Change) {
			changed = append(changed, key)
		})

		a := registry.Get("visitor-a")
		So(registry.Get("visitor-a"), ShouldEqual, a)

		b := registry.Get("visitor-b")
		So(b, ShouldNotEqual, a)
		So(registry.Len(), ShouldEqual, 2)

		a.Add(Item{Id: "p1", Price: 1})
		b.Add(Item{Id: "p2", Price: 2})
		b.Clear()

		So(changed, ShouldResemble, []string{"visitor-a", "visitor-b", "visitor-b"})
		So(a.Items(), ShouldHaveLength, 1)
		So(b.Items(), ShouldBeEmpty)

		data, _ := buckets["visitor-a"].Restore()
		So(data, ShouldContainSubstring, `"id":"p1"`)
	})
}

func TestRegistryLimits(t *testing.T) {

	Convey("Given a registry that keeps two carts live", t, func() {
		store := NewMemoryStore()
		booted := []string{}
		registry := NewRegistry(store.Bucket, 2, time.Hour)
		registry.Booted = func(key string, count int) {
			booted = append(booted, fmt.Sprintf("%s=%d", key, count))
		}

		registry.Get("a").Add(Item{Id: "p1", Price: 1})

		Convey("Many visitors never grow past the bound", func() {
			for i := 0; i < 200; i++ {
				registry.Get(fmt.Sprintf("visitor-%d", i))
			}
			So(registry.Len(), ShouldEqual, 2)
			So(booted, ShouldHaveLength, 201)
		})

		Convey("A dropped cart boots again from its bucket", func() {
			registry.Get("b")
			registry.Get("c")

			again := registry.Get("a")
			So(again.Items(), ShouldHaveLength, 1)
			So(booted, ShouldResemble, []string{"a=0", "b=0", "c=0", "a=1"})
		})

		Convey("Access keeps a cart live", func() {
			first := registry.Get("a")
			registry.Get("b")
			registry.Get("a")
			registry.Get("c")

			So(registry.Get("a"), ShouldEqual, first)
		})

		Convey("Views of unknown carts are not kept", func() {
			for i := 0; i < 10; i++ {
				So(registry.View(fmt.Sprintf("reader-%d", i)).IsEmpty(), ShouldBeTrue)
			}
			So(registry.Len(), ShouldEqual, 1)
			So(store.Len(), ShouldEqual, 1)
			So(registry.View("a"), ShouldEqual, registry.Get("a"))
		})
	})

	Convey("Idle carts are dropped", t, func() {
		registry := NewRegistry(NewMemoryStore().Bucket, 10, 20*time.Millisecond)
		first := registry.Get("a")
		first.Add(Item{Id: "p1", Price: 1})

		time.Sleep(60 * time.Millisecond)
		again := registry.Get("a")

		So(again, ShouldNotEqual, first)
		So(again.Items(), ShouldHaveLength, 1)
	})

	Convey("Concurrent first access boots one live cart", t, func() {
		var mu sync.Mutex
		booted := 0
		registry := NewRegistry(NewMemoryStore().Bucket, 0, 0)
		registry.Booted = func(string, int) {
			mu.Lock()
			booted++
			mu.Unlock()
		}

		var wg sync.WaitGroup
		carts := make([]*Cart, 16)
		for i := range carts {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				carts[i] = registry.Get("shared")
			}(i)
		}
		wg.Wait()

		for _, c := range carts {
			So(c, ShouldEqual, carts[0])
		}
		So(booted, ShouldEqual, 1)
	})
}
