package cache

import (
	"testing"
	"time"
)

func TestCacheGetSet(t *testing.T) {
	c := New(time.Minute)
	if _, ok := c.Get("missing"); ok {
		t.Fatal("空缓存不应命中")
	}
	c.Set("events:today", []string{"a"})
	if v, ok := c.Get("events:today"); !ok || len(v.([]string)) != 1 {
		t.Fatalf("缓存应命中: %v, %v", v, ok)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New(30 * time.Second)
	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set("k", "v")

	c.now = func() time.Time { return base.Add(29 * time.Second) }
	if _, ok := c.Get("k"); !ok {
		t.Fatal("TTL 内应命中")
	}
	c.now = func() time.Time { return base.Add(30 * time.Second) }
	if _, ok := c.Get("k"); ok {
		t.Fatal("TTL 到期应失效")
	}
}

func TestCacheInvalidatePrefix(t *testing.T) {
	c := New(time.Minute)
	c.Set("events:today", 1)
	c.Set("events:week", 2)
	c.Set("members", 3)

	c.Invalidate("events:")
	if _, ok := c.Get("events:today"); ok {
		t.Fatal("前缀匹配项应被清除")
	}
	if _, ok := c.Get("members"); !ok {
		t.Fatal("非前缀项不应被清除")
	}

	c.Invalidate("")
	if _, ok := c.Get("members"); ok {
		t.Fatal("空前缀应清除全部")
	}
}
