package rds

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestClientRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := Open(context.Background(), Config{URL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "votes:counts:x"); ok || err != nil {
		t.Fatalf("miss should be ok=false err=nil, got %v %v", ok, err)
	}
	if err := c.Set(ctx, "votes:counts:x", `{"total":1}`, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := c.Get(ctx, "votes:counts:x")
	if err != nil || !ok || v != `{"total":1}` {
		t.Fatalf("get = %q %v %v", v, ok, err)
	}

	mr.FastForward(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "votes:counts:x"); ok {
		t.Fatalf("entry should expire")
	}

	_ = c.Set(ctx, "a", "1", 0)
	if err := c.Del(ctx, "a", "missing"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if mr.Exists("a") {
		t.Fatalf("a should be gone")
	}
	if err := c.Del(ctx); err != nil {
		t.Fatalf("empty del: %v", err)
	}
}

func TestPutVersionNeverGoesBack(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := Open(context.Background(), Config{URL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, _, ok, err := c.GetVersion(ctx, "k"); ok || err != nil {
		t.Fatalf("miss should be ok=false err=nil, got %v %v", ok, err)
	}
	if ok, err := c.PutVersion(ctx, "k", "three", 3, time.Minute); !ok || err != nil {
		t.Fatalf("first put = %v %v", ok, err)
	}
	if ok, err := c.PutVersion(ctx, "k", "two", 2, time.Minute); ok || err != nil {
		t.Fatalf("older put = %v %v", ok, err)
	}
	if ok, _ := c.PutVersion(ctx, "k", "three again", 3, time.Minute); !ok {
		t.Fatalf("same version should be written")
	}
	v, ver, ok, err := c.GetVersion(ctx, "k")
	if err != nil || !ok || v != "three again" || ver != 3 {
		t.Fatalf("get = %q %d %v %v", v, ver, ok, err)
	}

	mr.FastForward(2 * time.Minute)
	if _, _, ok, _ := c.GetVersion(ctx, "k"); ok {
		t.Fatalf("entry should expire")
	}
}

func TestOpenRejectsBadURL(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "http://nope"}); err == nil {
		t.Fatalf("expected parse error")
	}
}
