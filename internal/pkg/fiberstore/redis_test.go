package fiberstore

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// recordHook captures issued commands without touching the network.
type recordHook struct {
	cmds *[]redis.Cmder
}

func (h recordHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h recordHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		*h.cmds = append(*h.cmds, cmd)
		return nil
	}
}

func (h recordHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		*h.cmds = append(*h.cmds, cmds...)
		return nil
	}
}

func newRecordedStore(prefix string) (*Redis, *[]redis.Cmder) {
	cmds := &[]redis.Cmder{}
	client := redis.NewClient(&redis.Options{})
	client.AddHook(recordHook{cmds: cmds})
	return NewRedis(client, prefix), cmds
}

func TestRedisSetCarriesExpiration(t *testing.T) {
	store, cmds := newRecordedStore("idempotency:report")

	assert.NoError(t, store.Set("abc123", []byte("resp"), time.Hour*24))

	assert.Len(t, *cmds, 1)
	args := (*cmds)[0].Args()
	assert.Equal(t, "set", args[0])
	assert.Equal(t, "idempotency:report:abc123", args[1])
	assert.Contains(t, args, "ex")
	assert.Contains(t, args, int64(86400))
}

func TestRedisKeysAreNamespaced(t *testing.T) {
	store, cmds := newRecordedStore("idempotency:report")

	_, err := store.Get("abc123")
	assert.NoError(t, err)
	assert.NoError(t, store.Delete("abc123"))

	assert.Len(t, *cmds, 2)
	assert.Equal(t, "get", (*cmds)[0].Args()[0])
	assert.Equal(t, "idempotency:report:abc123", (*cmds)[0].Args()[1])
	assert.Equal(t, "del", (*cmds)[1].Args()[0])
	assert.Equal(t, "idempotency:report:abc123", (*cmds)[1].Args()[1])
}
