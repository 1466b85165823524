package v1

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectCandidates(t *testing.T) {
	members := []string{"c1", "c2", "c3"}

	t.Run("排除上一位发言角色", func(t *testing.T) {
		assert.Equal(t, []string{"c1", "c3"}, SelectCandidates(members, "c2"))
	})

	t.Run("上一条是用户消息时全员候选", func(t *testing.T) {
		assert.Equal(t, members, SelectCandidates(members, ""))
	})

	t.Run("空成员", func(t *testing.T) {
		assert.Empty(t, SelectCandidates(nil, "c1"))
	})
}

func TestSessionEntryRearm(t *testing.T) {
	type firing struct {
		ctx        context.Context
		generation uint64
	}

	t.Run("连续重置只触发一次", func(t *testing.T) {
		entry := &sessionEntry{}
		fired := make(chan firing, 4)
		fire := func(ctx context.Context, generation uint64) {
			fired <- firing{ctx: ctx, generation: generation}
		}

		entry.rearm(80*time.Millisecond, fire)
		entry.rearm(80*time.Millisecond, fire)

		select {
		case got := <-fired:
			assert.Equal(t, uint64(2), got.generation)
			// 重置不打断在途回复，条目上下文保持存活
			assert.NoError(t, got.ctx.Err())
		case <-time.After(2 * time.Second):
			t.Fatal("timer never fired")
		}

		select {
		case <-fired:
			t.Fatal("stopped timer fired anyway")
		case <-time.After(200 * time.Millisecond):
		}
	})

	t.Run("shutdown后定时器停止且上下文取消", func(t *testing.T) {
		entry := &sessionEntry{}
		fired := make(chan firing, 1)

		entry.rearm(80*time.Millisecond, func(ctx context.Context, generation uint64) {
			fired <- firing{ctx: ctx, generation: generation}
		})

		entry.mu.Lock()
		ctx := entry.ctx
		entry.mu.Unlock()
		require.NotNil(t, ctx)

		entry.shutdown()
		assert.ErrorIs(t, ctx.Err(), context.Canceled)

		select {
		case <-fired:
			t.Fatal("timer fired after shutdown")
		case <-time.After(200 * time.Millisecond):
		}
	})
}

func TestReplyDelayDefault(t *testing.T) {
	assert.Equal(t, 6*time.Second, REPLY_DELAY_DEFAULT)
}
