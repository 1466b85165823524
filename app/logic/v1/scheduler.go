package v1

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/robfig/cron/v3"
	"github.com/samber/lo"

	"github.com/Liunian06/LNChat-sub000/app/core"
	"github.com/Liunian06/LNChat-sub000/pkg/safe"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
)

const (
	REPLY_DELAY_DEFAULT = 6 * time.Second
	schedulerIdleTTL    = 24 * time.Hour
)

var (
	defaultScheduler *Scheduler
	schedulerOnce    sync.Once
)

// SetupScheduler 进程内唯一的回复调度器，服务启动时调用一次
func SetupScheduler(core *core.Core) *Scheduler {
	schedulerOnce.Do(func() {
		defaultScheduler = NewScheduler(core)
		defaultScheduler.StartSweeper()
	})
	return defaultScheduler
}

func GetScheduler() *Scheduler {
	return defaultScheduler
}

// Scheduler 为每个会话维护一个防抖定时器。
// 用户连续发言只触发一次回复，新消息会取消尚未触发的回复
type Scheduler struct {
	core    *core.Core
	entries cmap.ConcurrentMap[string, *sessionEntry]
	cron    *cron.Cron
}

type sessionEntry struct {
	mu         sync.Mutex
	timer      *time.Timer
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	lastArmed  time.Time
}

// rearm 替换尚未触发的定时器并递增代数。条目上下文只在shutdown时取消，
// 已在途的回复不会被新消息打断，只靠代数失配拦截它后续的再武装
func (e *sessionEntry) rearm(delay time.Duration, fire func(ctx context.Context, generation uint64)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.generation++
	e.lastArmed = time.Now()
	if e.timer != nil {
		e.timer.Stop()
	}
	if e.cancel == nil {
		e.ctx, e.cancel = context.WithCancel(context.Background())
	}

	ctx, generation := e.ctx, e.generation
	e.timer = time.AfterFunc(delay, func() {
		fire(ctx, generation)
	})
}

func (e *sessionEntry) shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.generation++
	if e.timer != nil {
		e.timer.Stop()
	}
	if e.cancel != nil {
		e.cancel()
	}
}

func NewScheduler(core *core.Core) *Scheduler {
	return &Scheduler{
		core:    core,
		entries: cmap.New[*sessionEntry](),
	}
}

// StartSweeper 每小时清理超过24小时未活动的会话条目
func (s *Scheduler) StartSweeper() {
	s.cron = cron.New()
	s.cron.AddFunc("@hourly", s.sweep)
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	for item := range s.entries.IterBuffered() {
		item.Val.shutdown()
	}
}

func (s *Scheduler) sweep() {
	var stale []string
	for item := range s.entries.IterBuffered() {
		item.Val.mu.Lock()
		idle := time.Since(item.Val.lastArmed)
		item.Val.mu.Unlock()
		if idle > schedulerIdleTTL {
			stale = append(stale, item.Key)
		}
	}
	for _, key := range stale {
		s.entries.Remove(key)
	}
	if len(stale) > 0 {
		slog.Debug("scheduler sweeped idle sessions", slog.Int("count", len(stale)))
	}
}

// Arm 重置会话的回复定时器。只有尚未触发的定时器被取消替换，
// 已在途的回复照常完成并落库，其后续轮次由代数失配终止
func (s *Scheduler) Arm(session *types.ChatSession) {
	delay := s.replyDelay()

	entry := s.entries.Upsert(session.ID, nil, func(exist bool, valueInMap, _ *sessionEntry) *sessionEntry {
		if exist {
			return valueInMap
		}
		return &sessionEntry{}
	})

	sessionID := session.ID
	entry.rearm(delay, func(ctx context.Context, generation uint64) {
		safe.RunWithLog(func() {
			s.fire(ctx, sessionID, generation)
		}, "scheduler.fire")
	})
}

// replyDelay settings里接口预设的延迟优先，其次部署配置，最后内置默认
func (s *Scheduler) replyDelay() time.Duration {
	promptLogic := NewPromptLogic(context.Background(), s.core)
	if preset, err := promptLogic.APIPreset(); err == nil && preset.ReplyDelay > 0 {
		return time.Duration(preset.ReplyDelay * float64(time.Second))
	}
	if cfg := s.core.Cfg().Chat.ReplyDelay; cfg > 0 {
		return time.Duration(cfg * float64(time.Second))
	}
	return REPLY_DELAY_DEFAULT
}

func (s *Scheduler) current(sessionID string) (uint64, bool) {
	entry, ok := s.entries.Get(sessionID)
	if !ok {
		return 0, false
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.generation, true
}

func (s *Scheduler) fire(ctx context.Context, sessionID string, generation uint64) {
	if current, ok := s.current(sessionID); !ok || current != generation {
		return
	}

	session, err := s.core.Store().ChatSessionStore().Get(ctx, sessionID)
	if err != nil {
		if err != sql.ErrNoRows {
			slog.Error("scheduler failed to load session", slog.String("session_id", sessionID), slog.String("error", err.Error()))
		}
		return
	}

	if session.IsGroup() {
		s.fireGroup(ctx, session, generation)
		return
	}

	chatLogic := NewChatLogic(ctx, s.core)
	if _, err := chatLogic.RequestAssistant(session, session.ContactID); err != nil {
		slog.Error("scheduler reply failed",
			slog.String("session_id", sessionID),
			slog.String("contact_id", session.ContactID),
			slog.String("error", err.Error()))
	}
}

// fireGroup 群聊一轮发言：除上一位发言角色外的成员并发各自回复。
// 只要有人开口就再武装一轮，直到整轮静默或用户插话
func (s *Scheduler) fireGroup(ctx context.Context, session *types.ChatSession, generation uint64) {
	lastSpeaker := ""
	if latest, err := s.core.Store().ChatMessageStore().GetSessionLatest(ctx, session.ID); err == nil && latest.Sender == types.SENDER_ASSISTANT {
		lastSpeaker = latest.ContactID
	}

	candidates := SelectCandidates(session.Members(), lastSpeaker)
	if len(candidates) == 0 {
		return
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		spoken bool
	)
	for _, contactID := range candidates {
		contactID := contactID
		wg.Add(1)
		go safe.Run(func() {
			defer wg.Done()
			if current, ok := s.current(session.ID); !ok || current != generation {
				return
			}
			chatLogic := NewChatLogic(ctx, s.core)
			created, err := chatLogic.RequestAssistant(session, contactID)
			if err != nil {
				// 单个成员失败不影响本轮其他成员
				slog.Error("group member reply failed",
					slog.String("session_id", session.ID),
					slog.String("contact_id", contactID),
					slog.String("error", err.Error()))
				return
			}
			if len(created) > 0 {
				mu.Lock()
				spoken = true
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	if !spoken {
		return
	}
	if current, ok := s.current(session.ID); !ok || current != generation {
		return
	}
	s.Arm(session)
}

// SelectCandidates 本轮发言候选：全体成员去掉上一位发言角色
func SelectCandidates(members []string, lastSpeaker string) []string {
	return lo.Filter(members, func(id string, _ int) bool {
		return id != lastSpeaker
	})
}
