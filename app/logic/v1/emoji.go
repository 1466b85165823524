package v1

import (
	"context"
	"database/sql"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/Liunian06/LNChat-sub000/app/core"
	"github.com/Liunian06/LNChat-sub000/pkg/errors"
	"github.com/Liunian06/LNChat-sub000/pkg/i18n"
	"github.com/Liunian06/LNChat-sub000/pkg/types"
)

const (
	EMOJI_DEFAULT_MEANING = "无描述"
	emojiCacheTTL         = time.Minute
)

// emojiCache 表情与表情库全量缓存。表情由外部管理界面维护，
// 变更频率极低，过期后下一次读取触发单次重载
type emojiCache struct {
	mu        sync.RWMutex
	emojis    []types.Emoji
	libraries map[string]types.EmojiLibrary
	loadedAt  time.Time
}

var globalEmojiCache = &emojiCache{}

func (c *emojiCache) snapshot() ([]types.Emoji, map[string]types.EmojiLibrary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if time.Since(c.loadedAt) > emojiCacheTTL {
		return nil, nil, false
	}
	return c.emojis, c.libraries, true
}

func (c *emojiCache) store(emojis []types.Emoji, libraries map[string]types.EmojiLibrary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.emojis = emojis
	c.libraries = libraries
	c.loadedAt = time.Now()
}

func (c *emojiCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadedAt = time.Time{}
}

type EmojiLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewEmojiLogic(ctx context.Context, core *core.Core) *EmojiLogic {
	return &EmojiLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *EmojiLogic) load() ([]types.Emoji, map[string]types.EmojiLibrary, error) {
	if emojis, libraries, ok := globalEmojiCache.snapshot(); ok {
		return emojis, libraries, nil
	}

	emojis, err := l.core.Store().EmojiStore().ListAll(l.ctx)
	if err != nil {
		return nil, nil, errors.New("EmojiLogic.load.EmojiStore.ListAll", i18n.ERROR_INTERNAL, err)
	}
	list, err := l.core.Store().EmojiLibraryStore().ListAll(l.ctx)
	if err != nil {
		return nil, nil, errors.New("EmojiLogic.load.EmojiLibraryStore.ListAll", i18n.ERROR_INTERNAL, err)
	}

	libraries := lo.SliceToMap(list, func(lib types.EmojiLibrary) (string, types.EmojiLibrary) {
		return lib.ID, lib
	})

	globalEmojiCache.store(emojis, libraries)
	return emojis, libraries, nil
}

// AvailableForContact 联系人可用的表情全集：
// 全局库的全部表情 + 绑定了该联系人的私有库表情 + 被单独授权的表情
func (l *EmojiLogic) AvailableForContact(contact types.Contact) ([]types.Emoji, error) {
	emojis, libraries, err := l.load()
	if err != nil {
		return nil, errors.Trace("EmojiLogic.AvailableForContact", err)
	}

	authorized := lo.SliceToMap(contact.AuthorizedEmojiIDs, func(id string) (string, struct{}) {
		return id, struct{}{}
	})

	available := lo.Filter(emojis, func(e types.Emoji, _ int) bool {
		return isAvailable(e, libraries, contact.ID, authorized)
	})

	sortEmojisByID(available)
	return available, nil
}

func isAvailable(e types.Emoji, libraries map[string]types.EmojiLibrary, contactID string, authorized map[string]struct{}) bool {
	if _, ok := authorized[e.ID]; ok {
		return true
	}
	lib, ok := libraries[e.LibraryID]
	if !ok {
		return false
	}
	if lib.Type == types.EMOJI_LIBRARY_TYPE_GLOBAL {
		return true
	}
	return lib.BoundTo(contactID)
}

// sortEmojisByID 按id的数字后缀升序，无法取数的排在末尾，同键保持原序
func sortEmojisByID(list []types.Emoji) {
	sort.SliceStable(list, func(i, j int) bool {
		a, aok := idNumericSuffix(list[i].ID)
		b, bok := idNumericSuffix(list[j].ID)
		if aok != bok {
			return aok
		}
		if !aok {
			return false
		}
		return a < b
	})
}

func idNumericSuffix(id string) (int, bool) {
	idx := strings.LastIndexFunc(id, func(r rune) bool {
		return r < '0' || r > '9'
	})
	digits := id[idx+1:]
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsAvailable 判定某个表情id是否可被该联系人发送
func (l *EmojiLogic) IsAvailable(contact types.Contact, emojiID string) (bool, error) {
	available, err := l.AvailableForContact(contact)
	if err != nil {
		return false, errors.Trace("EmojiLogic.IsAvailable", err)
	}
	return lo.ContainsBy(available, func(e types.Emoji) bool {
		return e.ID == emojiID
	}), nil
}

// AuthorizeForContact 为联系人单独授权一个表情，重复授权为幂等空操作
func (l *EmojiLogic) AuthorizeForContact(contactID, emojiID string) error {
	if _, err := l.core.Store().EmojiStore().Get(l.ctx, emojiID); err != nil {
		if err == sql.ErrNoRows {
			return errors.New("EmojiLogic.AuthorizeForContact.EmojiStore.Get", i18n.ERROR_EMOJI_NOT_FOUND, err).Code(http.StatusNotFound)
		}
		return errors.New("EmojiLogic.AuthorizeForContact.EmojiStore.Get", i18n.ERROR_INTERNAL, err)
	}

	contact, err := l.core.Store().ContactStore().Get(l.ctx, contactID)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.New("EmojiLogic.AuthorizeForContact.ContactStore.Get", i18n.ERROR_CONTACT_NOT_FOUND, err).Code(http.StatusNotFound)
		}
		return errors.New("EmojiLogic.AuthorizeForContact.ContactStore.Get", i18n.ERROR_INTERNAL, err)
	}

	if lo.Contains(contact.AuthorizedEmojiIDs, emojiID) {
		return nil
	}

	updated := append(contact.AuthorizedEmojiIDs, emojiID)
	if err = l.core.Store().ContactStore().UpdateAuthorizedEmojis(l.ctx, contactID, updated); err != nil {
		return errors.New("EmojiLogic.AuthorizeForContact.ContactStore.UpdateAuthorizedEmojis", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

// AuthorizeForGroup 为群聊全体成员授权同一个表情。
// 已经能通过全局库、绑定私有库或单独授权看到该表情的成员不再落直授记录
func (l *EmojiLogic) AuthorizeForGroup(contactIDs []string, emojiID string) error {
	emojis, libraries, err := l.load()
	if err != nil {
		return errors.Trace("EmojiLogic.AuthorizeForGroup", err)
	}
	emoji, ok := lo.Find(emojis, func(e types.Emoji) bool {
		return e.ID == emojiID
	})
	if !ok {
		return errors.New("EmojiLogic.AuthorizeForGroup", i18n.ERROR_EMOJI_NOT_FOUND, sql.ErrNoRows).Code(http.StatusNotFound)
	}

	contacts, err := l.core.Store().ContactStore().ListByIDs(l.ctx, contactIDs)
	if err != nil {
		return errors.New("EmojiLogic.AuthorizeForGroup.ContactStore.ListByIDs", i18n.ERROR_INTERNAL, err)
	}

	for _, contact := range membersNeedingGrant(contacts, libraries, emoji) {
		if err := l.AuthorizeForContact(contact.ID, emojiID); err != nil {
			return errors.Trace("EmojiLogic.AuthorizeForGroup", err)
		}
	}
	return nil
}

// membersNeedingGrant 过滤出真正需要直授记录的成员，已可见该表情的跳过
func membersNeedingGrant(contacts []types.Contact, libraries map[string]types.EmojiLibrary, emoji types.Emoji) []types.Contact {
	return lo.Filter(contacts, func(c types.Contact, _ int) bool {
		authorized := lo.SliceToMap(c.AuthorizedEmojiIDs, func(id string) (string, struct{}) {
			return id, struct{}{}
		})
		return !isAvailable(emoji, libraries, c.ID, authorized)
	})
}

// BuildPromptListing 生成提示词中的可用表情列表，每行一个表情
func (l *EmojiLogic) BuildPromptListing(contact types.Contact) (string, error) {
	available, err := l.AvailableForContact(contact)
	if err != nil {
		return "", errors.Trace("EmojiLogic.BuildPromptListing", err)
	}

	var b strings.Builder
	for _, e := range available {
		meaning := e.Meaning
		if meaning == "" {
			meaning = EMOJI_DEFAULT_MEANING
		}
		b.WriteString(e.ID)
		b.WriteString("：")
		b.WriteString(meaning)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// MeaningOf 查询单个表情的语义描述，查不到时回退表情id本身
func (l *EmojiLogic) MeaningOf(emojiID string) string {
	emojis, _, err := l.load()
	if err != nil {
		return emojiID
	}
	for _, e := range emojis {
		if e.ID == emojiID {
			if e.Meaning == "" {
				return EMOJI_DEFAULT_MEANING
			}
			return e.Meaning
		}
	}
	return emojiID
}

// CreateEmoji 新增表情并使缓存失效
func (l *EmojiLogic) CreateEmoji(data types.Emoji) error {
	if data.ID == "" || data.LibraryID == "" {
		return errors.New("EmojiLogic.CreateEmoji.check", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if err := l.core.Store().EmojiStore().Create(l.ctx, data); err != nil {
		return errors.New("EmojiLogic.CreateEmoji.EmojiStore.Create", i18n.ERROR_INTERNAL, err)
	}
	globalEmojiCache.invalidate()
	return nil
}

// DeleteEmoji 删除表情并使缓存失效
func (l *EmojiLogic) DeleteEmoji(emojiID string) error {
	if err := l.core.Store().EmojiStore().Delete(l.ctx, emojiID); err != nil {
		return errors.New("EmojiLogic.DeleteEmoji.EmojiStore.Delete", i18n.ERROR_INTERNAL, err)
	}
	globalEmojiCache.invalidate()
	return nil
}
