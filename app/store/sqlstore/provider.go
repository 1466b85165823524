package sqlstore

import (
	_ "embed"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/Liunian06/LNChat-sub000/app/store"
	"github.com/Liunian06/LNChat-sub000/pkg/register"
	"github.com/Liunian06/LNChat-sub000/pkg/sqlstore"
)

func init() {
	sq.StatementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

//go:embed install.sql
var installSQL string

var provider = &Provider{
	stores: &Stores{},
}

func GetProvider() *Provider {
	return provider
}

type Provider struct {
	*sqlstore.SqlProvider
	stores *Stores
}

type Stores struct {
	store.ContactStore
	store.ChatSessionStore
	store.ChatMessageStore
	store.MemoryStore
	store.DiaryStore
	store.MomentStore
	store.EmojiStore
	store.EmojiLibraryStore
	store.SettingStore
	store.UserPersonaStore
}

type RegisterKey struct{}

func MustSetup(m sqlstore.ConnectConfig, s ...sqlstore.ConnectConfig) func() *Provider {
	provider.SqlProvider = sqlstore.MustSetupProvider(m, s...)

	for _, f := range register.ResolveFuncHandlers[*Provider](RegisterKey{}) {
		f(provider)
	}

	return func() *Provider {
		return provider
	}
}

// Install 初始化所有数据表，幂等
func (p *Provider) Install() error {
	_, err := p.GetMaster().Exec(installSQL)
	return err
}

func (p *Provider) ContactStore() store.ContactStore {
	return p.stores.ContactStore
}

func (p *Provider) ChatSessionStore() store.ChatSessionStore {
	return p.stores.ChatSessionStore
}

func (p *Provider) ChatMessageStore() store.ChatMessageStore {
	return p.stores.ChatMessageStore
}

func (p *Provider) MemoryStore() store.MemoryStore {
	return p.stores.MemoryStore
}

func (p *Provider) DiaryStore() store.DiaryStore {
	return p.stores.DiaryStore
}

func (p *Provider) MomentStore() store.MomentStore {
	return p.stores.MomentStore
}

func (p *Provider) EmojiStore() store.EmojiStore {
	return p.stores.EmojiStore
}

func (p *Provider) EmojiLibraryStore() store.EmojiLibraryStore {
	return p.stores.EmojiLibraryStore
}

func (p *Provider) SettingStore() store.SettingStore {
	return p.stores.SettingStore
}

func (p *Provider) UserPersonaStore() store.UserPersonaStore {
	return p.stores.UserPersonaStore
}
