package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Liunian06/LNChat-sub000/pkg/types"
)

func TestIsAvailable(t *testing.T) {
	libraries := map[string]types.EmojiLibrary{
		"lib_global":  {ID: "lib_global", Type: types.EMOJI_LIBRARY_TYPE_GLOBAL},
		"lib_private": {ID: "lib_private", Type: types.EMOJI_LIBRARY_TYPE_PRIVATE, ContactIDs: types.StringList{"c1"}},
	}

	tests := []struct {
		name       string
		emoji      types.Emoji
		contactID  string
		authorized map[string]struct{}
		want       bool
	}{
		{
			name:      "全局库人人可用",
			emoji:     types.Emoji{ID: "e1", LibraryID: "lib_global"},
			contactID: "c2",
			want:      true,
		},
		{
			name:      "私有库绑定成员可用",
			emoji:     types.Emoji{ID: "e2", LibraryID: "lib_private"},
			contactID: "c1",
			want:      true,
		},
		{
			name:      "私有库未绑定成员不可用",
			emoji:     types.Emoji{ID: "e2", LibraryID: "lib_private"},
			contactID: "c2",
			want:      false,
		},
		{
			name:       "单独授权覆盖库限制",
			emoji:      types.Emoji{ID: "e2", LibraryID: "lib_private"},
			contactID:  "c2",
			authorized: map[string]struct{}{"e2": {}},
			want:       true,
		},
		{
			name:      "库不存在时不可用",
			emoji:     types.Emoji{ID: "e3", LibraryID: "lib_gone"},
			contactID: "c1",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isAvailable(tt.emoji, libraries, tt.contactID, tt.authorized)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMembersNeedingGrant(t *testing.T) {
	libraries := map[string]types.EmojiLibrary{
		"lib_global":  {ID: "lib_global", Type: types.EMOJI_LIBRARY_TYPE_GLOBAL},
		"lib_private": {ID: "lib_private", Type: types.EMOJI_LIBRARY_TYPE_PRIVATE, ContactIDs: types.StringList{"c1"}},
	}
	contacts := []types.Contact{
		{ID: "c1"},
		{ID: "c2", AuthorizedEmojiIDs: types.StringList{"e2"}},
		{ID: "c3"},
	}

	t.Run("全局库表情无人需要直授", func(t *testing.T) {
		got := membersNeedingGrant(contacts, libraries, types.Emoji{ID: "e1", LibraryID: "lib_global"})
		assert.Empty(t, got)
	})

	t.Run("绑定成员与已授权成员跳过", func(t *testing.T) {
		got := membersNeedingGrant(contacts, libraries, types.Emoji{ID: "e2", LibraryID: "lib_private"})
		// c1走库绑定，c2走单独授权，只剩c3需要落记录
		ids := make([]string, 0, len(got))
		for _, c := range got {
			ids = append(ids, c.ID)
		}
		assert.Equal(t, []string{"c3"}, ids)
	})
}

func TestSortEmojisByID(t *testing.T) {
	list := []types.Emoji{
		{ID: "emoji_12"},
		{ID: "emoji_3"},
		{ID: "weird"},
		{ID: "emoji_1"},
		{ID: "also_weird"},
	}

	sortEmojisByID(list)

	ids := make([]string, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.ID)
	}
	// 数字后缀升序，无法取数的稳定排在末尾
	assert.Equal(t, []string{"emoji_1", "emoji_3", "emoji_12", "weird", "also_weird"}, ids)
}

func TestIDNumericSuffix(t *testing.T) {
	n, ok := idNumericSuffix("emoji_42")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = idNumericSuffix("emoji_")
	assert.False(t, ok)

	n, ok = idNumericSuffix("7")
	assert.True(t, ok)
	assert.Equal(t, 7, n)
}
