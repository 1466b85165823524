package types

type EmojiLibraryType string

const (
	EMOJI_LIBRARY_TYPE_GLOBAL  = EmojiLibraryType("global")
	EMOJI_LIBRARY_TYPE_PRIVATE = EmojiLibraryType("private")
)

type Emoji struct {
	ID        string `json:"id" db:"id"`
	Meaning   string `json:"meaning" db:"meaning"`
	LibraryID string `json:"library_id" db:"library_id"`
	Image     string `json:"image" db:"image"`
}

type EmojiLibrary struct {
	ID         string           `json:"id" db:"id"`
	Name       string           `json:"name" db:"name"`
	Type       EmojiLibraryType `json:"library_type" db:"library_type"`
	ContactIDs StringList       `json:"contact_ids" db:"contact_ids"`
}

// BoundTo 私有表情库是否绑定到指定联系人
func (l *EmojiLibrary) BoundTo(contactID string) bool {
	if l.Type != EMOJI_LIBRARY_TYPE_PRIVATE {
		return false
	}
	for _, id := range l.ContactIDs {
		if id == contactID {
			return true
		}
	}
	return false
}
