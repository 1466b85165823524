package types

type MemoryType string

const (
	MEMORY_TYPE_FACT = MemoryType("fact")
)

// Memory 联系人的长期记忆，只增不改，用于扩展后续提示词
type Memory struct {
	ID        string     `json:"id" db:"id"`
	ContactID string     `json:"contact_id" db:"contact_id"`
	Content   string     `json:"content" db:"content"`
	Date      string     `json:"date" db:"date"`
	Type      MemoryType `json:"memory_type" db:"memory_type"`
}
