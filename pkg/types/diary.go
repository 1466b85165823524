package types

const (
	DIARY_DEFAULT_MOOD = "平静"
	DIARY_SOURCE_AI    = "ai"
)

// Diary 联系人视角的日记，由回复副通道抽取生成
type Diary struct {
	ID        string `json:"id" db:"id"`
	ContactID string `json:"contact_id" db:"contact_id"`
	Content   string `json:"content" db:"content"`
	Mood      string `json:"mood" db:"mood"`
	Source    string `json:"source" db:"source"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

// Moment 社交动态（朋友圈），由回复副通道抽取生成
type Moment struct {
	ID        string `json:"id" db:"id"`
	ContactID string `json:"contact_id" db:"contact_id"`
	Content   string `json:"content" db:"content"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}
