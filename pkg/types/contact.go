package types

// Contact AI角色配置。核心逻辑只读，角色的创建与编辑由外部管理界面完成
type Contact struct {
	ID                 string     `json:"id" db:"id"`
	Name               string     `json:"name" db:"name"`
	Description        string     `json:"description" db:"description"`
	Avatar             string     `json:"avatar" db:"avatar"`
	Temperature        float32    `json:"temperature" db:"temperature"`
	AuthorizedEmojiIDs StringList `json:"authorized_emoji_ids" db:"authorized_emoji_ids"`
	CreatedAt          int64      `json:"created_at" db:"created_at"`
}

// UserPersona 用户人设，可被会话绑定后注入提示词
type UserPersona struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}
