package types

import "fmt"

type TableName string

func (s TableName) Name() string {
	return fmt.Sprintf("%s%s", TABLE_PREFIX, s)
}

const TABLE_PREFIX = "lnchat_"

const (
	TABLE_CONTACT       = TableName("contact")
	TABLE_CHAT_SESSION  = TableName("chat_session")
	TABLE_CHAT_MESSAGE  = TableName("chat_message")
	TABLE_MEMORY        = TableName("memory")
	TABLE_DIARY         = TableName("diary")
	TABLE_MOMENT        = TableName("moment")
	TABLE_EMOJI         = TableName("emoji")
	TABLE_EMOJI_LIBRARY = TableName("emoji_library")
	TABLE_SETTING       = TableName("setting")
	TABLE_USER_PERSONA  = TableName("user_persona")
)
