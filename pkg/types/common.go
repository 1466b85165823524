package types

import (
	"encoding/json"
	"fmt"
)

// StringList 以JSON形式落库的字符串列表，用于群聊成员、表情授权等字段
type StringList []string

func (s StringList) String() string {
	if len(s) == 0 {
		return "[]"
	}
	raw, _ := json.Marshal(s)
	return string(raw)
}

func (s *StringList) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		return s.scanBytes(src)
	case string:
		return s.scanBytes([]byte(src))
	case nil:
		*s = nil
		return nil
	}
	return fmt.Errorf("pq: cannot convert %T to StringList", src)
}

func (s *StringList) scanBytes(src []byte) error {
	if len(src) == 0 {
		*s = StringList{}
		return nil
	}
	return json.Unmarshal(src, s)
}

const (
	NO_PAGINATION uint64 = 0
)
