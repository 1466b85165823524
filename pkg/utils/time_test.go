package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateTextCN(t *testing.T) {
	// 2025-04-12 是周六
	day := time.Date(2025, 4, 12, 10, 0, 0, 0, time.Local)
	assert.Equal(t, "2025年4月12日 周六", DateTextCN(day))
}

func TestTimeTextCN(t *testing.T) {
	assert.Equal(t, "08:05", TimeTextCN(time.Date(2025, 4, 12, 8, 5, 0, 0, time.Local)))
}

func TestMessageTimeText(t *testing.T) {
	ts := time.Date(2025, 4, 12, 15, 4, 0, 0, time.Local).Unix()
	assert.Equal(t, "2025-04-12 15:04", MessageTimeText(ts))
}
