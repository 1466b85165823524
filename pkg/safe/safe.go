package safe

import (
	"log/slog"
	"runtime/debug"
)

// Run 执行fn并兜住panic，后台goroutine一律经由此函数启动
func Run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered",
				slog.Any("recover", r),
				slog.String("component", "safe.Run"),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	fn()
}

// RunWithLog 同Run，但允许标注发生panic的组件名
func RunWithLog(fn func(), component string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered",
				slog.Any("recover", r),
				slog.String("component", component),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	fn()
}
