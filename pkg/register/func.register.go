package register

import "sync"

// 进程内的初始化函数注册表。store实现在init中挂接自己，
// provider启动时按key统一回调完成装配
var (
	handlers = make(map[any][]any)
	locker   sync.RWMutex
)

type Handler[T any] func(T)

func RegisterFunc[T any](key any, handler Handler[T]) {
	locker.Lock()
	defer locker.Unlock()
	handlers[key] = append(handlers[key], handler)
}

func ResolveFuncHandlers[T any](key any) []Handler[T] {
	locker.RLock()
	defer locker.RUnlock()

	result := make([]Handler[T], 0, len(handlers[key]))
	for _, v := range handlers[key] {
		if h, ok := v.(Handler[T]); ok {
			result = append(result, h)
		}
	}
	return result
}
