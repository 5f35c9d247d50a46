package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// AsyncHook là một hook để ghi log bất đồng bộ, tránh blocking request handling.
// Hook này buffer log entries và ghi chúng vào các writers trong một goroutine riêng.
type AsyncHook struct {
	writers    []io.Writer // Danh sách các writers (file, stdout, etc.)
	entries    chan *logrus.Entry
	wg         sync.WaitGroup
	mu         sync.Mutex
	closed     bool
	bufferSize int
}

// NewAsyncHookWithWriters tạo một async hook mới với nhiều writers.
// bufferSize: kích thước buffer cho log entries (mặc định 1000)
func NewAsyncHookWithWriters(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	hook := &AsyncHook{
		writers:    writers,
		entries:    make(chan *logrus.Entry, bufferSize),
		bufferSize: bufferSize,
	}

	hook.wg.Add(1)
	go hook.processEntries()

	return hook
}

// Levels trả về các log levels mà hook này xử lý
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire được gọi mỗi khi có log entry mới.
// Hàm này không block: nếu buffer đầy, entry bị drop thay vì chặn request.
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		return nil
	}

	// Copy entry vì logrus tái sử dụng entry sau khi Fire trả về
	dup := entry.Dup()
	dup.Level = entry.Level
	dup.Message = entry.Message

	select {
	case h.entries <- dup:
	default:
		// Buffer đầy — drop entry, ghi cảnh báo trực tiếp ra stderr
		fmt.Fprintf(os.Stderr, "logger: async buffer full, dropped entry: %s\n", entry.Message)
	}
	return nil
}

// processEntries chạy trong goroutine riêng, format và ghi từng entry vào các writers
func (h *AsyncHook) processEntries() {
	defer h.wg.Done()
	for entry := range h.entries {
		line, err := entry.Logger.Formatter.Format(entry)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logger: failed to format entry: %v\n", err)
			continue
		}
		for _, w := range h.writers {
			if _, err := w.Write(line); err != nil {
				fmt.Fprintf(os.Stderr, "logger: failed to write entry: %v\n", err)
			}
		}
	}
}

// Close dừng hook và chờ goroutine ghi nốt các entries còn lại trong buffer
func (h *AsyncHook) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	h.mu.Unlock()

	close(h.entries)
	h.wg.Wait()
}
