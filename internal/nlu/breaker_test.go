package nlu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreaker_TripAndReset(t *testing.T) {
	b := NewBreaker()
	assert.False(t, b.Open())

	b.Trip()
	assert.True(t, b.Open())

	b.Reset()
	assert.False(t, b.Open())
}

func TestBreaker_ResetOnKeyChange(t *testing.T) {
	b := NewBreaker()
	b.ObserveKey("key-1")
	b.Trip()
	assert.True(t, b.Open())

	// Cùng key: giữ nguyên trạng thái
	b.ObserveKey("key-1")
	assert.True(t, b.Open())

	// Đổi key nghĩa là người vận hành đã cập nhật credential → tự reset
	b.ObserveKey("key-2")
	assert.False(t, b.Open())
}

func TestBreaker_TripOnQuotaError(t *testing.T) {
	b := NewBreaker()

	assert.False(t, b.TripOnQuotaError(nil))
	assert.False(t, b.TripOnQuotaError(errors.New("connection refused")))
	assert.False(t, b.Open(), "lỗi thường không được trip breaker")

	assert.True(t, b.TripOnQuotaError(errors.New("googleapi: Error 429: quota exceeded")))
	assert.True(t, b.Open())
}

func TestIsQuotaError(t *testing.T) {
	assert.False(t, IsQuotaError(nil))
	assert.False(t, IsQuotaError(errors.New("timeout")))
	assert.True(t, IsQuotaError(errors.New("status 429")))
	assert.True(t, IsQuotaError(errors.New("Quota exceeded for model")))
	assert.True(t, IsQuotaError(errors.New("RESOURCE_EXHAUSTED")))
}
