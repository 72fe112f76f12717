package errorutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil))

	plain := Wrap(errors.New("boom"))
	assert.Equal(t, CodeInternal, plain.Code)
	assert.False(t, plain.Retryable)

	invalid := InvalidArgument("affected_population must be >= 0")
	wrapped := fmt.Errorf("forecast: %w", invalid)
	assert.Same(t, invalid, Wrap(wrapped))
}

func TestClassification(t *testing.T) {
	assert.True(t, IsInvalidArgument(InvalidArgument("bad")))
	assert.False(t, IsInvalidArgument(Retriable("redis down")))
	assert.False(t, IsInvalidArgument(errors.New("plain")))

	assert.True(t, IsRetryable(fmt.Errorf("publish: %w", Retriable("lmstfy down"))))
	assert.False(t, IsRetryable(NonRetriable("bad payload")))
}
