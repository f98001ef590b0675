package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapUseCaseObserver_LevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	obs := NewZapUseCaseObserver(zap.New(core))
	ctx := context.Background()

	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:     "submit-entry",
		Duration: 12 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"area": "CF final"},
	})
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name: "edit-entry",
		Err:  errors.New("not found"),
	})

	entries := logs.All()
	require.Len(t, entries, 2)

	ok := entries[0]
	assert.Equal(t, zapcore.InfoLevel, ok.Level)
	assert.Equal(t, "service_use_case", ok.Message)
	fields := ok.ContextMap()
	assert.Equal(t, "submit-entry", fields["use_case"])
	assert.Equal(t, int64(12), fields["duration_ms"])
	assert.Equal(t, true, fields["success"])
	assert.Equal(t, "CF final", fields["area"])

	failed := entries[1]
	assert.Equal(t, zapcore.ErrorLevel, failed.Level)
	assert.Equal(t, "not found", failed.ContextMap()["error"])
}

func TestNewZapUseCaseObserver_NilLoggerIsNoop(t *testing.T) {
	obs := NewZapUseCaseObserver(nil)
	_, ok := obs.(NoopUseCaseObserver)
	assert.True(t, ok)
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	rec := &recordingObserver{}
	assert.Equal(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
	assert.Equal(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
}
