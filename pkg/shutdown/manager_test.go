package shutdown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestManager_ReverseOrder(t *testing.T) {
	m := NewManager(zap.NewNop(), time.Second)
	var order []string

	m.RegisterNoErr("database", func() { order = append(order, "database") })
	m.Register("metrics", func(context.Context) error {
		order = append(order, "metrics")
		return nil
	})

	require.NoError(t, m.Shutdown())
	assert.Equal(t, []string{"metrics", "database"}, order)
}

func TestManager_JoinsErrorsAndContinues(t *testing.T) {
	m := NewManager(zap.NewNop(), time.Second)
	closed := false

	m.RegisterNoErr("database", func() { closed = true })
	m.Register("metrics", func(context.Context) error { return errors.New("listener busy") })

	err := m.Shutdown()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics: listener busy")
	assert.True(t, closed)
}

func TestManager_ShutdownOnce(t *testing.T) {
	m := NewManager(zap.NewNop(), time.Second)
	calls := 0
	m.RegisterNoErr("database", func() { calls++ })

	require.NoError(t, m.Shutdown())
	require.NoError(t, m.Shutdown())
	assert.Equal(t, 1, calls)
}

type fakeServer struct{ deadline bool }

func (s *fakeServer) Shutdown(ctx context.Context) error {
	_, s.deadline = ctx.Deadline()
	return nil
}

func TestManager_HTTPServerGetsDeadline(t *testing.T) {
	m := NewManager(zap.NewNop(), time.Second)
	server := &fakeServer{}
	m.RegisterHTTPServer("metrics", server)

	require.NoError(t, m.Shutdown())
	assert.True(t, server.deadline)
}
