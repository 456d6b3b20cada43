package loader

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoFetch(_ context.Context, args string) ([]string, error) {
	return []string{args}, nil
}

func run[T any](t *testing.T, cmd tea.Cmd) Result[T] {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	res, ok := msg.(Result[T])
	require.True(t, ok, "unexpected message %T", msg)
	return res
}

func TestSession_StartBeforeAttachFails(t *testing.T) {
	s := New(1, echoFetch)

	cmd, err := s.Start("a")

	require.ErrorIs(t, err, ErrNotAttached)
	assert.Nil(t, cmd)
	assert.Equal(t, StateIdle, s.State())
}

func TestSession_StartDeliver(t *testing.T) {
	s := New(3, echoFetch)
	s.Attach()

	cmd, err := s.Start("a")
	require.NoError(t, err)
	assert.Equal(t, StateLoading, s.State())

	res := run[string](t, cmd)
	assert.Equal(t, 3, res.LoaderID)

	items, ok := s.Deliver(res)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, items)
	assert.Equal(t, StateDelivered, s.State())
}

func TestSession_StartTwiceKeepsData(t *testing.T) {
	s := New(1, echoFetch)
	s.Attach()

	cmd, err := s.Start("a")
	require.NoError(t, err)
	_, ok := s.Deliver(run[string](t, cmd))
	require.True(t, ok)

	cmd, err = s.Start("b")
	require.NoError(t, err)
	assert.Nil(t, cmd)
	assert.Equal(t, "a", s.Args())
}

func TestSession_RestartSupersedesInFlight(t *testing.T) {
	s := New(1, echoFetch)
	s.Attach()

	first, err := s.Start("old")
	require.NoError(t, err)
	second := s.Restart("new")

	stale := run[string](t, first)
	fresh := run[string](t, second)

	_, ok := s.Deliver(stale)
	assert.False(t, ok, "superseded result must be dropped")
	assert.Equal(t, StateLoading, s.State())

	items, ok := s.Deliver(fresh)
	require.True(t, ok)
	assert.Equal(t, []string{"new"}, items)
}

func TestSession_RestartCancelsContext(t *testing.T) {
	started := make(chan struct{})
	s := New(1, func(ctx context.Context, _ int) ([]int, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})
	s.Attach()

	cmd, err := s.Start(0)
	require.NoError(t, err)

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	<-started

	s.Restart(1)

	select {
	case msg := <-done:
		res := msg.(Result[int])
		require.ErrorIs(t, res.Err, context.Canceled)
		_, ok := s.Deliver(res)
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("in-flight fetch was not canceled")
	}
}

func TestSession_ResetDropsLateResult(t *testing.T) {
	s := New(1, echoFetch)
	s.Attach()

	cmd, err := s.Start("a")
	require.NoError(t, err)
	s.Reset()

	_, ok := s.Deliver(run[string](t, cmd))
	assert.False(t, ok)
	assert.Equal(t, StateReset, s.State())
}

func TestSession_ResetThenStartLoadsAgain(t *testing.T) {
	s := New(1, echoFetch)
	s.Attach()
	s.Reset()

	cmd, err := s.Start("z")
	require.NoError(t, err)
	items, ok := s.Deliver(run[string](t, cmd))
	require.True(t, ok)
	assert.Equal(t, []string{"z"}, items)
}

func TestSession_ForeignLoaderIgnored(t *testing.T) {
	s := New(1, echoFetch)
	s.Attach()
	cmd, err := s.Start("a")
	require.NoError(t, err)

	res := run[string](t, cmd)
	res.LoaderID = 2

	_, ok := s.Deliver(res)
	assert.False(t, ok)
}

func TestSession_ErrorResult(t *testing.T) {
	boom := errors.New("boom")
	s := New(1, func(context.Context, string) ([]string, error) { return []string{"x"}, boom })
	s.Attach()

	cmd, err := s.Start("a")
	require.NoError(t, err)
	res := run[string](t, cmd)

	items, ok := s.Deliver(res)
	assert.True(t, ok)
	assert.Nil(t, items)
	require.ErrorIs(t, res.Err, boom)
	assert.Equal(t, StateDelivered, s.State())
}

func TestSession_Timeout(t *testing.T) {
	s := New(1, func(ctx context.Context, _ string) ([]string, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}, WithTimeout(10*time.Millisecond))
	s.Attach()

	cmd, err := s.Start("a")
	require.NoError(t, err)
	res := run[string](t, cmd)
	require.ErrorIs(t, res.Err, context.DeadlineExceeded)
}

func TestSession_RestartWhileDetached(t *testing.T) {
	s := New(1, echoFetch)
	assert.Nil(t, s.Restart("a"))

	s.Attach()
	s.Detach()
	assert.False(t, s.Attached())
	assert.Nil(t, s.Restart("a"))
}
