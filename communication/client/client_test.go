package client

import (
	"context"
	"mcts/communication"
	"mcts/communication/server"
	"mcts/game"
	"mcts/searcher"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	s := searcher.New(game.NewConnectFour(), searcher.WithSeed(3))
	for i := 0; i < 40; i++ {
		require.NoError(t, s.Step())
	}
	srv := httptest.NewServer(server.New(s, time.Millisecond).Handler())
	defer srv.Close()
	c := NewClient(srv.URL + "/")
	ctx := context.Background()

	status, err := c.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, 40, status.Iterations)
	require.False(t, status.Finished)

	children, err := c.RootChildren(ctx)
	require.NoError(t, err)
	require.Len(t, children, 7)

	node, err := c.Node(ctx, children[3].ID)
	require.NoError(t, err)
	require.Equal(t, children[3], node)

	_, err = c.Node(ctx, 1_000_000)
	require.ErrorIs(t, err, ErrNotFound)

	status, err = c.Finish(ctx)
	require.NoError(t, err)
	require.True(t, status.Finished)
}

func TestWatch(t *testing.T) {
	t.Run("streams until the search finishes", func(t *testing.T) {
		s := searcher.New(game.NewTicTacToe(), searcher.WithSeed(4))
		srv := httptest.NewServer(server.New(s, time.Millisecond).Handler())
		defer srv.Close()

		done := make(chan error, 1)
		go func() {
			done <- s.RunFor(context.Background(), 50*time.Millisecond)
		}()

		var statuses []communication.Status
		err := NewClient(srv.URL).Watch(context.Background(), func(status communication.Status) {
			statuses = append(statuses, status)
		})
		require.NoError(t, err)
		require.NoError(t, <-done)

		require.NotEmpty(t, statuses)
		last := statuses[len(statuses)-1]
		require.True(t, last.Finished)
		for i := 1; i < len(statuses); i++ {
			require.GreaterOrEqual(t, statuses[i].Iterations, statuses[i-1].Iterations)
		}
	})

	t.Run("context ends the watch", func(t *testing.T) {
		s := searcher.New(game.NewTicTacToe()) // Never stepped nor finished
		srv := httptest.NewServer(server.New(s, time.Millisecond).Handler())
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()

		err := NewClient(srv.URL).Watch(ctx, func(communication.Status) {})
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("unreachable server", func(t *testing.T) {
		err := NewClient("http://127.0.0.1:1").Watch(context.Background(), func(communication.Status) {})
		require.Error(t, err)
	})
}
