package gamequery

import (
	"context"
	"errors"
	"testing"
	"time"

	"automix-bot/internal/core/domain"

	a2s "github.com/rumblefrog/go-a2s"
)

type mockClient struct {
	queryInfoFunc   func() (*a2s.ServerInfo, error)
	queryPlayerFunc func() (*a2s.PlayerInfo, error)
	closed          bool
}

func (m *mockClient) QueryInfo() (*a2s.ServerInfo, error) {
	if m.queryInfoFunc != nil {
		return m.queryInfoFunc()
	}
	return &a2s.ServerInfo{}, nil
}

func (m *mockClient) QueryPlayer() (*a2s.PlayerInfo, error) {
	if m.queryPlayerFunc != nil {
		return m.queryPlayerFunc()
	}
	return &a2s.PlayerInfo{}, nil
}

func (m *mockClient) Close() error {
	m.closed = true
	return nil
}

var testEndpoint = domain.ServerEndpoint{
	DisplayName: "Mix #1",
	Host:        "10.0.0.1",
	Port:        27015,
	GameType:    "cs2",
}

func TestQuerier_Query(t *testing.T) {
	client := &mockClient{
		queryInfoFunc: func() (*a2s.ServerInfo, error) {
			return &a2s.ServerInfo{MaxPlayers: 12}, nil
		},
		queryPlayerFunc: func() (*a2s.PlayerInfo, error) {
			return &a2s.PlayerInfo{Players: []*a2s.Player{{Name: "alice"}, nil, {Name: "maxfps tv"}}}, nil
		},
	}
	var gotAddr string
	q := newQuerier(time.Second, func(addr string, timeout time.Duration) (a2sClient, error) {
		gotAddr = addr
		return client, nil
	})

	res, err := q.Query(context.Background(), testEndpoint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAddr != "10.0.0.1:27015" {
		t.Errorf("unexpected addr %s", gotAddr)
	}
	if res.MaxPlayers != 12 || len(res.Players) != 2 || res.Players[0].Name != "alice" {
		t.Errorf("unexpected result: %+v", res)
	}
	if !client.closed {
		t.Error("expected client to be closed")
	}
}

func TestQuerier_Errors(t *testing.T) {
	tests := []struct {
		name string
		dial dialFunc
	}{
		{
			name: "dial",
			dial: func(string, time.Duration) (a2sClient, error) { return nil, errors.New("no route") },
		},
		{
			name: "info",
			dial: func(string, time.Duration) (a2sClient, error) {
				return &mockClient{queryInfoFunc: func() (*a2s.ServerInfo, error) { return nil, errors.New("timeout") }}, nil
			},
		},
		{
			name: "players",
			dial: func(string, time.Duration) (a2sClient, error) {
				return &mockClient{queryPlayerFunc: func() (*a2s.PlayerInfo, error) { return nil, errors.New("timeout") }}, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := newQuerier(time.Second, tt.dial).Query(context.Background(), testEndpoint); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestQuerier_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	q := newQuerier(time.Minute, func(string, time.Duration) (a2sClient, error) {
		return &mockClient{queryInfoFunc: func() (*a2s.ServerInfo, error) {
			<-release
			return &a2s.ServerInfo{}, nil
		}}, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := q.Query(ctx, testEndpoint)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("query did not return promptly on deadline")
	}
}

func TestQuerier_TimeoutFromDeadline(t *testing.T) {
	var gotTimeout time.Duration
	q := newQuerier(time.Minute, func(addr string, timeout time.Duration) (a2sClient, error) {
		gotTimeout = timeout
		return &mockClient{}, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := q.Query(ctx, testEndpoint); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotTimeout > 2*time.Second || gotTimeout <= 0 {
		t.Errorf("expected timeout bounded by context deadline, got %v", gotTimeout)
	}
}

func TestQuerier_UnsupportedGame(t *testing.T) {
	q := newQuerier(time.Second, func(string, time.Duration) (a2sClient, error) {
		t.Fatal("dial must not be called")
		return nil, nil
	})

	ep := testEndpoint
	ep.GameType = "minecraft"
	if _, err := q.Query(context.Background(), ep); err == nil {
		t.Fatal("expected error")
	}
}

func TestSupported(t *testing.T) {
	for _, g := range []string{"csgo", "CS2", "tf2", "source"} {
		if !Supported(g) {
			t.Errorf("expected %s to be supported", g)
		}
	}
	if Supported("quake") {
		t.Error("expected quake to be unsupported")
	}
}
