package gamequery

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"automix-bot/internal/core/domain"

	a2s "github.com/rumblefrog/go-a2s"
)

const DefaultTimeout = 5 * time.Second

// Source engine titles answer the same A2S queries.
var supportedGames = map[string]struct{}{
	"csgo":   {},
	"cs2":    {},
	"tf2":    {},
	"source": {},
}

func Supported(gameType string) bool {
	_, ok := supportedGames[strings.ToLower(gameType)]
	return ok
}

type a2sClient interface {
	QueryInfo() (*a2s.ServerInfo, error)
	QueryPlayer() (*a2s.PlayerInfo, error)
	Close() error
}

type dialFunc func(addr string, timeout time.Duration) (a2sClient, error)

// Querier implements ports.ServerQuerier over A2S.
type Querier struct {
	timeout time.Duration
	dial    dialFunc
}

func NewQuerier(timeout time.Duration) *Querier {
	return newQuerier(timeout, dialA2S)
}

func newQuerier(timeout time.Duration, dial dialFunc) *Querier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Querier{timeout: timeout, dial: dial}
}

type queryOutcome struct {
	result *domain.QueryResult
	err    error
}

// Query asks the server for its info and player list. The A2S client is
// blocking, so the exchange runs on its own goroutine and the caller returns
// as soon as ctx is done.
func (q *Querier) Query(ctx context.Context, endpoint domain.ServerEndpoint) (*domain.QueryResult, error) {
	gameType := endpoint.GameType
	if gameType == "" {
		gameType = "csgo"
	}
	if !Supported(gameType) {
		return nil, fmt.Errorf("unsupported game type %q", endpoint.GameType)
	}

	timeout := q.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("query %s: %w", endpoint.DisplayName, context.DeadlineExceeded)
	}

	addr := net.JoinHostPort(endpoint.Host, strconv.Itoa(endpoint.Port))
	done := make(chan queryOutcome, 1)
	go func() {
		res, err := q.exchange(addr, timeout)
		done <- queryOutcome{result: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("query %s: %w", addr, ctx.Err())
	case out := <-done:
		if out.err != nil {
			return nil, fmt.Errorf("query %s: %w", addr, out.err)
		}
		return out.result, nil
	}
}

func (q *Querier) exchange(addr string, timeout time.Duration) (*domain.QueryResult, error) {
	client, err := q.dial(addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	defer client.Close()

	info, err := client.QueryInfo()
	if err != nil {
		return nil, fmt.Errorf("info: %w", err)
	}

	players, err := client.QueryPlayer()
	if err != nil {
		return nil, fmt.Errorf("players: %w", err)
	}

	result := &domain.QueryResult{MaxPlayers: int(info.MaxPlayers)}
	for _, p := range players.Players {
		if p == nil {
			continue
		}
		result.Players = append(result.Players, domain.Player{Name: p.Name})
	}
	return result, nil
}

func dialA2S(addr string, timeout time.Duration) (a2sClient, error) {
	client, err := a2s.NewClient(addr, a2s.TimeoutOption(timeout))
	if err != nil {
		return nil, err
	}
	return client, nil
}
