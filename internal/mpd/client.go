package mpd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	gompd "github.com/fhs/gompd/v2/mpd"
)

// Source defines the playback daemon operations the browser consumes.
// This interface is implemented by *Client and can be used for testing.
type Source interface {
	FetchStatus(ctx context.Context) (Snapshot, error)
	FetchQueue(ctx context.Context) ([]QueueEntry, error)
	Seek(ctx context.Context, position time.Duration) error
	JumpTo(ctx context.Context, pos int) error
}

// Ensure Client implements Source at compile time.
var _ Source = (*Client)(nil)

// ErrClosed is returned by operations on a closed client.
var ErrClosed = errors.New("mpd client closed")

const defaultAddress = "127.0.0.1:6600"

// Client talks to MPD over TCP or a unix socket. A failed command drops the
// connection; the next call redials.
type Client struct {
	network  string
	address  string
	password string

	mu     sync.Mutex
	conn   *gompd.Client
	closed bool
}

// NewClient builds a Client for address. Addresses starting with "/" or "@"
// are treated as unix sockets. No connection is made until first use.
func NewClient(address, password string) *Client {
	network, addr := splitAddress(address)
	return &Client{
		network:  network,
		address:  addr,
		password: password,
	}
}

// Address returns the resolved network and address.
func (c *Client) Address() (string, string) {
	return c.network, c.address
}

// Connect dials the daemon eagerly so startup can fail fast.
func (c *Client) Connect(ctx context.Context) error {
	return c.with(ctx, func(conn *gompd.Client) error {
		return conn.Ping()
	})
}

// FetchStatus reads the current playback status.
func (c *Client) FetchStatus(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := c.with(ctx, func(conn *gompd.Client) error {
		attrs, err := conn.Status()
		if err != nil {
			return fmt.Errorf("status: %w", err)
		}
		snap = parseStatus(attrs)
		return nil
	})
	return snap, err
}

// FetchQueue reads the full play queue in queue order.
func (c *Client) FetchQueue(ctx context.Context) ([]QueueEntry, error) {
	var entries []QueueEntry
	err := c.with(ctx, func(conn *gompd.Client) error {
		list, err := conn.PlaylistInfo(-1, -1)
		if err != nil {
			return fmt.Errorf("playlistinfo: %w", err)
		}
		entries = make([]QueueEntry, 0, len(list))
		for i, attrs := range list {
			entries = append(entries, parseEntry(attrs, i))
		}
		return nil
	})
	return entries, err
}

// Seek moves playback of the current song to position, truncated to whole
// seconds.
func (c *Client) Seek(ctx context.Context, position time.Duration) error {
	if position < 0 {
		position = 0
	}
	position = position.Truncate(time.Second)
	return c.with(ctx, func(conn *gompd.Client) error {
		if err := conn.SeekCur(position, false); err != nil {
			return fmt.Errorf("seekcur: %w", err)
		}
		return nil
	})
}

// JumpTo starts playback at queue position pos.
func (c *Client) JumpTo(ctx context.Context, pos int) error {
	if pos < 0 {
		return fmt.Errorf("invalid queue position %d", pos)
	}
	return c.with(ctx, func(conn *gompd.Client) error {
		if err := conn.Play(pos); err != nil {
			return fmt.Errorf("play %d: %w", pos, err)
		}
		return nil
	})
}

// Close releases the connection. Further calls return ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Client) with(ctx context.Context, fn func(conn *gompd.Client) error) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.conn == nil {
		conn, err := c.dial()
		if err != nil {
			return fmt.Errorf("dial %s %s: %w", c.network, c.address, err)
		}
		c.conn = conn
	}

	if err := fn(c.conn); err != nil {
		_ = c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}

func (c *Client) dial() (*gompd.Client, error) {
	if c.password != "" {
		return gompd.DialAuthenticated(c.network, c.address, c.password)
	}
	return gompd.Dial(c.network, c.address)
}

func splitAddress(address string) (string, string) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return "tcp", defaultAddress
	}
	if strings.HasPrefix(trimmed, "/") || strings.HasPrefix(trimmed, "@") {
		return "unix", trimmed
	}
	return "tcp", trimmed
}
