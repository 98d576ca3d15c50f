package clients

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/srinijamadireddy19/Blog-Digest/config"
)

const (
	VALKEY_RESULT_PREFIX = "blogdigest:result:"
	VALKEY_RETRIES       = 3
)

var ErrResultNotFound = errors.New("result not found")

// ValkeyClient stores result envelopes as JSON under a per-id key.
type ValkeyClient struct {
	Client   valkey.Client
	settings config.ValkeySettings
	mu       sync.Mutex
}

func NewValkeyClient(settings config.ValkeySettings) (*ValkeyClient, error) {
	client, err := connectValkey(settings)
	if err != nil {
		return nil, err
	}
	return &ValkeyClient{Client: client, settings: settings}, nil
}

func connectValkey(settings config.ValkeySettings) (valkey.Client, error) {
	if settings.Address == "" {
		return nil, errors.New("[ValkeyClient] VALKEY_INIT_ADDRESS is not set")
	}

	opts := valkey.ClientOption{
		InitAddress:      []string{settings.Address},
		Password:         settings.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if settings.UseTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey",
		slog.String("address", settings.Address))
	return client, nil
}

func (vc *ValkeyClient) recreateClient() {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	client, err := connectValkey(vc.settings)
	if err != nil {
		slog.Error("[ValkeyClient] Recreate failed", slog.String("error", err.Error()))
		return
	}
	vc.Client.Close()
	vc.Client = client
}

func (vc *ValkeyClient) client() valkey.Client {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.Client
}

func (vc *ValkeyClient) Close() {
	vc.client().Close()
}

// SaveResult writes the encoded result for id and sets its expiry.
func (vc *ValkeyClient) SaveResult(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	key := resultKey(id)
	build := func(b valkey.Builder) []valkey.Completed {
		return []valkey.Completed{
			b.Set().Key(key).Value(valkey.BinaryString(data)).Build(),
			b.Expire().Key(key).Seconds(int64(ttl / time.Second)).Build(),
		}
	}

	for _, res := range vc.DoMultiWithRetry(ctx, build, VALKEY_RETRIES) {
		if err := res.Error(); err != nil {
			return fmt.Errorf("failed to save result %s: %w", id, err)
		}
	}

	slog.Debug("[ValkeyClient] Result saved",
		slog.String("id", id),
		slog.Duration("ttl", ttl))
	return nil
}

// LoadResult returns ErrResultNotFound for a missing or expired id.
func (vc *ValkeyClient) LoadResult(ctx context.Context, id string) ([]byte, error) {
	key := resultKey(id)
	res := vc.DoWithRetry(ctx, func(b valkey.Builder) valkey.Completed {
		return b.Get().Key(key).Build()
	}, VALKEY_RETRIES)

	data, err := res.AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load result %s: %w", id, err)
	}
	return data, nil
}

func resultKey(id string) string {
	return VALKEY_RESULT_PREFIX + id
}

// DoMultiWithRetry rebuilds the commands on every attempt; a command is
// recycled once it has been sent.
func (vc *ValkeyClient) DoMultiWithRetry(ctx context.Context, build func(valkey.Builder) []valkey.Completed, retries int) []valkey.ValkeyResult {
	var results []valkey.ValkeyResult

	for i := 0; i < retries; i++ {
		c := vc.client()
		results = c.DoMulti(ctx, build(c.B())...)
		hasErr := false
		for _, r := range results {
			if r.Error() != nil {
				hasErr = true
				slog.Warn("[ValkeyClient] Do Multi failed",
					slog.Int("attempt", i+1),
					slog.String("error", r.Error().Error()))
				if isConnectionError(r.Error()) {
					vc.recreateClient()
				}
				break
			}
		}
		if !hasErr {
			break
		}
		time.Sleep(250 * time.Millisecond)
	}

	return results
}

// DoWithRetry does not retry a nil reply; a missing key is an answer.
func (vc *ValkeyClient) DoWithRetry(ctx context.Context, build func(valkey.Builder) valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		c := vc.client()
		result = c.Do(ctx, build(c.B()))
		err := result.Error()
		if err == nil || valkey.IsValkeyNil(err) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		if isConnectionError(err) {
			vc.recreateClient()
		}

		time.Sleep(250 * time.Millisecond)
	}

	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
