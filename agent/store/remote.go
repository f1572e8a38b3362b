package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrInvalidSnapshot  = errors.New("snapshot name is empty")
)

const (
	defaultSnapshotKeyPrefix = "oms:snapshot:"
	maxResponseSizeBytes     = 2 << 20
)

// SnapshotOption customizes RedisSnapshotStore.
type SnapshotOption func(*RedisSnapshotStore)

func WithKeyPrefix(prefix string) SnapshotOption {
	return func(s *RedisSnapshotStore) {
		trimmed := strings.TrimSpace(prefix)
		if trimmed != "" {
			s.keyPrefix = trimmed
		}
	}
}

func WithHTTPClient(client *http.Client) SnapshotOption {
	return func(s *RedisSnapshotStore) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// RedisSnapshotStore persists named record-set snapshots (products, orders,
// users) in Upstash Redis via its REST interface. It is the alternative to
// file persistence; the snapshot payload is the same JSON array either way.
type RedisSnapshotStore struct {
	baseURL    string
	token      string
	httpClient *http.Client
	keyPrefix  string
}

type redisRESTResponse struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

type SnapshotConfig struct {
	URL     string        `envconfig:"URL" split_words:"true" required:"true"`
	Token   string        `envconfig:"TOKEN" split_words:"true" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

func NewRedisSnapshotStore(cfg SnapshotConfig, opts ...SnapshotOption) (*RedisSnapshotStore, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("redis rest url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid redis rest url: %w", err)
	}

	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("redis rest token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	s := &RedisSnapshotStore{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		keyPrefix:  defaultSnapshotKeyPrefix,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Save stores records under the named snapshot key. records is marshalled
// as-is, so callers pass the same slices they would hand to SaveFile.
func (s *RedisSnapshotStore) Save(ctx context.Context, name string, records any) error {
	key, err := s.snapshotKey(name)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", name, err)
	}

	_, err = s.exec(ctx, []any{"SET", key, string(payload)})
	return err
}

// Load reads the named snapshot into out (a pointer to a slice). A missing
// key returns ErrSnapshotNotFound; callers treat that as an empty set.
func (s *RedisSnapshotStore) Load(ctx context.Context, name string, out any) error {
	key, err := s.snapshotKey(name)
	if err != nil {
		return err
	}

	resp, err := s.exec(ctx, []any{"GET", key})
	if err != nil {
		return err
	}

	result := bytes.TrimSpace(resp.Result)
	if len(result) == 0 || bytes.Equal(result, []byte("null")) {
		return ErrSnapshotNotFound
	}

	var encoded string
	if err := json.Unmarshal(result, &encoded); err != nil {
		return fmt.Errorf("decode snapshot payload: %w", err)
	}
	if err := json.Unmarshal([]byte(encoded), out); err != nil {
		return fmt.Errorf("unmarshal snapshot %s: %w", name, err)
	}
	return nil
}

func (s *RedisSnapshotStore) Delete(ctx context.Context, name string) error {
	key, err := s.snapshotKey(name)
	if err != nil {
		return err
	}
	_, err = s.exec(ctx, []any{"DEL", key})
	return err
}

func (s *RedisSnapshotStore) snapshotKey(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrInvalidSnapshot
	}
	return strings.TrimSpace(s.keyPrefix) + name, nil
}

func (s *RedisSnapshotStore) exec(ctx context.Context, command []any) (*redisRESTResponse, error) {
	body, err := json.Marshal(command)
	if err != nil {
		return nil, fmt.Errorf("marshal redis command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build redis request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute redis request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read redis response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("redis http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed redisRESTResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode redis response: %w", err)
	}
	if parsed.Error != "" {
		return nil, errors.New(parsed.Error)
	}
	return &parsed, nil
}
