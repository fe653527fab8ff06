//go:build integration

package integration

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/polydash/clob-client/internal/testutil"
	"github.com/polydash/clob-client/pkg/auth"
	"github.com/polydash/clob-client/pkg/client"
	"github.com/polydash/clob-client/pkg/creds"
	"github.com/polydash/clob-client/pkg/fetch"
)

// setupRedis creates a Redis container for integration testing.
func setupRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("Failed to get Redis endpoint: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: endpoint})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to connect to Redis: %v", err)
	}

	cleanup := func() {
		redisClient.Close()
		container.Terminate(ctx)
	}

	return redisClient, cleanup
}

// TestFullAuthenticatedFlow provisions a credential in Redis, then runs a
// signed call end to end: Lookup -> Sign -> Fetch -> Normalize.
func TestFullAuthenticatedFlow(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	mock := testutil.NewMockCLOB()
	defer mock.Close()
	mock.SetResponse("/data/orders", testutil.NewDataEnvelopeResponse(`[{"id": "order-1"}]`))

	ctx := context.Background()

	store := creds.NewRedisStore(redisClient)
	if err := store.Put(ctx, "maker-bot", auth.Credential{
		APIKey:        "key-123",
		APISecret:     "c3VwZXItc2VjcmV0LXNpZ25pbmcta2V5",
		APIPassphrase: "passphrase-456",
	}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	clobClient, err := client.New(client.Config{
		BaseURL:     mock.URL(),
		Address:     "0xabc",
		Credentials: store,
		Fetch:       fetch.Options{Timeout: 5 * time.Second},
	})
	if err != nil {
		t.Fatalf("client.New() error = %v", err)
	}

	value, err := clobClient.Get(ctx, "maker-bot", "/data/orders")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	want := []any{map[string]any{"id": "order-1"}}
	if !reflect.DeepEqual(value, want) {
		t.Errorf("Get() = %#v, want %#v", value, want)
	}

	header := mock.LastRequestHeader()
	if header.Get(auth.HeaderAPIKey) != "key-123" {
		t.Errorf("POLY_API_KEY = %q, want the provisioned key", header.Get(auth.HeaderAPIKey))
	}
	if header.Get(auth.HeaderSignature) == "" {
		t.Error("POLY_SIGNATURE missing on the wire")
	}
}

// TestBatchAgainstLiveMock drives the batch dispatcher through a mock venue
// with mixed outcomes.
func TestBatchAgainstLiveMock(t *testing.T) {
	mock := testutil.NewMockCLOB()
	defer mock.Close()
	mock.SetResponse("/ok", testutil.NewArrayResponse(`[1]`))
	mock.SetResponse("/down", testutil.NewServerErrorResponse())

	f := fetch.NewFetcher(nil)
	results := f.BatchFetch(context.Background(), []string{
		mock.URL() + "/ok",
		mock.URL() + "/down",
		mock.URL() + "/ok",
	}, fetch.Options{Concurrency: 2})

	if len(results) != 3 {
		t.Fatalf("Got %d results, want 3", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s: unexpected transport error %v", r.URL, r.Err)
		}
	}
}
