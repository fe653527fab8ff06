// clob-proxy is a thin dashboard backend over the CLOB client: it exposes
// the venue's authenticated endpoints to local dashboard code without
// handing out credentials.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/polydash/clob-client/pkg/client"
	"github.com/polydash/clob-client/pkg/creds"
	"github.com/polydash/clob-client/pkg/fetch"
	"github.com/polydash/clob-client/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: getEnv("LOG_PRETTY", "") == "true",
		Output: os.Stderr,
	})

	port := getEnv("PORT", "8080")
	baseURL := getEnv("CLOB_BASE_URL", client.DefaultBaseURL)
	address := os.Getenv("CLOB_ADDRESS")
	identity := getEnv("CLOB_IDENTITY", "default")

	if address == "" {
		logger.Fatal().Msg("CLOB_ADDRESS is required")
	}

	store, err := buildCredentialStore()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build credential store")
	}

	clobClient, err := client.New(client.Config{
		BaseURL:     baseURL,
		Address:     address,
		Credentials: store,
		Fetch:       fetch.DefaultOptions(),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create CLOB client")
	}

	router := mux.NewRouter()
	router.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.PathPrefix("/clob/").Handler(clobProxyHandler(clobClient, identity))

	handler := cors.Default().Handler(router)

	addr := ":" + port
	logger.Info().
		Str("addr", addr).
		Str("base_url", baseURL).
		Str("identity", identity).
		Msg("Starting CLOB proxy server")

	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

// buildCredentialStore picks Redis when REDIS_URL is set, otherwise the
// process environment.
func buildCredentialStore() (creds.Store, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return creds.NewEnvStore(), nil
	}

	redisClient := redis.NewClient(&redis.Options{Addr: redisURL})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", redisURL, err)
	}

	return creds.NewRedisStore(redisClient), nil
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

// clobProxyHandler forwards /clob/* to the venue as authenticated GETs.
// Example: /clob/markets?next_cursor=AA== -> GET /markets?next_cursor=AA==
func clobProxyHandler(clobClient *client.Client, identity string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path[len("/clob"):]
		if r.URL.RawQuery != "" {
			path += "?" + r.URL.RawQuery
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		value, err := clobClient.Get(ctx, identity, path)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(value); err != nil {
			http.Error(w, fmt.Sprintf("encode response: %v", err), http.StatusInternalServerError)
		}
	}
}

// writeError maps client errors onto proxy status codes, preserving the
// upstream status and body where there is one.
func writeError(w http.ResponseWriter, err error) {
	var upstream *client.UpstreamError
	if errors.As(err, &upstream) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(upstream.Status)
		fmt.Fprint(w, upstream.Body)
		return
	}

	var timeout *fetch.TimeoutError
	if errors.As(err, &timeout) {
		http.Error(w, timeout.Error(), http.StatusGatewayTimeout)
		return
	}

	if errors.Is(err, creds.ErrMissingCredential) {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	http.Error(w, fmt.Sprintf("CLOB request failed: %v", err), http.StatusBadGateway)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
