//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/hydromaroc/flood-risk-service/internal/adapter/dem"
	"github.com/hydromaroc/flood-risk-service/internal/domain"
	"github.com/hydromaroc/flood-risk-service/internal/observability"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node Kafka broker in a container and returns its
// bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("flood-risk-test"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// loadMockRequests reads the raw request fixture as opaque payloads, the way
// they would arrive on the source topic.
func loadMockRequests(t *testing.T) []json.RawMessage {
	t.Helper()

	path := filepath.Join("..", "..", "data", "mock", "area_requests.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var payloads []json.RawMessage
	require.NoError(t, json.Unmarshal(data, &payloads))
	return payloads
}

// startDEM serves the synthetic relief model behind an OpenTopodata-compatible
// endpoint and returns a provider backed by it. Elevation rises 1000m per
// degree of latitude north of 33°N and is no-data south of it, matching
// cmd/genfixtures.
func startDEM(t *testing.T) domain.ElevationProvider {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		type result struct {
			Elevation *float64 `json:"elevation"`
			Location  struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		}
		var results []result

		for _, loc := range strings.Split(r.URL.Query().Get("locations"), "|") {
			parts := strings.SplitN(loc, ",", 2)
			require.Len(t, parts, 2)
			lat, err := strconv.ParseFloat(parts[0], 64)
			require.NoError(t, err)
			lon, err := strconv.ParseFloat(parts[1], 64)
			require.NoError(t, err)

			var res result
			res.Location.Lat = lat
			res.Location.Lng = lon
			if lat >= 33.0 {
				m := math.Round((lat-33.0)*10000) / 10
				res.Elevation = &m
			}
			results = append(results, res)
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"status":  "OK",
			"results": results,
		}))
	}))
	t.Cleanup(srv.Close)

	metrics := observability.NewMetricsForTesting()
	client := dem.NewClient(srv.URL, "srtm30m", 5*time.Second, metrics, discardLogger())
	return dem.NewCachedProvider(client, 1000, metrics)
}

func uniqueGroupID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
