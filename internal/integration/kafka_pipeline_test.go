//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/couchcryptid/metarflow-service/internal/adapter/kafka"
	"github.com/couchcryptid/metarflow-service/internal/config"
	"github.com/couchcryptid/metarflow-service/internal/domain"
	"github.com/couchcryptid/metarflow-service/internal/observability"
	"github.com/couchcryptid/metarflow-service/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSourceTopic = "test-raw-metar"
	testSinkTopic   = "test-decoded-metar"
)

var testReports = map[string]string{
	"KJFK": "KJFK 251651Z 27015G25KT 10SM FEW250 22/12 A3012 RMK AO2",
	"EGLL": "EGLL 251650Z VRB03KT CAVOK 18/09 Q1015",
	"KXYZ": "KXYZ 251650Z 00000KT 1/4SM -RA BR OVC005 05/04 A2992",
}

// decodedMessage holds a deserialized message read from the sink topic.
type decodedMessage struct {
	Event   domain.ReportEvent
	Key     string
	Headers map[string]string
}

func testConfig(broker, group string) *config.Config {
	return &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("%s-%d", group, time.Now().UnixNano()),
		BatchFlushInterval: 2 * time.Second,
	}
}

func newSinkConsumer(t *testing.T, broker string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

func newSourceProducer(t *testing.T, broker string) *kafkago.Writer {
	t.Helper()
	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })
	return producer
}

// readDecoded reads a single message from the sink consumer and deserializes it.
func readDecoded(ctx context.Context, t *testing.T, consumer *kafkago.Reader) decodedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var event domain.ReportEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event), "unmarshal sink message")

	return decodedMessage{Event: event, Key: string(msg.Key), Headers: headers}
}

// TestKafkaReaderWriter verifies the adapter layer: kafka.Reader and
// kafka.Writer round-trip a decoded report through Kafka.
func TestKafkaReaderWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := testConfig(broker, "test-reader")

	payload, err := json.Marshal(domain.RawMETARRecord{Station: "KJFK", METAR: testReports["KJFK"]})
	require.NoError(t, err)

	producer := newSourceProducer(t, broker)
	require.NoError(t, producer.WriteMessages(ctx, kafkago.Message{Key: []byte("KJFK"), Value: payload}))

	// Retry because the consumer group may need time to rebalance before
	// partitions are assigned.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	var batch []domain.RawEvent
	for len(batch) == 0 {
		batch, err = reader.ExtractBatch(ctx, 1)
		require.NoError(t, err)
		require.NoError(t, ctx.Err(), "timed out waiting for message from source topic")
	}
	require.Len(t, batch, 1)
	raw := batch[0]
	assert.Equal(t, []byte("KJFK"), raw.Key)
	assert.Equal(t, payload, raw.Value)
	assert.Equal(t, testSourceTopic, raw.Topic)
	require.NotNil(t, raw.Commit, "commit callback should be set")
	require.NoError(t, raw.Commit(ctx))

	transformer := pipeline.NewTransformer(observability.NewMetricsForTesting(), discardLogger())
	out, err := transformer.Transform(ctx, raw)
	require.NoError(t, err)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	require.NoError(t, writer.LoadBatch(ctx, []domain.OutputEvent{out}))

	msg := readDecoded(ctx, t, newSinkConsumer(t, broker))
	assert.Equal(t, "KJFK", msg.Headers["station"])
	_, err = time.Parse(time.RFC3339, msg.Headers["processed_at"])
	assert.NoError(t, err, "processed_at should be valid RFC3339")

	assert.Equal(t, msg.Key, msg.Event.ID)
	assert.Equal(t, "270 degrees (W) at 15 knots, gusting to 25 knots", msg.Event.Report.Wind)
	assert.Equal(t, "30.12 inches of mercury", msg.Event.Report.Altimeter)
	assert.Equal(t, "Automated station", msg.Event.Report.Remarks)
}

// TestPipelineEndToEnd wires Reader, Transformer, and Writer against a real
// broker and checks every published report was decoded.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := testConfig(broker, "test-pipeline")

	// Mix JSON records and bare report text keyed by station.
	producer := newSourceProducer(t, broker)
	require.NoError(t, producer.WriteMessages(ctx,
		kafkago.Message{Key: []byte("KJFK"), Value: []byte(testReports["KJFK"])},
		kafkago.Message{Value: []byte(`{"station":"EGLL","metar":"` + testReports["EGLL"] + `"}`)},
		kafkago.Message{Key: []byte("KXYZ"), Value: []byte(testReports["KXYZ"])},
	))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(reader, pipeline.NewTransformer(metrics, discardLogger()), writer, discardLogger(), metrics, 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := newSinkConsumer(t, broker)
	received := map[string]domain.Report{}
	for len(received) < len(testReports) {
		msg := readDecoded(ctx, t, consumer)
		received[msg.Headers["station"]] = msg.Event.Report
	}

	pipelineCancel()
	require.NoError(t, <-errCh)
	assert.NoError(t, p.CheckReadiness(ctx))

	for station, raw := range testReports {
		assert.Equal(t, raw, received[station].Raw, station)
	}

	egll := received["EGLL"]
	assert.Equal(t, "Variable at 3 knots", egll.Wind)
	assert.Equal(t, "None significant", egll.Weather)
	assert.Equal(t, "1015 hectopascals", egll.Altimeter)

	kxyz := received["KXYZ"]
	assert.Empty(t, kxyz.Visibility)
	assert.Equal(t, "Light rain, mist", kxyz.Weather)
	assert.Equal(t, "Overcast at 500 feet", kxyz.Clouds)
}

// TestPipelineSkipsEmptyReports verifies that a message with no report text
// is committed and dropped while later messages still flow.
func TestPipelineSkipsEmptyReports(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := testConfig(broker, "test-poison")

	producer := newSourceProducer(t, broker)
	require.NoError(t, producer.WriteMessages(ctx,
		kafkago.Message{Key: []byte("bad"), Value: []byte(`{"station":"KBAD","metar":""}`)},
		kafkago.Message{Key: []byte("worse"), Value: []byte("{not json")},
		kafkago.Message{Key: []byte("EGLL"), Value: []byte(testReports["EGLL"])},
	))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(reader, pipeline.NewTransformer(metrics, discardLogger()), writer, discardLogger(), metrics, 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := newSinkConsumer(t, broker)
	msg := readDecoded(ctx, t, consumer)
	assert.Equal(t, "EGLL", msg.Event.Report.Station)

	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err := consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no second message on sink topic")

	pipelineCancel()
	require.NoError(t, <-errCh)
}
