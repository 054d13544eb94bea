package cli_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/superdense"
	"github.com/aretw0/superdense/internal/cli"
	"github.com/aretw0/superdense/internal/config"
	"github.com/aretw0/superdense/internal/logging"
	redisAdapter "github.com/aretw0/superdense/pkg/adapters/redis"
	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/outcome"
	"github.com/aretw0/superdense/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func engine(src outcome.FixedSource) *superdense.Engine {
	return superdense.New(superdense.WithRandomSource(src))
}

func TestRunHeadless_Text(t *testing.T) {
	var out bytes.Buffer
	err := cli.RunHeadless(context.Background(), engine(outcome.AlwaysSucceed), cli.SimulateOptions{
		Bits:    "10",
		Instant: true,
		Out:     &out,
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, domain.PhaseCount+1)
	assert.Equal(t, "[1/4] Entanglement: Create Bell state Φ⁺", lines[0])
	assert.Equal(t, "[4/4] Decoding: Perform Bell measurement", lines[3])
	assert.Equal(t, "Original bits: 10  Received bits: 10", lines[4])
}

func TestRunHeadless_FaultIsNotAnError(t *testing.T) {
	var out bytes.Buffer
	err := cli.RunHeadless(context.Background(), engine(outcome.FixedSource(0.9)), cli.SimulateOptions{
		Bits:        "01",
		GateCutting: true,
		Instant:     true,
		Out:         &out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Received bits: --  Error: "+domain.MessageTransmissionFault)
}

func TestRunHeadless_ValidationExitCode(t *testing.T) {
	var out bytes.Buffer
	err := cli.RunHeadless(context.Background(), engine(outcome.AlwaysSucceed), cli.SimulateOptions{
		Bits:    "-1",
		Instant: true,
		Out:     &out,
	})

	var exit *cli.ExitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 1, exit.Code)
	assert.ErrorIs(t, err, domain.ErrBitsRequired)
	assert.Equal(t, "Error: "+domain.MessageBitsRequired+"\n", out.String())
}

func TestRunHeadless_InvalidBits(t *testing.T) {
	err := cli.RunHeadless(context.Background(), engine(outcome.AlwaysSucceed), cli.SimulateOptions{Bits: "12", Out: &bytes.Buffer{}})
	assert.ErrorIs(t, err, domain.ErrInvalidBit)
}

func TestRunHeadless_JSON(t *testing.T) {
	var out bytes.Buffer
	err := cli.RunHeadless(context.Background(), engine(outcome.AlwaysSucceed), cli.SimulateOptions{
		Bits:    "11",
		JSON:    true,
		Instant: true,
		Out:     &out,
	})
	require.NoError(t, err)

	var types []domain.EventType
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var evt domain.Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &evt))
		types = append(types, evt.Type)
	}
	assert.Equal(t, []domain.EventType{
		domain.EventRunStarted,
		domain.EventPhaseEntered,
		domain.EventPhaseEntered,
		domain.EventPhaseEntered,
		domain.EventRunCompleted,
	}, types)
}

func TestRunHeadless_Timed(t *testing.T) {
	var out bytes.Buffer
	err := cli.RunHeadless(context.Background(), engine(outcome.AlwaysSucceed), cli.SimulateOptions{
		Bits:   "00",
		Out:    &out,
		Runner: []runner.Option{runner.WithPeriod(time.Millisecond)},
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Received bits: 00")
}

func TestRunPrompt(t *testing.T) {
	r := runner.New(engine(outcome.AlwaysSucceed), runner.WithManualTicks())
	in := strings.NewReader("s\n1\n1\nbits -0\n1\n1\nfoo\ns\nq\n")
	var out bytes.Buffer

	require.NoError(t, cli.RunPrompt(context.Background(), r, in, &out))

	text := out.String()
	assert.Contains(t, text, "Error: "+domain.MessageBitsRequired)
	assert.Contains(t, text, `Error: unknown command "foo"`)
	assert.Contains(t, text, "Selection: 10  Gate cutting: off")
	assert.Contains(t, text, "Original bits: 10  Received bits: 10")
	assert.False(t, r.Active())
}

func TestRunPrompt_EOF(t *testing.T) {
	r := runner.New(engine(outcome.AlwaysSucceed), runner.WithManualTicks())
	assert.NoError(t, cli.RunPrompt(context.Background(), r, strings.NewReader("g\n"), &bytes.Buffer{}))
	assert.True(t, r.Snapshot().Input.GateCutting)
}

func TestWriteEncodingTable(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, cli.WriteEncodingTable(&out, cli.FormatText))
		assert.Contains(t, out.String(), "X Gate")
		assert.Contains(t, out.String(), "Ψ⁻")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, cli.WriteEncodingTable(&out, cli.FormatJSON))
		var rows []map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
		require.Len(t, rows, 4)
		assert.Equal(t, "01", rows[1]["bits"])
		assert.Equal(t, true, rows[1]["x_gate"])
		assert.Equal(t, false, rows[1]["z_gate"])
	})

	t.Run("yaml", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, cli.WriteEncodingTable(&out, cli.FormatYAML))
		assert.Contains(t, out.String(), `bits: "10"`)
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, cli.WriteEncodingTable(&bytes.Buffer{}, "csv"))
	})
}

func TestWritePhases(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, cli.WritePhases(&out, cli.FormatText))
	for _, p := range domain.Phases() {
		assert.Contains(t, out.String(), p.Title)
	}
}

func TestWriteTutorial(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, cli.WriteTutorial(&out, func(md string) (string, error) { return strings.ToUpper(md), nil }))
	assert.Contains(t, out.String(), strings.ToUpper(domain.TutorialTitle))
}

func TestRuntime_MetricsFollowConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Protocol.Seed = 42

	rt, err := cli.NewRuntime(cfg, logging.NewNop())
	require.NoError(t, err)
	require.NotNil(t, rt.Metrics)
	require.NotNil(t, rt.MetricsHandler())

	_, _, err = runner.Simulate(context.Background(), rt.Engine, domain.Input{Bits: domain.NewBitPair(true, false)})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	rt.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `superdense_runs_completed_total{outcome="success"} 1`)

	cfg.Metrics.Enabled = false
	rt, err = cli.NewRuntime(cfg, logging.NewNop())
	require.NoError(t, err)
	assert.Nil(t, rt.Metrics)
	assert.Nil(t, rt.MetricsHandler())
}

func TestRuntime_HTTPServerMirrorsToRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = mr.Addr()
	cfg.Protocol.Period = time.Millisecond

	rt, err := cli.NewRuntime(cfg, logging.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	pub, err := rt.NewPublisher(ctx)
	require.NoError(t, err)
	require.NotNil(t, pub)
	defer pub.Close()

	srv := rt.NewHTTPServer(pub)
	s, err := srv.Sessions.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Runner.SelectBit(ctx, domain.SlotFirst, domain.Bit1))
	require.NoError(t, pub.Flush(ctx))

	state, err := pub.LastState(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "1-", state.Input.Bits.String())

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRuntime_PublisherDisabled(t *testing.T) {
	rt, err := cli.NewRuntime(config.Default(), logging.NewNop())
	require.NoError(t, err)
	pub, err := rt.NewPublisher(context.Background())
	require.NoError(t, err)
	assert.Nil(t, pub)
}

func TestWatch(t *testing.T) {
	mr := miniredis.RunT(t)
	pub := redisAdapter.New(mr.Addr(), "", 0)
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs := pub.Observer("abc")
	r := runner.New(engine(outcome.AlwaysSucceed), runner.WithManualTicks(), runner.WithObserver(obs))
	require.NoError(t, r.SetInput(ctx, domain.Input{Bits: domain.NewBitPair(false, true)}))
	require.NoError(t, pub.Flush(ctx))

	var out syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- cli.Watch(ctx, pub, "abc", cli.SimulateOptions{Out: &out})
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Selection: 01")
	}, time.Second, 5*time.Millisecond)

	// The subscription is live once the stored state was printed; publish until the run shows up.
	require.Eventually(t, func() bool {
		if !r.Active() {
			_ = r.Start(ctx)
		}
		_ = r.Tick(ctx)
		return strings.Contains(out.String(), "Received bits: 01")
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}
