package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/portsim/portsim/sim"
	"github.com/portsim/portsim/sim/trace"
)

func TestSetupLogging(t *testing.T) {
	defer logrus.SetFormatter(&logrus.TextFormatter{})
	defer logrus.SetLevel(logrus.InfoLevel)

	require.NoError(t, setupLogging("debug", "json"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	assert.Error(t, setupLogging("loud", "text"))
	assert.Error(t, setupLogging("info", "xml"))
}

func TestRunSimulation_WithTrace(t *testing.T) {
	// GIVEN a short run with decision tracing
	logrus.SetLevel(logrus.WarnLevel)
	cfg := sim.DefaultSimConfig()
	cfg.Horizon = 120_000

	// WHEN run
	s, err := runSimulation(cfg, trace.TraceLevelDecisions)

	// THEN the trace agrees with the metrics
	require.NoError(t, err)
	require.True(t, s.Trace.Enabled())
	summary := trace.Summarize(s.Trace)
	assert.Equal(t, s.Metrics.DirectAdmissions+s.Metrics.QueueAdmissions, summary.AdmittedCount)
	assert.Equal(t, s.Metrics.EntranceGrants, summary.EntranceGrants)
	assert.Equal(t, s.Clock, s.Metrics.SimEndedTime)
}

func TestRunSimulation_InvalidConfig(t *testing.T) {
	cfg := sim.DefaultSimConfig()
	cfg.Spawn.IntervalMs = 0

	_, err := runSimulation(cfg, trace.TraceLevelNone)

	assert.Error(t, err)
}

func TestMetricsAndTraceSummary_PrintedToStdout(t *testing.T) {
	// GIVEN a finished run
	logrus.SetLevel(logrus.WarnLevel)
	cfg := sim.DefaultSimConfig()
	cfg.Horizon = 60_000
	s, err := runSimulation(cfg, trace.TraceLevelDecisions)
	require.NoError(t, err)

	// Capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	// WHEN metrics and the trace summary are printed
	s.Metrics.Print()
	printTraceSummary(trace.Summarize(s.Trace))

	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	output := buf.String()

	// THEN both sections appear
	assert.Contains(t, output, "=== Simulation Metrics ===")
	assert.Contains(t, output, "=== Decision Trace ===")
	assert.Contains(t, output, "Pier 1")
}
