package logger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// LoggerTestSuite logger 测试套件.
type LoggerTestSuite struct {
	suite.Suite
	tmpDir string
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (s *LoggerTestSuite) SetupTest() {
	s.tmpDir = s.T().TempDir()
}

func (s *LoggerTestSuite) observe() (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return newFromCore(core), logs
}

func (s *LoggerTestSuite) TestNewLogger_NilConfig() {
	log, err := NewLogger(nil)
	s.Error(err)
	s.Nil(log)
}

func (s *LoggerTestSuite) TestNewLogger_DefaultConfig() {
	log, err := NewLogger(DefaultConfig())
	s.Require().NoError(err)
	s.NotNil(log)
	s.NoError(log.Close())
}

func (s *LoggerTestSuite) TestNewLogger_DebugWithCaller() {
	log, err := NewLogger(&Config{Level: LevelDebug, EnableCaller: true})
	s.Require().NoError(err)
	s.NoError(log.Close())
}

func (s *LoggerTestSuite) TestNewLogger_Invalid() {
	for _, cfg := range []*Config{
		{Level: "invalid"},
		{Format: "xml"},
		{Output: "stdout"},
		{Output: OutputFile},
	} {
		log, err := NewLogger(cfg)
		s.Error(err)
		s.Nil(log)
	}
}

func (s *LoggerTestSuite) TestFileOutput() {
	log, err := NewLogger(&Config{
		ServiceName: "store",
		Format:      FormatJSON,
		Output:      OutputFile,
		LogDir:      s.tmpDir,
	})
	s.Require().NoError(err)

	log.With(Uint64("key", 42)).Info("inserted")
	s.Require().NoError(log.Close())

	data, err := os.ReadFile(filepath.Join(s.tmpDir, "store.log"))
	s.Require().NoError(err)
	s.Contains(string(data), `"msg":"inserted"`)
	s.Contains(string(data), `"key":42`)
	s.Contains(string(data), `"service":"store"`)
}

func (s *LoggerTestSuite) TestFileOutput_LogDirIsFile() {
	blocker := filepath.Join(s.tmpDir, "blocker")
	s.Require().NoError(os.WriteFile(blocker, nil, 0o644))

	_, err := NewLogger(&Config{Output: OutputFile, LogDir: filepath.Join(blocker, "logs")})
	s.ErrorIs(err, ErrCreateDir)
}

func (s *LoggerTestSuite) TestLevels() {
	log, logs := s.observe()
	log.Debug("d")
	log.Infof("i %d", 1)
	log.Warnf("w %s", "x")
	log.Error("e")

	entries := logs.All()
	s.Require().Len(entries, 4)
	s.Equal(zapcore.DebugLevel, entries[0].Level)
	s.Equal("i 1", entries[1].Message)
	s.Equal("w x", entries[2].Message)
	s.Equal(zapcore.ErrorLevel, entries[3].Level)
}

func (s *LoggerTestSuite) TestWithFields() {
	log, logs := s.observe()
	cause := errors.New("boom")

	log.With(
		String("op", "insert"),
		Int("depth", 3),
		Int64("money", -5),
		Bool("ok", true),
		Err(cause),
		Any("keys", []uint64{1, 2}),
	).Info("done")

	s.Require().Equal(1, logs.Len())
	fields := logs.All()[0].ContextMap()
	s.Equal("insert", fields["op"])
	s.Equal(int64(3), fields["depth"])
	s.Equal(int64(-5), fields["money"])
	s.Equal(true, fields["ok"])
	s.Equal("boom", fields["error"])
}

func (s *LoggerTestSuite) TestWithContext_TraceID() {
	log, logs := s.observe()
	ctx := ContextWithTraceID(context.Background(), "session-1")

	log.WithContext(ctx).Info("hello")
	s.Equal("session-1", logs.All()[0].ContextMap()["traceId"])
	s.Equal("session-1", TraceIDFromContext(ctx))
}

func (s *LoggerTestSuite) TestWithContext_Span() {
	log, logs := s.observe()
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1, 2, 3},
		SpanID:     trace.SpanID{4, 5, 6},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(ContextWithTraceID(context.Background(), "ignored"), sc)

	log.WithContext(ctx).Info("hello")
	fields := logs.All()[0].ContextMap()
	s.Equal(sc.TraceID().String(), fields["traceId"])
	s.Equal(sc.SpanID().String(), fields["spanId"])
}

func (s *LoggerTestSuite) TestWithContext_Empty() {
	log, logs := s.observe()
	//nolint:staticcheck
	log.WithContext(nil).Info("a")
	log.WithContext(context.Background()).Info("b")

	for _, e := range logs.All() {
		s.Empty(e.ContextMap())
	}
	s.Empty(TraceIDFromContext(nil))
}

func (s *LoggerTestSuite) TestNop() {
	log := NewNop()
	log.With(String("k", "v")).Error("ignored")
	s.NoError(log.Sync())
	s.NoError(log.Close())
}

