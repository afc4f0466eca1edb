package xlayer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/omeyang/vkperf/pkg/observability/xlog"
	"github.com/omeyang/vkperf/pkg/observability/xmetrics"
	"github.com/omeyang/vkperf/pkg/util/xtiming"
)

// safeBuffer 诊断日志可能被多个 goroutine 同时写入
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// stepClock 每次调用前进 step
type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

var _ xtiming.Clock = (*stepClock)(nil)

// span 记录的一次观测
type span struct {
	Operation string
	Status    xmetrics.Status
	Err       error
}

type recordingObserver struct {
	mu    sync.Mutex
	spans []span
}

func (o *recordingObserver) Start(ctx context.Context, opts xmetrics.SpanOptions) (context.Context, xmetrics.Span) {
	return ctx, &recordingSpan{obs: o, op: opts.Operation}
}

func (o *recordingObserver) ops() []span {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]span(nil), o.spans...)
}

type recordingSpan struct {
	obs *recordingObserver
	op  string
}

func (s *recordingSpan) End(r xmetrics.Result) {
	status := r.Status
	if status == "" {
		status = xmetrics.StatusOK
		if r.Err != nil {
			status = xmetrics.StatusError
		}
	}
	s.obs.mu.Lock()
	s.obs.spans = append(s.obs.spans, span{Operation: s.op, Status: status, Err: r.Err})
	s.obs.mu.Unlock()
}

type fixture struct {
	layer   *LayerData
	next    *MocknextLayer
	diag    *safeBuffer
	primary string
}

// newFixture 创建一个写临时目录主日志、诊断日志写入内存的层
func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	diag := &safeBuffer{}
	logger, _, err := xlog.New().SetOutput(diag).SetLevel(xlog.LevelDebug).Build()
	require.NoError(t, err)

	primary := filepath.Join(t.TempDir(), "primary.csv")
	settings := Settings{LogFile: primary, Header: "event,detail"}
	l, err := New(settings, append([]Option{WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, l.Close()) })

	return &fixture{layer: l, next: NewMocknextLayer(ctrl), diag: diag, primary: primary}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}
