package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/vkperf/internal/icdsim"
	"github.com/omeyang/vkperf/pkg/config/xconf"
	"github.com/omeyang/vkperf/pkg/layer/xshader"
	"github.com/omeyang/vkperf/pkg/layer/xvk"
	"github.com/omeyang/vkperf/pkg/observability/xevent"
	"github.com/omeyang/vkperf/pkg/observability/xlog"
)

// runApp 以 args 运行 CLI，返回标准输出内容。
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := createApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(context.Background(), append([]string{"vkperfsim"}, args...))
	return out.String(), err
}

func TestExitError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &exitError{code: 3})
	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.code)
	assert.Empty(t, exitErr.Error())
}

func TestUsageError(t *testing.T) {
	err := &usageError{msg: "test error"}
	assert.Equal(t, "test error", err.Error())

	var target *usageError
	assert.True(t, errors.As(err, &target))
}

func TestIsCLIUsageError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"flag provided but not defined: -bogus", true},
		{`invalid value "x" for flag -instances: parse error`, true},
		{`Required flag "config" not set`, true},
		{"xvk: ERROR_DEVICE_LOST", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isCLIUsageError(errors.New(tt.msg)), tt.msg)
	}
}

func TestCreateCommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range createCommands() {
		names[cmd.Name] = true
	}
	assert.True(t, names["run"])
	assert.True(t, names["hash"])
}

func TestRun_ExitCodes(t *testing.T) {
	t.Setenv(xevent.EnvEventLogFile, "")
	primary := filepath.Join(t.TempDir(), "ok.csv")

	assert.Equal(t, 0, run([]string{"vkperfsim", "run", "--log-file", primary, "--shaders", "2"}))
	assert.Equal(t, 2, run([]string{"vkperfsim", "run", "--instances", "0"}))
	assert.Equal(t, 2, run([]string{"vkperfsim", "hash"}))
	assert.Equal(t, 2, run([]string{"vkperfsim", "run", "--watch"}))
}

func TestRunCommand_WritesPipelineRows(t *testing.T) {
	t.Setenv(xevent.EnvEventLogFile, "")
	primary := filepath.Join(t.TempDir(), "compile_time.csv")

	out, err := runApp(t, "run", "--log-file", primary,
		"--instances", "3", "--devices", "2", "--shaders", "4", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "pipelines:      12")
	assert.Contains(t, out, "log:            "+primary)

	lines := readLines(t, primary)
	require.Len(t, lines, 1+12)
	assert.Equal(t, defaultHeader, lines[0])
	assert.Regexp(t, `^"\[0x[0-9a-f]{16},0x[0-9a-f]{16}\]",\d+,\d*$`, lines[1])
}

func TestRunCommand_OutDirAndEventLog(t *testing.T) {
	t.Setenv(xevent.EnvEventLogFile, "")
	dir := t.TempDir()

	_, err := runApp(t, "run", "--out-dir", dir, "--log-file", "main.csv",
		"--event-log-file", "events.csv", "--shaders", "3", "--header", "P,D,T")
	require.NoError(t, err)

	lines := readLines(t, filepath.Join(dir, "main.csv"))
	assert.Equal(t, "P,D,T", lines[0])
	assert.Len(t, lines, 1+2)

	events := readLines(t, filepath.Join(dir, "events.csv"))
	var shaders int
	for _, line := range events {
		if strings.HasPrefix(line, eventShaderModule+",") {
			shaders++
		}
	}
	assert.Equal(t, 3, shaders)
}

func TestRunCommand_OutDirRejectsTraversal(t *testing.T) {
	t.Setenv(xevent.EnvEventLogFile, "")
	_, err := runApp(t, "run", "--out-dir", t.TempDir(), "--log-file", "../escape.csv")
	var usage *usageError
	require.ErrorAs(t, err, &usage)
}

func TestRunCommand_EnvOverridesEventLogFlag(t *testing.T) {
	dir := t.TempDir()
	fromEnv := filepath.Join(dir, "env.csv")
	t.Setenv(xevent.EnvEventLogFile, fromEnv)

	_, err := runApp(t, "run", "--log-file", filepath.Join(dir, "main.csv"),
		"--event-log-file", filepath.Join(dir, "flag.csv"), "--shaders", "2")
	require.NoError(t, err)

	assert.FileExists(t, fromEnv)
	assert.NoFileExists(t, filepath.Join(dir, "flag.csv"))
}

func TestRunCommand_ConfigFile(t *testing.T) {
	t.Setenv(xevent.EnvEventLogFile, "")
	dir := t.TempDir()
	primary := filepath.Join(dir, "from-config.csv")
	cfgPath := filepath.Join(dir, "vkperf.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(
		"log_file: %s\nheader: from-config\ndiag_level: warn\n", primary)), 0o600))

	_, err := runApp(t, "run", "-c", cfgPath, "--shaders", "2")
	require.NoError(t, err)
	assert.Equal(t, "from-config", readLines(t, primary)[0])

	require.NoError(t, os.WriteFile(cfgPath, []byte("diag_level: loud\n"), 0o600))
	_, err = runApp(t, "run", "-c", cfgPath)
	require.Error(t, err)
}

func TestRunCommand_ConfigWithoutHeaderUsesDefault(t *testing.T) {
	t.Setenv(xevent.EnvEventLogFile, "")
	dir := t.TempDir()
	primary := filepath.Join(dir, "main.csv")
	cfgPath := filepath.Join(dir, "vkperf.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`{"log_file": %q}`, primary)), 0o600))

	_, err := runApp(t, "run", "-c", cfgPath, "--shaders", "2")
	require.NoError(t, err)
	assert.Equal(t, defaultHeader, readLines(t, primary)[0])
}

func TestRunCommand_Watch(t *testing.T) {
	t.Setenv(xevent.EnvEventLogFile, "")
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "vkperf.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"log_file: "+filepath.Join(dir, "main.csv")+"\n"), 0o600))

	out, err := runApp(t, "run", "-c", cfgPath, "--watch", "--instances", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "instances:      2")
}

func TestRunCommand_Otel(t *testing.T) {
	t.Setenv(xevent.EnvEventLogFile, "")
	out, err := runApp(t, "run", "--log-file", filepath.Join(t.TempDir(), "main.csv"),
		"--otel", "--shaders", "2", "--instances", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "calls:")
	assert.Regexp(t, xvk.NameCreateGraphicsPipelines+`\s+ok\s+2`, out)
	assert.Regexp(t, xvk.NameCreateShaderModule+`\s+ok\s+4`, out)
}

func TestRunCommand_NoPhysicalDevices(t *testing.T) {
	t.Setenv(xevent.EnvEventLogFile, "")
	_, err := runApp(t, "run", "--log-file", filepath.Join(t.TempDir(), "main.csv"),
		"--physical-devices", "0")
	var usage *usageError
	require.ErrorAs(t, err, &usage)
}

func TestRunCommand_ShaderDir(t *testing.T) {
	t.Setenv(xevent.EnvEventLogFile, "")
	dir := t.TempDir()
	code := []byte("\x03\x02\x23\x07vertex")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.spv"), code, 0o600))
	primary := filepath.Join(dir, "main.csv")

	_, err := runApp(t, "run", "--shader-dir", dir, "--shaders", "1", "--log-file", primary)
	require.NoError(t, err)

	want := xevent.Quote(xshader.PipelineHashToString(xshader.HashVector{xxhash.Sum64(code)}))
	assert.True(t, strings.HasPrefix(readLines(t, primary)[1], want+","))
}

func TestCmdHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frag.spv")
	code := []byte("fragment")
	require.NoError(t, os.WriteFile(path, code, 0o600))

	out, err := runApp(t, "hash", path)
	require.NoError(t, err)
	assert.Equal(t, xshader.ShaderHashToString(xxhash.Sum64(code))+"  "+path+"\n", out)

	_, err = runApp(t, "hash", filepath.Join(t.TempDir(), "missing.spv"))
	require.Error(t, err)
}

func TestApplyDiagLevel(t *testing.T) {
	logger := discardLogger(t)
	logger.SetLevel(xlog.LevelInfo)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vkperf.yaml")

	require.NoError(t, os.WriteFile(path, []byte("diag_level: debug\n"), 0o600))
	cfg, err := xconf.New(path)
	require.NoError(t, err)
	applyDiagLevel(ctx, cfg, nil, logger)
	assert.Equal(t, xlog.LevelDebug, logger.GetLevel())

	// 重载错误和无效配置都保留当前级别
	applyDiagLevel(ctx, cfg, errors.New("boom"), logger)
	assert.Equal(t, xlog.LevelDebug, logger.GetLevel())

	require.NoError(t, os.WriteFile(path, []byte("diag_level: loud\n"), 0o600))
	require.NoError(t, cfg.Reload())
	applyDiagLevel(ctx, cfg, nil, logger)
	assert.Equal(t, xlog.LevelDebug, logger.GetLevel())
}

func TestRunner_Progress(t *testing.T) {
	drv, err := icdsim.NewDriver()
	require.NoError(t, err)
	var out bytes.Buffer
	r := runner{logger: discardLogger(t), progress: time.Millisecond, out: &out, driver: drv}

	sum, err := r.run(context.Background(), func(ctx context.Context) (summary, error) {
		select {
		case <-time.After(50 * time.Millisecond):
		case <-ctx.Done():
		}
		return summary{Instances: 1}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), sum.Instances)
	assert.Contains(t, out.String(), "live: instances=0 devices=0")
}

func TestRunner_WorkError(t *testing.T) {
	want := errors.New("workload failed")
	r := runner{logger: discardLogger(t)}
	_, err := r.run(context.Background(), func(context.Context) (summary, error) {
		return summary{}, want
	})
	assert.Equal(t, want, err)
}
