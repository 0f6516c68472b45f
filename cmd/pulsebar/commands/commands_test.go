package commands

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonemaro/pulsebar/cmd/pulsebar/app"
	"github.com/sonemaro/pulsebar/internal/version"
	"github.com/sonemaro/pulsebar/pkg/logger"
)

func execute(t *testing.T, args ...string) (afero.Fs, string, error) {
	t.Helper()

	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "PULSEBAR_") {
			t.Setenv(strings.SplitN(env, "=", 2)[0], "")
			os.Unsetenv(strings.SplitN(env, "=", 2)[0])
		}
	}

	fs := afero.NewMemMapFs()
	out := &bytes.Buffer{}

	cmd := newRootCommand(&Options{
		appOptions: []app.Option{
			app.WithFs(fs),
			app.WithOutput(out),
			app.WithLogger(logger.Nop()),
		},
	})
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return fs, out.String(), err
}

func TestFramesCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
		verify  func(*testing.T, afero.Fs, string)
	}{
		{
			name: "table to stdout",
			args: []string{"frames", "--ticks", "5", "--no-color"},
			verify: func(t *testing.T, fs afero.Fs, out string) {
				assert.Contains(t, out, "seg1")
				assert.Contains(t, out, "Statistics:")
			},
		},
		{
			name: "ring json to file",
			args: []string{"frames", "-n", "5", "-s", "ring", "-o", "json", "-f", "dump/frames.json"},
			verify: func(t *testing.T, fs afero.Fs, out string) {
				data, err := afero.ReadFile(fs, "dump/frames.json")
				require.NoError(t, err)
				assert.Contains(t, string(data), `"shape": "ring"`)
				assert.Contains(t, string(data), `"dashArray"`)
			},
		},
		{
			name: "determinate yaml without stats",
			args: []string{"frames", "-d", "-p", "75", "-o", "yaml", "--no-stats"},
			verify: func(t *testing.T, fs afero.Fs, out string) {
				assert.Contains(t, out, "mode: determinate")
				assert.Contains(t, out, "percent: 75")
				assert.NotContains(t, out, "statistics:")
			},
		},
		{
			name:    "invalid output format",
			args:    []string{"frames", "-o", "tree"},
			wantErr: "invalid output format",
		},
		{
			name:    "invalid shape",
			args:    []string{"frames", "-s", "hexagon"},
			wantErr: "invalid shape",
		},
		{
			name:    "invalid interval",
			args:    []string{"frames", "--interval", "soon"},
			wantErr: `invalid argument "soon" for "--interval" flag`,
		},
		{
			name:    "interval flag is applied before validation",
			args:    []string{"frames", "--interval", "500us"},
			wantErr: "interval must be at least 1ms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, out, err := execute(t, tt.args...)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.verify(t, fs, out)
		})
	}
}

func TestRunCommand(t *testing.T) {
	_, out, err := execute(t, "run", "-d", "-p", "0", "--tasks", "4", "--workers", "2",
		"--task-duration", "1ms", "-w", "30", "--no-color")

	require.NoError(t, err)
	assert.Contains(t, out, "100%")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestRunCommandRejectsArgs(t *testing.T) {
	_, _, err := execute(t, "run", "extra")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	_, out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version.ShortVersion()+"\n", out)

	_, out, err = execute(t, "version", "--full")
	require.NoError(t, err)
	assert.Contains(t, out, "Version Information:")
}

func TestEnvironmentIsOverriddenByFlags(t *testing.T) {
	_, out, err := execute(t, "frames", "-n", "1", "-o", "yaml", "--no-stats")
	require.NoError(t, err)
	assert.Contains(t, out, "shape: bar")

	t.Setenv("PULSEBAR_SHAPE", "ring")
	t.Setenv("PULSEBAR_PERCENT", "20")

	fs := afero.NewMemMapFs()
	buf := &bytes.Buffer{}
	cmd := newRootCommand(&Options{appOptions: []app.Option{
		app.WithFs(fs), app.WithOutput(buf), app.WithLogger(logger.Nop()),
	}})
	cmd.SetArgs([]string{"frames", "-n", "0", "-o", "yaml", "--no-stats", "-p", "35"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "shape: ring")
	assert.Contains(t, buf.String(), "percent: 35")
}
