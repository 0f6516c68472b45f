package frames

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sonemaro/pulsebar/pkg/band"
	"github.com/sonemaro/pulsebar/pkg/clock"
	"github.com/sonemaro/pulsebar/pkg/logger"
	"github.com/sonemaro/pulsebar/pkg/progress"
)

// mockLogger implements logger.Logger interface for testing
type mockLogger struct {
	logs []string
}

func (m *mockLogger) Info(msg string)                               { m.logs = append(m.logs, "INFO: "+msg) }
func (m *mockLogger) Debug(msg string)                              { m.logs = append(m.logs, "DEBUG: "+msg) }
func (m *mockLogger) Error(msg string)                              { m.logs = append(m.logs, "ERROR: "+msg) }
func (m *mockLogger) Warn(msg string)                               { m.logs = append(m.logs, "WARN: "+msg) }
func (m *mockLogger) Trace(msg string)                              { m.logs = append(m.logs, "TRACE: "+msg) }
func (m *mockLogger) WithFields(fields logger.Fields) logger.Logger { return m }

func recordFrames(t *testing.T, cfg progress.Config, ticks int) []progress.Frame {
	t.Helper()

	m := clock.NewManual()
	rec := NewRecorder()
	ind := progress.New(cfg, logger.Nop(), progress.WithClock(m), progress.WithPainter(rec))
	ind.Mount()
	m.Advance(ticks)
	ind.Unmount()

	frames := rec.Frames()
	require.NotEmpty(t, frames)
	return frames
}

func TestRecorder(t *testing.T) {
	frames := recordFrames(t, progress.Config{PercentCompleted: 50}, 10)

	// mount + ticks + final
	require.Len(t, frames, 12)
	assert.Equal(t, uint64(0), frames[0].Tick)
	assert.Equal(t, uint64(10), frames[10].Tick)
	assert.True(t, frames[11].Final)

	rec := NewRecorder()
	rec.Close()
	rec.Paint(progress.Frame{})
	assert.Empty(t, rec.Frames())
}

func TestFormatter(t *testing.T) {
	barFrames := recordFrames(t, progress.Config{PercentCompleted: 50}, 400)
	ringFrames := recordFrames(t, progress.Config{Shape: progress.ShapeRing, PercentCompleted: 60}, 40)

	tests := []struct {
		name       string
		frames     []progress.Frame
		format     Format
		withStats  bool
		withColors bool
		verify     func(*testing.T, string, *mockLogger)
	}{
		{
			name:   "table bar",
			frames: barFrames,
			format: FormatTable,
			verify: func(t *testing.T, output string, log *mockLogger) {
				lines := strings.Split(strings.TrimSpace(output), "\n")
				assert.Len(t, lines, len(barFrames)+1)
				assert.Contains(t, lines[0], "seg1")
				assert.Contains(t, lines[1], "50.00*")
				assert.NotContains(t, output, "\x1b[")
			},
		},
		{
			name:   "table ring",
			frames: ringFrames,
			format: FormatTable,
			verify: func(t *testing.T, output string, log *mockLogger) {
				assert.Contains(t, output, "remaining")
				assert.Contains(t, output, progress.RingLit)
			},
		},
		{
			name:       "table with colors",
			frames:     barFrames,
			format:     FormatTable,
			withColors: true,
			verify: func(t *testing.T, output string, log *mockLogger) {
				assert.Contains(t, output, "\x1b[1m")
				assert.Contains(t, output, "\x1b[36m")
				assert.Contains(t, log.logs, "DEBUG: Applying color formatting")
			},
		},
		{
			name:      "table with stats",
			frames:    barFrames,
			format:    FormatTable,
			withStats: true,
			verify: func(t *testing.T, output string, log *mockLogger) {
				assert.Contains(t, output, "Statistics:")
				assert.Contains(t, output, "Split Frames:")
				assert.Contains(t, output, "Direction Flips:")
				assert.Contains(t, log.logs, "DEBUG: Adding statistics to output")
			},
		},
		{
			name:      "json bar",
			frames:    barFrames,
			format:    FormatJSON,
			withStats: true,
			verify: func(t *testing.T, output string, log *mockLogger) {
				var doc struct {
					Frames []struct {
						Tick     uint64            `json:"tick"`
						Split    bool              `json:"split"`
						Segments progress.Segments `json:"segments"`
					} `json:"frames"`
					Statistics struct {
						Splits int `json:"splitFrames"`
						Flips  int `json:"directionFlips"`
					} `json:"statistics"`
				}
				require.NoError(t, json.Unmarshal([]byte(output), &doc))
				require.Len(t, doc.Frames, len(barFrames))

				splits := 0
				for _, fr := range doc.Frames {
					assert.InDelta(t, band.LoopSpan, fr.Segments.Sum(), 1e-6)
					if fr.Split {
						splits++
						assert.True(t, fr.Segments.First.Highlighted)
						assert.True(t, fr.Segments.Third.Highlighted)
					}
				}
				assert.Equal(t, splits, doc.Statistics.Splits)
				assert.Greater(t, doc.Statistics.Splits, 0, "400 ticks sweep past the seam")
				assert.Contains(t, log.logs, "DEBUG: Formatting JSON output")
			},
		},
		{
			name:   "json ring carries dash hooks",
			frames: ringFrames,
			format: FormatJSON,
			verify: func(t *testing.T, output string, log *mockLogger) {
				assert.Contains(t, output, `"dashArray"`)
				assert.Contains(t, output, `"dashOffset"`)
				assert.Contains(t, output, `"circumference"`)
				assert.NotContains(t, output, `"segments"`)
			},
		},
		{
			name:   "yaml ring",
			frames: ringFrames,
			format: FormatYAML,
			verify: func(t *testing.T, output string, log *mockLogger) {
				var doc map[string]interface{}
				require.NoError(t, yaml.Unmarshal([]byte(output), &doc))
				assert.Contains(t, output, "shape: ring")
				assert.Contains(t, output, "circumference:")
				assert.Contains(t, output, "dashArray:")
				assert.Contains(t, log.logs, "DEBUG: Formatting YAML output")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &mockLogger{}

			formatter := NewFormatter(Config{
				Format:     tt.format,
				WithStats:  tt.withStats,
				WithColors: tt.withColors,
			}, log)

			output, err := formatter.Format(tt.frames)

			require.NoError(t, err)
			require.NotEmpty(t, output)

			tt.verify(t, output, log)
		})
	}
}

func TestFormatterDeterminate(t *testing.T) {
	frames := recordFrames(t, progress.Config{Determinate: true, PercentCompleted: 120}, 50)
	require.Len(t, frames, 2, "determinate mode paints on mount and unmount only")

	out, err := NewFormatter(Config{Format: FormatJSON, WithStats: true}, &mockLogger{}).Format(frames)
	require.NoError(t, err)

	assert.Contains(t, out, `"mode": "determinate"`)
	assert.Contains(t, out, `"percent": 100`)
	assert.NotContains(t, out, `"bandWidth"`)
}

func TestFormatterEdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		frames    []progress.Frame
		format    Format
		errString string
	}{
		{
			name:      "no frames",
			frames:    nil,
			format:    FormatTable,
			errString: "no frames",
		},
		{
			name:      "invalid format",
			frames:    []progress.Frame{{Shape: progress.ShapeBar}},
			format:    "invalid",
			errString: "unsupported format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &mockLogger{}
			_, err := NewFormatter(Config{Format: tt.format}, log).Format(tt.frames)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errString)

			hasError := false
			for _, msg := range log.logs {
				if strings.HasPrefix(msg, "ERROR: ") {
					hasError = true
					break
				}
			}
			assert.True(t, hasError, "Expected error log message not found")
		})
	}
}

func TestIsValidFormat(t *testing.T) {
	assert.True(t, IsValidFormat(FormatTable))
	assert.True(t, IsValidFormat(FormatJSON))
	assert.True(t, IsValidFormat(FormatYAML))
	assert.False(t, IsValidFormat("tree"))
}
