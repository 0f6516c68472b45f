package frames

import (
	"encoding/json"

	"github.com/sonemaro/pulsebar/pkg/logger"
	"github.com/sonemaro/pulsebar/pkg/progress"
)

func (f *formatter) formatJSON(frames []progress.Frame) (string, error) {
	f.log.Debug("Formatting JSON output")

	bytes, err := json.MarshalIndent(f.document(frames), "", "  ")
	if err != nil {
		f.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to marshal JSON")
		return "", err
	}

	return string(bytes), nil
}
