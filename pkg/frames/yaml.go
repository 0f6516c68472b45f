package frames

import (
	"gopkg.in/yaml.v3"

	"github.com/sonemaro/pulsebar/pkg/logger"
	"github.com/sonemaro/pulsebar/pkg/progress"
)

func (f *formatter) formatYAML(frames []progress.Frame) (string, error) {
	f.log.Debug("Formatting YAML output")

	bytes, err := yaml.Marshal(f.document(frames))
	if err != nil {
		f.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to marshal YAML")
		return "", err
	}

	return string(bytes), nil
}
