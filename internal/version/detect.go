package version

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Latest is returned when no manifest pins a CrewAI version.
const Latest = "latest"

// manifest is one dependency file kind, in detection priority order.
type manifest struct {
	name    string
	extract func(content string) (string, bool)
}

var manifests = []manifest{
	{name: "requirements.txt", extract: fromRequirements},
	{name: "pyproject.toml", extract: fromPyproject},
	{name: "poetry.lock", extract: fromPoetryLock},
}

// Detector reads project manifests to pick a schema version.
type Detector struct {
	logger *zap.Logger
}

// NewDetector creates a Detector. A nil logger disables logging.
func NewDetector(logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{logger: logger}
}

// Detect scans requirements.txt, pyproject.toml and poetry.lock in root, in that
// order, and returns the first declared CrewAI version truncated to MAJOR.MINOR.0.
// It returns Latest when nothing declares the dependency or when any step fails;
// failures are logged, never returned.
func (d *Detector) Detect(ctx context.Context, root string) string {
	for _, m := range manifests {
		if err := ctx.Err(); err != nil {
			d.logger.Warn("version detection cancelled", zap.String("root", root), zap.Error(err))
			return Latest
		}

		path := filepath.Join(root, m.name)
		content, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			d.logger.Warn("error detecting CrewAI version", zap.String("manifest", path), zap.Error(err))
			return Latest
		}

		if v, ok := m.extract(string(content)); ok {
			normalized := Normalize(v)
			d.logger.Debug("detected CrewAI version",
				zap.String("manifest", path),
				zap.String("declared", v),
				zap.String("version", normalized))
			return normalized
		}
	}

	d.logger.Debug("no CrewAI version declared, using latest", zap.String("root", root))
	return Latest
}
