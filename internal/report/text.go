package report

import (
	"bytes"
	"fmt"
	"os"

	"github.com/verte-zerg/titlestats/internal/stats"
)

// writeSummary writes summary.txt. The content is fully rendered before the
// file is touched, so a render problem never leaves a truncated artifact.
func writeSummary(path string, s stats.Summary) error {
	var buf bytes.Buffer
	if err := stats.RenderSummary(&buf, s); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
