package bundle

import (
	"log/slog"
	"os"
	"time"

	"github.com/avast/retry-go/v4"
)

// cleanup removes a run directory. Failures are logged and otherwise ignored.
func cleanup(logger *slog.Logger, dir string, attempts uint) {
	err := retry.Do(
		func() error {
			return os.RemoveAll(dir)
		},
		retry.Attempts(attempts),
		retry.Delay(50*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		logger.Warn("failed to remove run directory", "dir", dir, "error", err)
	}
}
