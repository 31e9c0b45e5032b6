// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/xsort/xsort/internal/tempfile"
	"github.com/xsort/xsort/pkg/types"
)

// interruptGrace is how long a canceled run may take to unwind on its own
// before its temporary files are removed and the process exits.
const interruptGrace = 2 * time.Second

// watchInterrupt waits for ctx to be canceled by a signal. The engine
// observes cancellation between batches and cleans up itself; if it has not
// returned (done is not closed) within interruptGrace, the live temporary
// files are removed here and exit is called with the interrupted status.
func watchInterrupt(ctx context.Context, reg *tempfile.Registry, logger *log.Logger, done <-chan struct{}, exit func(int)) {
	select {
	case <-done:
		return
	case <-ctx.Done():
	}

	timer := time.NewTimer(interruptGrace)
	defer timer.Stop()
	select {
	case <-done:
		return
	case <-timer.C:
	}

	live := reg.Live()
	if err := reg.Cleanup(); err != nil {
		logger.Warn("failed to remove temporary files", "err", err)
	}
	logger.Debug("interrupted", "removed", len(live))
	exit(int(types.ExitInterrupted))
}
