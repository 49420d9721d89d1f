package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/stability"
)

// LoadTimeout is the hard limit for evaluating one config script.
const LoadTimeout = 5 * time.Second

type loadResult struct {
	params stability.Params
	errors []LoadError
	err    error
}

// waitWithTimeout waits for a result from ch, but returns a timeout error
// if the evaluation exceeds LoadTimeout. If the generation counter has
// moved past gen (a newer Load call started), the result is discarded and
// a "superseded" error is returned instead.
func waitWithTimeout(
	ch <-chan loadResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
) (stability.Params, []LoadError, error) {
	timer := time.NewTimer(LoadTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return stability.Defaults(), nil, fmt.Errorf("config evaluation superseded by newer request")
		}
		return res.params, res.errors, res.err

	case <-timer.C:
		return stability.Defaults(), nil, fmt.Errorf("config evaluation timed out after %s", LoadTimeout)
	}
}
