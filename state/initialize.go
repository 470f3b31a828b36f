package state

import (
	"time"
)

// newLocalEnv creates a new LocalEnv instance with default values, negative
// worker count means "use configuration".
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:   time.Now(),
		Workers: -1,
	}
}
