package usecase

import "time"

const (
	// MutationRetries is how many times a mutation re-reads and retries
	// after its first conditional write loses the race.
	MutationRetries = 8

	// MutationRetryDelay is the pause between conditional-write attempts.
	MutationRetryDelay = 50 * time.Millisecond

	// DefaultLogLimit and MaxLogLimit bound transaction history queries.
	DefaultLogLimit = 50
	MaxLogLimit     = 500
)
