package streaming

import "time"

// Apparently this is an optimal chunk size according to https://github.com/grpc/grpc.github.io/issues/371
const ChunkSize = 64 * 1024

// DefaultPollInterval is how often a Follower re-probes a quiet log file.
const DefaultPollInterval = 500 * time.Millisecond
