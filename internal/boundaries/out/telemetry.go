package out

import (
	"context"
	"time"
)

// OperationRecorder records the outcome of component operations.
type OperationRecorder interface {
	RecordOperation(ctx context.Context, operation string, duration time.Duration, err error)
	RecordPushBytes(ctx context.Context, n int64)
}
