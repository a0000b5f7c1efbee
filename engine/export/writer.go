package export

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/capture"
)

const defaultWriterWorkers = 2

// writerImpl is the implementation of the Writer interface.
type writerImpl struct {
	pool   worker.DynamicWorkerPool
	nextID atomic.Int64
	wg     sync.WaitGroup
}

// Writer encodes and writes captures on a worker pool so the caller never
// blocks on disk IO. Thread-safe for concurrent access.
type Writer interface {
	// Submit queues buf for encoding to path, format chosen from the
	// extension. onDone receives the write result; nil skips the
	// notification.
	//
	// Parameters:
	//   - path: the destination file
	//   - buf: the capture to write
	//   - onDone: completion callback, may be nil
	Submit(path string, buf capture.Buffer, onDone func(error))

	// Flush blocks until every submitted write has finished.
	Flush()
}

var _ Writer = &writerImpl{}

// NewWriter creates a pooled capture writer.
//
// Parameters:
//   - options: functional options to configure the writer
//
// Returns:
//   - Writer: the newly created writer
func NewWriter(options ...WriterBuilderOption) Writer {
	w := &writerImpl{}
	workers := 0
	for _, option := range options {
		option(&workers)
	}
	workers = common.Coalesce(workers, defaultWriterWorkers)
	w.pool = worker.NewDynamicWorkerPool(workers, 256, 1*time.Second)
	return w
}

func (w *writerImpl) Submit(path string, buf capture.Buffer, onDone func(error)) {
	w.wg.Add(1)
	w.pool.SubmitTask(worker.Task{
		ID: int(w.nextID.Add(1)),
		Do: func() (any, error) {
			defer w.wg.Done()

			err := WriteFile(path, buf)
			if onDone != nil {
				onDone(err)
			}
			return nil, err
		},
	})
}

func (w *writerImpl) Flush() {
	w.wg.Wait()
}
