package cltest

import (
	"fmt"
	"sync"
	"testing"

	"github.com/r-near/near-sdk-go/codec"
	"github.com/r-near/near-sdk-go/collections"
	"github.com/r-near/near-sdk-go/store"
)

// RunConcurrentHostTest drives many goroutines against disjoint IterableMap
// keys on a single shared Host, then verifies every write landed. This
// exercises a Host's own concurrency guarantees (e.g. memhost's xsync map)
// rather than collections' single-caller discipline: each worker owns a
// private key range, and every Set is serialized by a mutex because all
// workers share the map's metadata header and Key Index.
func RunConcurrentHostTest(t *testing.T, name string, factory HostFactory) {
	t.Run(name, func(t *testing.T) {
		host := factory()
		a := store.NewAdapter(host)
		m, err := collections.NewIterableMap[string, int64](a, []byte("concurrent"), codec.String(), codec.OrderedInt64(), collections.WithReverseIndex())
		if err != nil {
			t.Fatalf("NewIterableMap: %v", err)
		}

		const numWorkers = 8
		const perWorker = 200

		var mu sync.Mutex
		var wg sync.WaitGroup
		wg.Add(numWorkers)
		errs := make(chan error, numWorkers*perWorker)

		for w := 0; w < numWorkers; w++ {
			go func(worker int) {
				defer wg.Done()
				for i := 0; i < perWorker; i++ {
					key := fmt.Sprintf("w%d-k%d", worker, i)
					mu.Lock()
					err := m.Set(key, int64(worker*perWorker+i))
					mu.Unlock()
					if err != nil {
						errs <- err
					}
				}
			}(w)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Errorf("worker write failed: %v", err)
		}

		for w := 0; w < numWorkers; w++ {
			for i := 0; i < perWorker; i++ {
				key := fmt.Sprintf("w%d-k%d", w, i)
				v, ok, err := m.Get(key)
				if err != nil {
					t.Fatalf("Get(%s): %v", key, err)
				}
				if !ok {
					t.Fatalf("Get(%s) = not found; want a value written by worker %d", key, w)
				}
				if want := int64(w*perWorker + i); v != want {
					t.Fatalf("Get(%s) = %d; want %d", key, v, want)
				}
			}
		}

		n, err := m.Len()
		if err != nil {
			t.Fatalf("Len: %v", err)
		}
		if n != uint64(numWorkers*perWorker) {
			t.Fatalf("Len() = %d; want %d", n, numWorkers*perWorker)
		}
	})
}
