package collections_test

import (
	"testing"

	"github.com/r-near/near-sdk-go/collections/cltest"
	"github.com/r-near/near-sdk-go/store"
	"github.com/r-near/near-sdk-go/store/memhost"
)

func TestIterableMap(t *testing.T) {
	cltest.RunIterableMapTests(t, "memhost", func() store.Host { return memhost.New() })
	cltest.RunIterableMapTests(t, "instrumented-memhost", func() store.Host {
		return store.Instrumented(memhost.New(), "iterablemap_test")
	})
}

func TestIterableMapConcurrentHost(t *testing.T) {
	cltest.RunConcurrentHostTest(t, "memhost", func() store.Host { return memhost.New() })
}
