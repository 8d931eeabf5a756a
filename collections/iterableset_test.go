package collections_test

import (
	"testing"

	"github.com/r-near/near-sdk-go/collections/cltest"
	"github.com/r-near/near-sdk-go/store"
	"github.com/r-near/near-sdk-go/store/memhost"
)

func TestIterableSet(t *testing.T) {
	cltest.RunIterableSetTests(t, "memhost", func() store.Host { return memhost.New() })
	cltest.RunIterableSetTests(t, "instrumented-memhost", func() store.Host {
		return store.Instrumented(memhost.New(), "iterableset_test")
	})
}
