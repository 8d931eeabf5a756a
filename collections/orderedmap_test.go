package collections_test

import (
	"testing"

	"github.com/r-near/near-sdk-go/collections/cltest"
	"github.com/r-near/near-sdk-go/store"
	"github.com/r-near/near-sdk-go/store/memhost"
)

func TestOrderedMap(t *testing.T) {
	cltest.RunOrderedMapTests(t, "memhost", func() store.Host { return memhost.New() })
	cltest.RunOrderedMapTests(t, "instrumented-memhost", func() store.Host {
		return store.Instrumented(memhost.New(), "orderedmap_test")
	})
}
