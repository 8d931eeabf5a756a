package collections_test

import (
	"testing"

	"github.com/r-near/near-sdk-go/collections/cltest"
	"github.com/r-near/near-sdk-go/store"
	"github.com/r-near/near-sdk-go/store/memhost"
)

func TestLookupMap(t *testing.T) {
	cltest.RunLookupMapTests(t, "memhost", func() store.Host { return memhost.New() })
	cltest.RunLookupMapTests(t, "instrumented-memhost", func() store.Host {
		return store.Instrumented(memhost.New(), "lookupmap_test")
	})
}
