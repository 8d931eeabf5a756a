package collections_test

import (
	"testing"

	"github.com/r-near/near-sdk-go/collections/cltest"
	"github.com/r-near/near-sdk-go/store"
	"github.com/r-near/near-sdk-go/store/memhost"
)

func TestLookupSet(t *testing.T) {
	cltest.RunLookupSetTests(t, "memhost", func() store.Host { return memhost.New() })
	cltest.RunLookupSetTests(t, "instrumented-memhost", func() store.Host {
		return store.Instrumented(memhost.New(), "lookupset_test")
	})
}
