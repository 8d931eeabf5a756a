package collections_test

import (
	"testing"

	"github.com/r-near/near-sdk-go/collections/cltest"
	"github.com/r-near/near-sdk-go/store"
	"github.com/r-near/near-sdk-go/store/memhost"
)

func TestSequence(t *testing.T) {
	cltest.RunSequenceTests(t, "memhost", func() store.Host { return memhost.New() })
	cltest.RunSequenceTests(t, "instrumented-memhost", func() store.Host {
		return store.Instrumented(memhost.New(), "sequence_test")
	})
}
