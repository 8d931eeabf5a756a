package collections_test

import (
	"bytes"
	"testing"

	"github.com/r-near/near-sdk-go/codec"
	"github.com/r-near/near-sdk-go/collections"
	"github.com/r-near/near-sdk-go/store"
	"github.com/r-near/near-sdk-go/store/memhost"
)

func TestChildDisjointFromSiblingsAndParent(t *testing.T) {
	parent := []byte("root")

	a, err := collections.Child(parent, []byte("a"))
	if err != nil {
		t.Fatalf("Child(a): %v", err)
	}
	ab, err := collections.Child(parent, []byte("ab"))
	if err != nil {
		t.Fatalf("Child(ab): %v", err)
	}
	if bytes.Equal(a, ab) {
		t.Fatalf("Child(root, a) == Child(root, ab); length-prefixing should keep these disjoint")
	}
	if bytes.HasPrefix(ab, a) {
		t.Fatalf("Child(root, ab) = %x has Child(root, a) = %x as a byte prefix; tags must not alias under concatenation", ab, a)
	}

	other, err := collections.Child([]byte("other"), []byte("a"))
	if err != nil {
		t.Fatalf("Child(other, a): %v", err)
	}
	if bytes.Equal(a, other) {
		t.Fatalf("Child(root, a) == Child(other, a); different parents must yield different children")
	}
}

func TestChildRejectsReservedSeparatorInTag(t *testing.T) {
	if _, err := collections.Child([]byte("root"), store.MetaSep); err == nil {
		t.Fatalf("Child(root, MetaSep) = nil error; want an error since the tag contains a reserved separator")
	}
}

func TestChildNestedCollectionsAreIsolated(t *testing.T) {
	host := memhost.New()
	a := store.NewAdapter(host)

	usersPrefix, err := collections.Child([]byte("app"), []byte("users"))
	if err != nil {
		t.Fatalf("Child(users): %v", err)
	}
	postsPrefix, err := collections.Child([]byte("app"), []byte("posts"))
	if err != nil {
		t.Fatalf("Child(posts): %v", err)
	}

	users, err := collections.NewLookupMap[string, string](a, usersPrefix, codec.String(), codec.String())
	if err != nil {
		t.Fatalf("NewLookupMap(users): %v", err)
	}
	posts, err := collections.NewLookupMap[string, string](a, postsPrefix, codec.String(), codec.String())
	if err != nil {
		t.Fatalf("NewLookupMap(posts): %v", err)
	}

	if err := users.Set("1", "alice"); err != nil {
		t.Fatalf("users.Set: %v", err)
	}
	if err := posts.Set("1", "hello world"); err != nil {
		t.Fatalf("posts.Set: %v", err)
	}

	v, ok, err := users.Get("1")
	if err != nil || !ok || v != "alice" {
		t.Fatalf("users.Get(1) = %q, %v, %v; want alice, true, nil", v, ok, err)
	}
	v, ok, err = posts.Get("1")
	if err != nil || !ok || v != "hello world" {
		t.Fatalf("posts.Get(1) = %q, %v, %v; want hello world, true, nil", v, ok, err)
	}
}
