// Package cltest is a reusable property-test harness for the collections
// package, parameterized over a store.Host implementation. Each RunXxxTests
// function exercises one collection kind end to end: basic CRUD, iteration,
// generation-invalidation, and the kind's distinguishing behavior (swap
// removal, reverse-index consistency, sorted-order maintenance).
//
// A new collections package built against a new Host only needs to supply
// a HostFactory to this package to get the same coverage memhost gets.
package cltest
