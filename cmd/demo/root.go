// Package demo implements a shell over a single in-memory IterableMap.
// There is no server to dial, so PersistentPreRunE opens a host and a
// collection directly instead of setting up an RPC client.
package demo

import (
	"github.com/spf13/cobra"

	"github.com/r-near/near-sdk-go/codec"
	"github.com/r-near/near-sdk-go/collections"
	nearconfig "github.com/r-near/near-sdk-go/config"
	"github.com/r-near/near-sdk-go/internal/log"
	"github.com/r-near/near-sdk-go/store"
	"github.com/r-near/near-sdk-go/store/memhost"
)

var (
	activeMap *collections.IterableMap[string, string]
	cfg       nearconfig.Config

	// DemoCmd represents the demo command group.
	DemoCmd = &cobra.Command{
		Use:               "demo",
		Short:             "Exercise an IterableMap collection over an in-memory host",
		PersistentPreRunE: setupDemoCollection,
	}
)

func init() {
	cobra.OnInitialize(func() {})

	if err := nearconfig.BindFlags(DemoCmd); err != nil {
		panic(err)
	}

	DemoCmd.AddCommand(setCmd)
	DemoCmd.AddCommand(getCmd)
	DemoCmd.AddCommand(delCmd)
	DemoCmd.AddCommand(hasCmd)
	DemoCmd.AddCommand(lenCmd)
	DemoCmd.AddCommand(listCmd)
	DemoCmd.AddCommand(clearCmd)
}

// setupDemoCollection opens a fresh memhost and an IterableMap on top of it.
// Every invocation of the demo binary starts from an empty collection -
// there is no persistence across process runs, which matches memhost's own
// contract of living only as long as the process does.
func setupDemoCollection(cmd *cobra.Command, _ []string) error {
	cfg = nearconfig.Load()

	var hostOpts []memhost.Option
	if cfg.ParsedLogLevel() == log.LevelDebug {
		hostOpts = append(hostOpts, memhost.WithDebug())
	}
	host := memhost.New(hostOpts...)
	a := store.NewAdapter(host)

	opts := []collections.IterableMapOption{}
	if cfg.ReverseIndexByDefault {
		opts = append(opts, collections.WithReverseIndex())
	}

	m, err := collections.NewIterableMap[string, string](
		a,
		[]byte("demo"),
		codec.String(),
		codec.String(),
		opts...,
	)
	if err != nil {
		return err
	}
	activeMap = m
	return nil
}
