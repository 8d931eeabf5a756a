// Package cmd implements the command-line interface for exercising the
// collections library. It provides a single subcommand group:
//
//   - demo: interactive-style operations (set, get, del, has, len, list,
//     clear) against an IterableMap backed by an in-memory host.
//
// See nearkv -help for the full command list.
package cmd
