package demo

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := activeMap.Set(args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("set successfully")
			return nil
		},
	}

	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, found, err := activeMap.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, found=%t, value=%s\n", args[0], found, value)
			return nil
		},
	}

	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Removes a key value pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, found, err := activeMap.Remove(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("removed=%t\n", found)
			return nil
		},
	}

	hasCmd = &cobra.Command{
		Use:   "has [key]",
		Short: "Checks if a key exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := activeMap.Contains(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, found=%t\n", args[0], found)
			return nil
		},
	}

	lenCmd = &cobra.Command{
		Use:   "len",
		Short: "Prints the number of entries in the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := activeMap.Len()
			if err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		},
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Lists every key/value pair, with a running count every --iteration-chunk-size entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := activeMap.Entries()
			if err != nil {
				return err
			}
			chunk := cfg.IterationChunkSize
			if chunk <= 0 {
				chunk = 1
			}
			printed := 0
			for {
				entry, ok, err := it.Next()
				if err != nil {
					return err
				}
				if !ok {
					break
				}
				fmt.Printf("%s=%s\n", entry.Key, entry.Value)
				printed++
				if printed%chunk == 0 {
					fmt.Printf("--- %d entries so far ---\n", printed)
				}
			}
			return nil
		},
	}

	clearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Removes every entry from the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := activeMap.Clear(); err != nil {
				return err
			}
			fmt.Println("cleared successfully")
			return nil
		},
	}
)
