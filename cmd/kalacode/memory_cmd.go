package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kenzoyan/kalacode/internal/clifmt"
)

func newMemoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Inspect or clear long-term memory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the long-term memory file",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := storeFromViper()
			if store == nil {
				fmt.Println(clifmt.Dim("Long-term memory is disabled."))
				return nil
			}
			text, err := store.Read()
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Reset long-term memory to an empty file",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := storeFromViper()
			if store == nil {
				fmt.Println(clifmt.Dim("Long-term memory is disabled."))
				return nil
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Println(clifmt.Success("Long-term memory cleared."))
			return nil
		},
	})

	return cmd
}
