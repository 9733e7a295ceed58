package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newBookmarksCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bookmarks",
		Short: "Print saved locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			bookmarks, err := store.ListBookmarks()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(bookmarks) == 0 {
				fmt.Fprintln(out, "لا توجد إشارات مرجعية")
				return nil
			}
			for _, b := range bookmarks {
				fmt.Fprintf(out, "%s\t%s\t%s\n", b.Location, b.Title, humanize.Time(b.CreatedAt))
			}
			return nil
		},
	}
}
