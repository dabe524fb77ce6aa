package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dgnsrekt/lafrance/internal/cache"
)

var clearCache bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the audio cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := cache.NewStore(filepath.Join(outputDir, cache.FileName))

		if clearCache {
			n := store.Clear()
			fmt.Printf("cleared %d cached entries\n", n)
			return nil
		}

		fmt.Printf("cache: %s\n", store.Path())
		fmt.Printf("entries: %d\n", store.Len())
		for _, entry := range store.Recent(10) {
			line := "  " + filepath.Base(entry.Path)
			if info, err := os.Stat(entry.Path); err == nil {
				line += fmt.Sprintf(" (%s)", humanize.Bytes(uint64(info.Size())))
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	cacheCmd.Flags().BoolVar(&clearCache, "clear", false, "remove all cached entries")
}
