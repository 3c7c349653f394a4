package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pathfind/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List maps and strategies",
	Long: `Shows the maps found in a directory (default: the configured maps
directory) and the registered search strategies.

Maps are read from .txt, .map, .yaml, .yml, .png and .bmp files. Files
that fail to parse are skipped.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runList,
}

func runList(cmd *cobra.Command, args []string) {
	settings := loadSettings()
	dir := settings.Server.MapsDir
	if len(args) == 1 {
		dir = args[0]
	}

	items, err := newLoader(dir, settings).LoadAll()
	if err != nil {
		fail("%v", err)
	}

	if len(items) == 0 {
		fmt.Printf("No maps found in %s.\n", dir)
	} else {
		fmt.Printf("Maps in %s:\n", dir)
		fmt.Println()

		rows := make([][]string, len(items))
		for i, m := range items {
			stats := m.Stats()
			rows[i] = []string{
				m.ID,
				m.Title(),
				fmt.Sprintf("%dx%d", stats.Width, stats.Height),
				m.Shape.String(),
				fmt.Sprintf("%.0f%%", stats.WallRatio*100),
				fmt.Sprintf("%d", stats.Goals),
			}
		}
		printTable([]string{"ID", "Name", "Size", "Shape", "Walls", "Goals"}, rows)
	}

	fmt.Println()
	fmt.Println("Strategies:")
	fmt.Println()

	strategies := registry.List()
	rows := make([][]string, len(strategies))
	for i, s := range strategies {
		rows[i] = []string{s.ID, s.Title, s.Description}
	}
	printTable([]string{"ID", "Title", "Description"}, rows)

	fmt.Println()
	fmt.Println("Run 'pathfind watch <id>' to watch a search.")
}
