package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// maxTreeDepth bounds the file structure listing; model bundles nest at
// most component/artifact, so three levels cover everything interesting.
const maxTreeDepth = 3

// writeTree renders a directory tree with box-drawing connectors, one
// entry per line. Unreadable directories are reported in place and the
// walk continues.
func writeTree(w io.Writer, dir, prefix string, depth int) {
	if depth >= maxTreeDepth {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(w, "%s(error reading directory: %v)\n", prefix, err)
		return
	}

	for i, entry := range entries {
		connector := "├── "
		next := prefix + "│   "
		if i == len(entries)-1 {
			connector = "└── "
			next = prefix + "    "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, connector, entry.Name())

		if entry.IsDir() && depth < maxTreeDepth-1 {
			writeTree(w, filepath.Join(dir, entry.Name()), next, depth+1)
		}
	}
}
