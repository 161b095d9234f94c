/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"

	"github.com/Seednode/magnets/poetry"
	"github.com/spf13/afero"
)

var sizeUnits = []string{"B", "kB", "MB", "GB", "TB", "PB", "EB"}

// humanReadableSize formats a byte count in SI units for log lines.
func humanReadableSize(bytes int64) string {
	if bytes < 1000 {
		return fmt.Sprintf("%d B", bytes)
	}

	size, unit := float64(bytes), 0
	for size >= 1000 && unit < len(sizeUnits)-1 {
		size /= 1000
		unit++
	}

	return fmt.Sprintf("%.1f %s", size, sizeUnits[unit])
}

// describeWords names the configured word resource for the startup log. A
// word file that cannot be read is reported, not rejected: boards show the
// error themselves when they load.
func describeWords(src poetry.Source, fs afero.Fs) string {
	switch s := src.(type) {
	case nil:
		return fmt.Sprintf("built-in list (%d words)", len(poetry.DefaultWords))
	case poetry.FileSource:
		if s.Fs != nil {
			fs = s.Fs
		}

		info, err := fs.Stat(s.Path)
		switch {
		case err != nil:
			return fmt.Sprintf("%s (unreadable: %v)", s.Path, err)
		case info.IsDir():
			return fmt.Sprintf("%s (unreadable: is a directory)", s.Path)
		}

		return fmt.Sprintf("%s (%s)", s.Path, humanReadableSize(info.Size()))
	default:
		return src.String()
	}
}
