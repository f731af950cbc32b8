package gitmeta

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StampFile is the tex fragment written next to the source before builds. The
// document includes it with \input{gitstamp} to cite its own revision.
const StampFile = "gitstamp.tex"

// WriteStamp writes the git stamp fragment into the source directory and
// returns its path.
func WriteStamp(sourceDir string, now time.Time) (string, error) {
	commit := HeadCommit(sourceDir)
	short := commit
	if len(short) > 12 {
		short = short[:12]
	}

	content := fmt.Sprintf(
		"%% Auto-generated, do not edit.\n\\newcommand{\\gitcommit}{%s}\n\\newcommand{\\buildstamp}{%s}\n",
		short, now.UTC().Format("2006-01-02 15:04 UTC"),
	)

	path := filepath.Join(sourceDir, StampFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write git stamp: %w", err)
	}
	return path, nil
}
