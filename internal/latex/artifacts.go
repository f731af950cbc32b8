package latex

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// intermediateExtensions are the build byproducts removed by Clean. The final
// PDF is intentionally absent from this list.
var intermediateExtensions = []string{
	".aux", ".log", ".out", ".toc", ".lof", ".lot",
	".bbl", ".blg", ".fls", ".fdb_latexmk",
	".synctex.gz", ".nav", ".snm", ".vrb",
}

// PDFPath derives the final artifact path for a tex source, honoring the
// output directory when set.
func PDFPath(source, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(source)
	}
	return filepath.Join(dir, base+".pdf")
}

// artifactBase returns the directory and basename-without-extension the
// intermediates are derived from.
func artifactBase(source, outputDir string) (dir, base string) {
	base = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	dir = outputDir
	if dir == "" {
		dir = filepath.Dir(source)
	}
	return dir, base
}

// Clean removes intermediate build artifacts, leaving the final PDF in place.
// Missing files are not an error.
func Clean(source, outputDir string) error {
	dir, base := artifactBase(source, outputDir)
	for _, ext := range intermediateExtensions {
		path := filepath.Join(dir, base+ext)
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("remove %s: %w", path, err)
		}
		slog.Debug("Removed intermediate artifact", "path", path)
	}
	return nil
}

// VeryClean removes the final PDF in addition to intermediates.
func VeryClean(source, outputDir string) error {
	if err := Clean(source, outputDir); err != nil {
		return err
	}
	pdf := PDFPath(source, outputDir)
	if err := os.Remove(pdf); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", pdf, err)
	}
	slog.Debug("Removed final PDF", "path", pdf)
	return nil
}
