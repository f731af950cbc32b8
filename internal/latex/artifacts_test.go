package latex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestPDFPath(t *testing.T) {
	require.Equal(t, "main.pdf", PDFPath("main.tex", ""))
	require.Equal(t, filepath.Join("build", "main.pdf"), PDFPath("main.tex", "build"))
	require.Equal(t, filepath.Join("paper", "draft.pdf"), PDFPath(filepath.Join("paper", "draft.tex"), ""))
}

func TestCleanLeavesFinalPDF(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "main.tex")
	touch(t, source)
	for _, ext := range []string{".aux", ".log", ".bbl", ".fdb_latexmk", ".synctex.gz"} {
		touch(t, filepath.Join(dir, "main"+ext))
	}
	touch(t, filepath.Join(dir, "main.pdf"))

	require.NoError(t, Clean(source, ""))

	for _, ext := range []string{".aux", ".log", ".bbl", ".fdb_latexmk", ".synctex.gz"} {
		_, err := os.Stat(filepath.Join(dir, "main"+ext))
		require.True(t, os.IsNotExist(err), "intermediate %s should be removed", ext)
	}
	_, err := os.Stat(filepath.Join(dir, "main.pdf"))
	require.NoError(t, err, "final PDF must survive clean")
}

func TestVeryCleanRemovesPDF(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "main.tex")
	touch(t, source)
	touch(t, filepath.Join(dir, "main.aux"))
	touch(t, filepath.Join(dir, "main.pdf"))

	require.NoError(t, VeryClean(source, ""))

	_, err := os.Stat(filepath.Join(dir, "main.pdf"))
	require.True(t, os.IsNotExist(err))
}

func TestCleanMissingArtifacts(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "main.tex")
	touch(t, source)

	// Nothing to remove is not an error.
	require.NoError(t, Clean(source, ""))
	require.NoError(t, VeryClean(source, ""))
}

func TestCleanHonorsOutputDir(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "build")
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	source := filepath.Join(dir, "main.tex")
	touch(t, source)
	touch(t, filepath.Join(outDir, "main.aux"))
	touch(t, filepath.Join(outDir, "main.pdf"))

	require.NoError(t, Clean(source, outDir))

	_, err := os.Stat(filepath.Join(outDir, "main.aux"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(outDir, "main.pdf"))
	require.NoError(t, err)
}
