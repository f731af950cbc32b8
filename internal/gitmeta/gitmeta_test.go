package gitmeta

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHeadCommitNoRepo(t *testing.T) {
	require.Equal(t, UnknownCommit, HeadCommit(t.TempDir()))
}

func TestHeadCommitFromHeadFile(t *testing.T) {
	dir := t.TempDir()
	gitDir := filepath.Join(dir, ".git")
	require.NoError(t, os.MkdirAll(filepath.Join(gitDir, "refs", "heads"), 0o755))

	hash := "f0e1d2c3b4a5968778695a4b3c2d1e0ff0e1d2c3"
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "refs", "heads", "main"), []byte(hash+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte("ref: refs/heads/main\n"), 0o644))

	require.Equal(t, hash, readHeadFile(dir))
}

func TestHeadCommitDetached(t *testing.T) {
	dir := t.TempDir()
	gitDir := filepath.Join(dir, ".git")
	require.NoError(t, os.MkdirAll(gitDir, 0o755))

	hash := "aabbccddeeff00112233445566778899aabbccdd"
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte(hash+"\n"), 0o644))

	require.Equal(t, hash, readHeadFile(dir))
}

func TestWriteStamp(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 4, 12, 30, 0, 0, time.UTC)

	path, err := WriteStamp(dir, now)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, StampFile), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(content)
	require.Contains(t, s, "\\newcommand{\\gitcommit}{unknown}")
	require.Contains(t, s, "\\newcommand{\\buildstamp}{2026-03-04 12:30 UTC}")
	require.True(t, strings.HasPrefix(s, "%"))
}
