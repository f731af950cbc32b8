// Package gitmeta resolves repository metadata so builds can stamp the paper
// with the revision they were produced from.
package gitmeta

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// UnknownCommit is used when the working directory is not a git repository.
const UnknownCommit = "unknown"

// HeadCommit returns the HEAD commit hash for the repository containing dir.
// It prefers go-git resolution and falls back to reading .git/HEAD directly
// (shallow checkouts and odd CI layouts). A missing repository yields
// UnknownCommit without error.
func HeadCommit(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err == nil {
		if head, err := repo.Head(); err == nil {
			return head.Hash().String()
		}
	}
	if commit := readHeadFile(dir); commit != "" {
		return commit
	}
	return UnknownCommit
}

// readHeadFile reads .git/HEAD and resolves a symbolic ref if needed.
func readHeadFile(dir string) string {
	headPath := filepath.Join(dir, ".git", "HEAD")
	data, err := os.ReadFile(headPath)
	if err != nil {
		return ""
	}

	line := strings.TrimSpace(string(data))
	if strings.HasPrefix(line, "ref:") {
		ref := strings.TrimSpace(strings.TrimPrefix(line, "ref:"))
		refPath := filepath.Join(dir, ".git", filepath.FromSlash(ref))
		if refData, refErr := os.ReadFile(refPath); refErr == nil {
			return strings.TrimSpace(string(refData))
		}
		return ""
	}
	return line
}
