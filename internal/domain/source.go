package domain

import (
	"strings"
	"time"
)

// SourceKind distinguishes how a card source is fetched before parsing.
type SourceKind string

const (
	SourceLocal SourceKind = "local" // a directory on disk
	SourceGit   SourceKind = "git"   // a git repository cloned under the repos dir
)

// Source is a registered origin of deck files. Cards are reconciled
// against their source on every sync: new content is inserted, content
// that disappeared is deleted.
type Source struct {
	ID         int64
	Path       string
	Kind       SourceKind
	LastSynced *time.Time
}

// KindOfPath classifies a source path: git URLs and .git suffixes are
// git sources, everything else is a local directory.
func KindOfPath(path string) SourceKind {
	if strings.HasSuffix(path, ".git") ||
		strings.HasPrefix(path, "git@") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "http://") {
		return SourceGit
	}
	return SourceLocal
}
