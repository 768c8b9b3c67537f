// Package sync reconciles registered card sources with the stored
// collection. Deck files found in a source are parsed and fingerprinted;
// unseen cards are inserted with fresh scheduling state and cards that
// disappeared from the source are deleted.
package sync

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zlatanpham/ankigo/internal/domain"
	"github.com/zlatanpham/ankigo/internal/fingerprint"
	"github.com/zlatanpham/ankigo/internal/gitsource"
	"github.com/zlatanpham/ankigo/internal/parser"
	"github.com/zlatanpham/ankigo/internal/review"
	"github.com/zlatanpham/ankigo/internal/storage"
)

// Syncer reconciles card sources against the database.
type Syncer struct {
	db       *storage.DB
	svc      *review.Service
	reposDir string
}

// New returns a Syncer that checks out git sources under reposDir.
func New(db *storage.DB, svc *review.Service, reposDir string) *Syncer {
	return &Syncer{db: db, svc: svc, reposDir: reposDir}
}

// Run iterates over all registered sources and reconciles each one.
// A failure in one source is logged and does not stop the others.
func (s *Syncer) Run(ctx context.Context) error {
	slog.Info("Starting sync process for all sources...")
	sources, err := s.db.ListSources(ctx)
	if err != nil {
		return fmt.Errorf("failed to get sources: %w", err)
	}

	if len(sources) == 0 {
		slog.Info("No sources configured. Add one with 'ankigo sources add <path/or/url.git>'")
		return nil
	}

	if err := os.MkdirAll(s.reposDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create repos directory: %w", err)
	}

	for _, source := range sources {
		if err := s.SyncSource(ctx, source); err != nil {
			slog.Error("Error syncing source", "id", source.ID, "path", source.Path, "error", err)
		}
	}
	slog.Info("Sync process complete.")
	return nil
}

// SyncSource reconciles a single source.
func (s *Syncer) SyncSource(ctx context.Context, source domain.Source) error {
	slog.Info("Syncing source", "id", source.ID, "kind", source.Kind, "path", source.Path)

	dir := source.Path
	if source.Kind == domain.SourceGit {
		localPath, err := gitURLToLocalPath(s.reposDir, source.Path)
		if err != nil {
			return err
		}
		if err := gitsource.Sync(ctx, source.Path, localPath); err != nil {
			return err
		}
		dir = localPath
	}
	return s.reconcile(ctx, source, dir)
}

func (s *Syncer) reconcile(ctx context.Context, source domain.Source, dir string) error {
	var (
		parsed      int
		inserted    int
		parseErrors []error
	)
	foundCards := make(map[string]bool)

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		fileCards, parseErr := parser.ParseFile(path)
		if parseErr != nil {
			parseErrors = append(parseErrors, fmt.Errorf("parsing %s: %w", path, parseErr))
		}
		for _, card := range fileCards {
			parsed++
			foundCards[fingerprint.Sum(card)] = true

			added, addErr := s.svc.Add(ctx, card, source.ID)
			switch {
			case errors.Is(addErr, domain.ErrDuplicateCard), errors.Is(addErr, domain.ErrEmptyCard):
				// Already stored, or nothing worth storing.
			case addErr != nil:
				parseErrors = append(parseErrors, fmt.Errorf("storing card from %s: %w", path, addErr))
			default:
				slog.Info("New card found, inserting", "id", added.ID, "deck", added.Deck)
				inserted++
			}
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("failed to walk directory %s: %w", dir, walkErr)
	}

	dbCards, err := s.db.CardsBySource(ctx, source.ID)
	if err != nil {
		return fmt.Errorf("failed to get cards for source ID %d: %w", source.ID, err)
	}

	var orphaned int
	for _, dbCard := range dbCards {
		if foundCards[dbCard.ID] {
			continue
		}
		slog.Info("Orphaned card, deleting", "id", dbCard.ID, "deck", dbCard.Deck)
		if err := s.db.DeleteCard(ctx, dbCard.ID); err != nil {
			slog.Warn("Failed to delete orphaned card", "id", dbCard.ID, "error", err)
			continue
		}
		orphaned++
	}

	if err := s.db.UpdateSourceSynced(ctx, source.ID, time.Now()); err != nil {
		slog.Warn("Failed to update last synced for source", "source_id", source.ID, "error", err)
	}

	slog.Info("Reconciliation complete",
		"path", source.Path,
		"parsed_cards", parsed,
		"inserted", inserted,
		"orphaned_deleted", orphaned,
		"errors", len(parseErrors),
	)
	return nil
}

// gitURLToLocalPath maps a git URL to a stable checkout directory under
// baseDir, so repeated syncs reuse the same clone.
func gitURLToLocalPath(baseDir, repoURL string) (string, error) {
	parsedURL, err := url.Parse(repoURL)
	if err != nil || (parsedURL.Scheme != "https" && parsedURL.Scheme != "http") {
		// scp-like syntax: git@host:user/repo.git
		if strings.Contains(repoURL, "@") {
			parts := strings.Split(repoURL, ":")
			if len(parts) == 2 {
				hostAndUser := strings.Split(parts[0], "@")
				if len(hostAndUser) == 2 {
					host := hostAndUser[1]
					repoPath := strings.TrimSuffix(parts[1], ".git")
					return filepath.Join(baseDir, host, repoPath), nil
				}
			}
		}
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}

	sanitizedPath := strings.TrimSuffix(parsedURL.Path, ".git")
	return filepath.Join(baseDir, parsedURL.Host, sanitizedPath), nil
}
