package loader

import (
	"log/slog"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/sitemeta/internal/logfields"
	"git.home.luguber.info/inful/sitemeta/internal/pipeline"
)

// attachGitDates fills a root-level lastmod field from the last commit that
// touched each source file, for documents whose front matter does not already
// carry a modification date. Absence of a git repository is not an error.
func (l *Loader) attachGitDates(log *slog.Logger, docs []*pipeline.Document) {
	repo, err := git.PlainOpenWithOptions(l.Dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		log.Debug("no git repository for content dir, skipping git dates", logfields.Error(err))
		return
	}
	wt, err := repo.Worktree()
	if err != nil {
		log.Debug("git worktree unavailable, skipping git dates", logfields.Error(err))
		return
	}
	root := wt.Filesystem.Root()

	for _, doc := range docs {
		if doc.Kind == pipeline.KindOther || hasModificationDate(doc.FrontMatter) {
			continue
		}
		rel, err := filepath.Rel(root, doc.FilePath)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)

		when, ok := lastCommitTime(repo, rel)
		if !ok {
			continue
		}
		if doc.FrontMatter == nil {
			doc.FrontMatter = map[string]any{}
		}
		doc.FrontMatter["lastmod"] = when.UTC().Format(time.RFC3339)
	}
}

func hasModificationDate(fm map[string]any) bool {
	if fm == nil {
		return false
	}
	for _, key := range []string{"lastmod", "modifiedDate"} {
		if v, ok := fm[key]; ok && v != nil {
			return true
		}
	}
	return false
}

func lastCommitTime(repo *git.Repository, rel string) (time.Time, bool) {
	iter, err := repo.Log(&git.LogOptions{FileName: &rel, Order: git.LogOrderCommitterTime})
	if err != nil {
		return time.Time{}, false
	}
	defer iter.Close()

	commit, err := iter.Next()
	if err != nil {
		return time.Time{}, false
	}
	return commit.Committer.When, true
}
