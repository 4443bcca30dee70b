package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/gitmeta/auto-topics/internal/models"
	"golang.org/x/sync/errgroup"
)

// Hosting is the writeable slice of the hosting API the orchestrator
// needs. Read lookups report absence as empty values; writes report
// failure as errors.
type Hosting interface {
	ListRepos(ctx context.Context) ([]models.Repo, error)
	GetTopics(ctx context.Context, owner, repo string) ([]string, error)
	ReplaceTopics(ctx context.Context, owner, repo string, names []string) error
	UpdateDescription(ctx context.Context, owner, repo, description string) error
}

// ContentFetcher assembles a repository's descriptive text.
type ContentFetcher interface {
	Fetch(ctx context.Context, owner, repo string) (string, error)
}

// Generator produces topics and descriptions from repository content.
type Generator interface {
	GenerateTopics(ctx context.Context, contentBlob, repoName string) ([]string, error)
	GenerateDescription(ctx context.Context, contentBlob, repoName string) (string, error)
}

// Runner orchestrates one annotation run. Construct with New and run
// exactly one of Sweep or Push.
type Runner struct {
	host    Hosting
	content ContentFetcher
	gen     Generator

	// Out receives the per-repository outcome lines. Defaults to stdout.
	Out io.Writer
}

func New(host Hosting, content ContentFetcher, gen Generator) *Runner {
	return &Runner{host: host, content: content, gen: gen, Out: os.Stdout}
}

type SweepOptions struct {
	// Force updates repositories even when they already have topics.
	Force bool

	// Concurrency bounds how many repositories are processed at once.
	// Values below 1 mean sequential, which also preserves the listing
	// order in the output.
	Concurrency int
}

// Sweep processes the first page of the account's repositories, newest
// update first: fetch content, generate topics, replace topics. Failures
// are isolated per repository; the sweep keeps going. Description updates
// are the push path's job, not the sweep's.
func (r *Runner) Sweep(ctx context.Context, opts SweepOptions) error {
	repos, err := r.host.ListRepos(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.Out, "Found %d repo(s).\n", len(repos))

	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}

	var updated atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, repo := range repos {
		repo := repo
		g.Go(func() error {
			if r.sweepOne(gCtx, repo, opts.Force) {
				updated.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	fmt.Fprintf(r.Out, "Done. Updated %d repo(s).\n", updated.Load())
	return nil
}

// sweepOne runs the fetch→generate→write sequence for a single repository
// and reports whether it ended in an update. Every outcome is logged;
// errors never escape to the sweep.
func (r *Runner) sweepOne(ctx context.Context, repo models.Repo, force bool) bool {
	blob, err := r.content.Fetch(ctx, repo.Owner, repo.Name)
	if err != nil {
		fmt.Fprintf(r.Out, "❌ Failed %s: %v\n", repo.Name, err)
		return false
	}
	if blob == "" {
		fmt.Fprintf(r.Out, "⏭ Skipped %s (no README or config files)\n", repo.Name)
		return false
	}

	if !force {
		current, err := r.host.GetTopics(ctx, repo.Owner, repo.Name)
		if err != nil {
			fmt.Fprintf(r.Out, "❌ Failed %s: %v\n", repo.Name, err)
			return false
		}
		if len(current) > 0 {
			fmt.Fprintf(r.Out, "⏭ Skipped %s (already has topics: %v)\n", repo.Name, current)
			return false
		}
	}

	names, err := r.gen.GenerateTopics(ctx, blob, repo.Name)
	if err != nil {
		fmt.Fprintf(r.Out, "❌ Failed %s: %v\n", repo.Name, err)
		return false
	}
	if len(names) == 0 {
		fmt.Fprintf(r.Out, "⚠ No topics generated for %s\n", repo.Name)
		return false
	}

	if err := r.host.ReplaceTopics(ctx, repo.Owner, repo.Name, names); err != nil {
		fmt.Fprintf(r.Out, "❌ Failed %s: %v\n", repo.Name, err)
		return false
	}
	fmt.Fprintf(r.Out, "✅ Updated topics for %s: %v\n", repo.Name, names)
	return true
}

// Push annotates a single repository after a push event: topics and
// description both, each written only when generation produced something.
// Unlike the sweep, any generation or write error is fatal.
func (r *Runner) Push(ctx context.Context, owner, name string) error {
	fmt.Fprintf(r.Out, "Push mode: updating topics + description for %s/%s\n", owner, name)

	blob, err := r.content.Fetch(ctx, owner, name)
	if err != nil {
		return err
	}
	if blob == "" {
		fmt.Fprintf(r.Out, "⏭ No README or config files; skipping.\n")
		return nil
	}

	names, err := r.gen.GenerateTopics(ctx, blob, name)
	if err != nil {
		return err
	}
	description, err := r.gen.GenerateDescription(ctx, blob, name)
	if err != nil {
		return err
	}

	if len(names) > 0 {
		if err := r.host.ReplaceTopics(ctx, owner, name, names); err != nil {
			return err
		}
		fmt.Fprintf(r.Out, "✅ Topics: %v\n", names)
	}
	if description != "" {
		if err := r.host.UpdateDescription(ctx, owner, name, description); err != nil {
			return err
		}
		fmt.Fprintf(r.Out, "✅ Description: %s\n", preview(description, 80))
	}
	return nil
}

// preview shortens s for a log line.
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
