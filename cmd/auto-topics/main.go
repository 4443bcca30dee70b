package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gitmeta/auto-topics/internal/config"
	"github.com/gitmeta/auto-topics/internal/content"
	"github.com/gitmeta/auto-topics/internal/github"
	"github.com/gitmeta/auto-topics/internal/llm"
	"github.com/gitmeta/auto-topics/internal/pipeline"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "auto-topics",
		Short: "AI-generated topics and descriptions for GitHub repositories",
		Long: `auto-topics reads each repository's README and manifest files, asks a
language model for topics and a short description, and writes them back
through the GitHub API.

Run with no subcommand to pick the mode from the environment: a push
event (GITHUB_REPOSITORY set and UPDATE_ON_PUSH truthy) updates that one
repository, anything else sweeps the whole account.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg, ok := loadConfig()
			if !ok {
				return nil
			}

			if cfg.PushRepo != "" && cfg.UpdateOnPush {
				owner, name, err := config.SplitRepo(cfg.PushRepo)
				if err != nil {
					return err
				}
				return newRunner(cfg).Push(ctx, owner, name)
			}
			return newRunner(cfg).Sweep(ctx, pipeline.SweepOptions{})
		},
	}

	root.AddCommand(sweepCmd(), pushCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func sweepCmd() *cobra.Command {
	var force bool
	var concurrency int

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Annotate every repository owned by the authenticated user (first 100)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ok := loadConfig()
			if !ok {
				return nil
			}
			return newRunner(cfg).Sweep(context.Background(), pipeline.SweepOptions{
				Force:       force,
				Concurrency: concurrency,
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Update repos that already have topics")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "Repos processed at once (1 = sequential)")
	return cmd
}

func pushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push [owner/repo]",
		Short: "Annotate one repository (defaults to GITHUB_REPOSITORY)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ok := loadConfig()
			if !ok {
				return nil
			}

			target := cfg.PushRepo
			if len(args) == 1 {
				target = args[0]
			}
			owner, name, err := config.SplitRepo(target)
			if err != nil {
				return err
			}
			return newRunner(cfg).Push(context.Background(), owner, name)
		},
	}
}

// loadConfig reads the environment and reports missing credentials to the
// operator. A false return means the run should stop, cleanly.
func loadConfig() (*config.Config, bool) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Println("Missing GH_TOKEN or OPENAI_API_KEY. Add them in GitHub Secrets.")
		return nil, false
	}
	return cfg, true
}

func newRunner(cfg *config.Config) *pipeline.Runner {
	gh := github.NewClient(cfg.GitHubBaseURL, cfg.GitHubToken)
	gen := llm.NewClient(cfg.LLMBaseURL, cfg.OpenAIAPIKey, cfg.LLMModel)
	return pipeline.New(gh, content.NewFetcher(gh), gen)
}
