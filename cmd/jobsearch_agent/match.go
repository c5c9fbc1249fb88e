package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgentry/jobsearch-agent/internal/jobstore"
	"github.com/dgentry/jobsearch-agent/internal/llm"
	"github.com/dgentry/jobsearch-agent/internal/matching"
	"github.com/dgentry/jobsearch-agent/internal/profile"
	"github.com/dgentry/jobsearch-agent/internal/types"
)

var matchJobsFile string

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score job postings against the candidate profile",
	Long: `Score a batch of job postings with the model and print the results.

Postings come from --jobs (a JSON file holding an array of postings) or,
when the flag is omitted, from the configured job store (falling back to
the built-in sample dataset).`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchJobsFile, "jobs", "", "Path to a JSON file with an array of job postings")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	jobs, err := loadMatchJobs(ctx)
	if err != nil {
		return err
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	matcher := matching.NewMatcher(client, profile.Default())
	results, problems, err := matcher.Match(ctx, jobs)
	if err != nil {
		return err
	}

	for _, r := range results {
		fmt.Printf("%-14s %3d  %-13s %s\n", r.JobID, r.MatchScore, r.Recommendation, r.MatchNotes)
	}
	for _, p := range problems {
		fmt.Fprintf(os.Stderr, "problem: %s\n", p.String())
	}
	fmt.Printf("\n%d scored, %d problems\n", len(results), len(problems))
	return nil
}

func loadMatchJobs(ctx context.Context) ([]types.JobPosting, error) {
	if matchJobsFile != "" {
		data, err := os.ReadFile(matchJobsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read jobs file: %w", err)
		}
		var jobs []types.JobPosting
		if err := json.Unmarshal(data, &jobs); err != nil {
			return nil, fmt.Errorf("failed to parse jobs file: %w", err)
		}
		return jobs, nil
	}

	store := jobstore.New(os.Getenv("GAS_WEB_APP_URL"))
	jobs, fallback := store.LoadJobs(ctx)
	if fallback {
		fmt.Fprintln(os.Stderr, "using sample job data (store not configured or unreachable)")
	}
	return jobs, nil
}
