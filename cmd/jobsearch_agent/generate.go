package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgentry/jobsearch-agent/internal/generating"
	"github.com/dgentry/jobsearch-agent/internal/jobstore"
	"github.com/dgentry/jobsearch-agent/internal/llm"
	"github.com/dgentry/jobsearch-agent/internal/profile"
	"github.com/dgentry/jobsearch-agent/internal/types"
)

var (
	generateJobID string
	generateType  string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft a cover letter or resume highlights for a posting",
	Long: `Draft an application document for one job posting.

The posting is looked up by --job-id in the configured job store (or the
built-in sample dataset when the store is unavailable).`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateJobID, "job-id", "", "ID of the job posting (required)")
	generateCmd.Flags().StringVar(&generateType, "type", string(types.GenerateCoverLetter), "Document type: cover_letter or resume_highlights")
	_ = generateCmd.MarkFlagRequired("job-id")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	docType := types.GenerateType(generateType)
	if !types.ValidGenerateType(docType) {
		return fmt.Errorf("invalid type %q: must be cover_letter or resume_highlights", generateType)
	}

	job, err := findJob(ctx, generateJobID)
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

	generator := generating.NewGenerator(client, profile.Default())
	content, err := generator.Generate(ctx, job, docType)
	if err != nil {
		return err
	}

	fmt.Println(content)
	return nil
}

// findJob locates a posting by id in the store, or in the sample dataset when
// the store is unavailable.
func findJob(ctx context.Context, jobID string) (*types.JobPosting, error) {
	store := jobstore.New(os.Getenv("GAS_WEB_APP_URL"))

	if store.Configured() {
		job, err := store.GetJob(ctx, jobID)
		if err == nil && job != nil {
			return job, nil
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "store lookup failed, checking sample data: %v\n", err)
		}
	}

	for _, job := range jobstore.SampleJobs() {
		if job.JobID == jobID {
			return &job, nil
		}
	}
	return nil, fmt.Errorf("job %q not found", jobID)
}
