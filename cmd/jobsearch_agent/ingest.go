package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dgentry/jobsearch-agent/internal/ingestion"
	"github.com/dgentry/jobsearch-agent/internal/llm"
	"github.com/dgentry/jobsearch-agent/internal/types"
)

var (
	ingestBrowser     bool
	ingestConcurrency int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest URL [URL...]",
	Short: "Extract job postings from web pages",
	Long: `Fetch each URL, extract the posting's fields with the model, and print
the resulting postings as a JSON array.

URLs are processed concurrently. A failed URL is reported on stderr and
does not abort the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestBrowser, "browser", false, "Force headless-browser fetching for JS-rendered pages")
	ingestCmd.Flags().IntVar(&ingestConcurrency, "concurrency", 3, "Maximum URLs fetched at once")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
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

	var (
		mu       sync.Mutex
		postings []types.JobPosting
		failed   int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ingestConcurrency)

	for _, urlStr := range args {
		g.Go(func() error {
			posting, err := ingestion.IngestPosting(gctx, client, urlStr, ingestBrowser)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "ingest failed for %s: %v\n", urlStr, err)
				return nil
			}
			postings = append(postings, *posting)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(postings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode postings: %w", err)
	}
	fmt.Println(string(encoded))

	if failed > 0 {
		return fmt.Errorf("%d of %d URLs failed", failed, len(args))
	}
	return nil
}
