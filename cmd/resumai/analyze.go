package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"github.com/thanush/resumai/internal/ai"
	"github.com/thanush/resumai/internal/config"
	"github.com/thanush/resumai/internal/extract"
	"github.com/thanush/resumai/internal/gateway"
	"github.com/thanush/resumai/internal/types"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze <file|->",
	Short: "Run the AI recruiter audit over a resume file",
	Long: `Extracts text from the given resume file (.pdf, .docx, .txt, .html, .jpg,
.jpeg, .png; "-" reads plain text from stdin), sends it to the AI for a
recruiter and ATS audit, prints the result, and saves it to the signed-in
user's history. Without a usable GEMINI_API_KEY, or when the AI call times
out, a canned local analysis is substituted so the flow stays usable.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyzeCmd,
}

var (
	analyzeTimeout time.Duration
	analyzeNoSave  bool
)

func init() {
	analyzeCommand.Flags().DurationVar(&analyzeTimeout, "timeout", 90*time.Second, "AI request timeout")
	analyzeCommand.Flags().BoolVar(&analyzeNoSave, "no-save", false, "Print the analysis without saving it to history")
	rootCmd.AddCommand(analyzeCommand)
}

// timeoutShaped matches error text that indicates the AI call ran out of time
// rather than failed outright.
var timeoutShaped = regexp.MustCompile(`(?i)timeout|timed out`)

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	client, clientErr := ai.NewGeminiClient(ctx, cfg.GeminiKey, ai.DefaultModel)
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	resumeText, err := readResume(ctx, args[0], client)
	if err != nil {
		return err
	}
	if resumeText == "" {
		return fmt.Errorf("no text could be extracted from %s", args[0])
	}

	analysis, err := runAnalysis(ctx, client, clientErr, resumeText)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	fmt.Println(string(out))

	if analyzeNoSave {
		return nil
	}
	return saveAnalysis(ctx, resumeText, analysis)
}

// readResume loads and extracts the resume text. "-" reads stdin verbatim.
// Image files need a working AI client for text extraction.
func readResume(ctx context.Context, path string, client *ai.GeminiClient) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	var ocr extract.OCRClient
	if client != nil {
		ocr = client
	}
	return extract.Extract(ctx, path, data, ocr)
}

// runAnalysis asks the AI for the audit, substituting the canned mock when no
// credential is configured or the call times out.
func runAnalysis(ctx context.Context, client *ai.GeminiClient, clientErr error, resumeText string) (*types.ResumeAnalysis, error) {
	if clientErr != nil {
		if errors.Is(clientErr, ai.ErrMissingCredential) {
			fmt.Fprintln(os.Stderr, "GEMINI_API_KEY not set, using local mock analysis.")
			return ai.MockAnalysis(), nil
		}
		return nil, clientErr
	}

	callCtx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	analysis, err := client.Analyze(callCtx, resumeText)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || timeoutShaped.MatchString(err.Error()) {
			fmt.Fprintln(os.Stderr, "AI request timed out, using local mock analysis.")
			return ai.MockAnalysis(), nil
		}
		return nil, err
	}
	return analysis, nil
}

// saveAnalysis records the result in the signed-in user's history. Without a
// session the analysis is still printed, just not persisted.
func saveAnalysis(ctx context.Context, resumeText string, analysis *types.ResumeAnalysis) error {
	gw, err := newGateway()
	if err != nil {
		return err
	}

	user, err := gw.ActiveUser()
	if err != nil {
		if errors.Is(err, gateway.ErrNotAuthenticated) {
			fmt.Fprintln(os.Stderr, "Not signed in; analysis was not saved to history.")
			return nil
		}
		return err
	}

	if _, err := gw.SaveAnalysis(ctx, user.ID, resumeText, *analysis); err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Saved to history for %s.\n", user.Email)
	return nil
}
