package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/BrandGuard-Intelligence/pkg/client"
)

// NewBatchCmd creates the batch command: scoring of many listings read
// from a JSON file.
func NewBatchCmd() *cobra.Command {
	var (
		file    string
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Analyze a batch of product listings",
		Long:  "Score a JSON array of product listings in one call and print a per-listing\nbreakdown plus outcome totals.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read batch file: %w", err)
			}

			var listings []client.Listing
			if err := json.Unmarshal(data, &listings); err != nil {
				return fmt.Errorf("failed to parse batch file (expected a JSON array of listings): %w", err)
			}

			result, err := cliCtx.Client.Listings().AnalyzeBatch(cmd.Context(), listings)
			if err != nil {
				return err
			}

			if outFile != "" {
				encoded, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(outFile, encoded, 0644); err != nil {
					return fmt.Errorf("failed to write output file: %w", err)
				}
			}

			return PrintResult(cmd, batchResultView{result})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to a JSON file with an array of listings [REQUIRED]")
	cmd.Flags().StringVar(&outFile, "out", "", "write the full JSON response to this file")
	cmd.MarkFlagRequired("file")

	return cmd
}

// batchResultView adapts a BatchResult to the CLI output formats.
type batchResultView struct {
	*client.BatchResult
}

func (v batchResultView) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Batch of %d listings: %d scored, %d rejected, %d incomplete\n\n",
		len(v.Results), v.Scored, v.Rejected, v.Incomplete)

	for i, item := range v.Results {
		switch {
		case item.Result != nil && item.Error != nil:
			fmt.Fprintf(&sb, "%3d. %-24s %s (%s)\n", i+1, item.Result.ListingID, item.Result.Outcome, item.Error.Message)
		case item.Result != nil:
			fmt.Fprintf(&sb, "%3d. %-24s score %3d  %-6s %s\n",
				i+1, item.Result.ListingID, item.Result.Score, item.Result.RiskLevel, item.Result.Outcome)
		case item.Error != nil:
			fmt.Fprintf(&sb, "%3d. FAILED: %s (%s)\n", i+1, item.Error.Message, item.Error.Code)
		}
	}
	return sb.String()
}

func (v batchResultView) TableHeaders() []string {
	return []string{"#", "Listing", "Score", "Risk", "Outcome", "Error"}
}

func (v batchResultView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.Results))
	for i, item := range v.Results {
		row := []string{fmt.Sprintf("%d", i+1), "", "", "", "", ""}
		if item.Result != nil {
			row[1] = item.Result.ListingID
			row[2] = fmt.Sprintf("%d", item.Result.Score)
			row[3] = item.Result.RiskLevel
			row[4] = item.Result.Outcome
		}
		if item.Error != nil {
			row[5] = item.Error.Code
		}
		rows = append(rows, row)
	}
	return rows
}

//Personal.AI order the ending
