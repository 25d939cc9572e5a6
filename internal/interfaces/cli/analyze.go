package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/BrandGuard-Intelligence/pkg/client"
)

// NewAnalyzeCmd creates the analyze command: synchronous scoring of a
// single listing, provided either as a JSON file or through flags.
func NewAnalyzeCmd() *cobra.Command {
	var (
		file           string
		id             string
		title          string
		description    string
		price          float64
		seller         string
		shippingOrigin string
		declaredBrand  string
		category       string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a single product listing",
		Long:  "Score one product listing against the brand knowledge graph and print the\ncounterfeit risk assessment.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			var in client.Listing
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read listing file: %w", err)
				}
				if err := json.Unmarshal(data, &in); err != nil {
					return fmt.Errorf("failed to parse listing file: %w", err)
				}
			} else {
				if title == "" {
					return fmt.Errorf("either --file or --title is required")
				}
				in = client.Listing{
					ID:             id,
					Title:          title,
					Description:    description,
					Price:          price,
					Seller:         seller,
					ShippingOrigin: shippingOrigin,
					DeclaredBrand:  declaredBrand,
					Category:       category,
				}
			}

			result, err := cliCtx.Client.Listings().Analyze(cmd.Context(), in)
			if err != nil && result == nil {
				return err
			}

			if err := PrintResult(cmd, scoreResultView{result}); err != nil {
				return err
			}

			if result.RiskLevel == "HIGH" {
				fmt.Fprintf(cmd.ErrOrStderr(), "WARNING: listing %s has HIGH counterfeit risk\n", result.ListingID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to a JSON file containing the listing")
	cmd.Flags().StringVar(&id, "id", "", "listing identifier")
	cmd.Flags().StringVar(&title, "title", "", "listing title")
	cmd.Flags().StringVar(&description, "description", "", "listing description")
	cmd.Flags().Float64Var(&price, "price", 0, "listing price")
	cmd.Flags().StringVar(&seller, "seller", "", "seller name")
	cmd.Flags().StringVar(&shippingOrigin, "origin", "", "shipping origin")
	cmd.Flags().StringVar(&declaredBrand, "brand", "", "declared brand")
	cmd.Flags().StringVar(&category, "category", "", "listing category")

	return cmd
}

// scoreResultView adapts a ScoreResult to the CLI output formats.
type scoreResultView struct {
	*client.ScoreResult
}

func (v scoreResultView) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Listing:    %s\n", v.ListingID)
	fmt.Fprintf(&sb, "Outcome:    %s\n", v.Outcome)
	fmt.Fprintf(&sb, "Score:      %d/100\n", v.Score)
	fmt.Fprintf(&sb, "Risk:       %s\n", v.RiskLevel)
	fmt.Fprintf(&sb, "Confidence: %.2f\n", v.Confidence)
	fmt.Fprintf(&sb, "Likely counterfeit: %t\n", v.LikelyCounterfeit)
	if v.Mention != nil {
		fmt.Fprintf(&sb, "Brand:      %s (matched %q, %s, confidence %.2f)\n",
			v.Mention.Brand, v.Mention.Matched, v.Mention.Type, v.Mention.Confidence)
	}
	if v.Degraded {
		sb.WriteString("Degraded:   partial brand context was used\n")
	}

	triggered := 0
	for _, ind := range v.Indicators {
		if ind.Triggered {
			triggered++
		}
	}
	if triggered > 0 {
		sb.WriteString("\nTriggered indicators:\n")
		for _, ind := range v.Indicators {
			if !ind.Triggered {
				continue
			}
			fmt.Fprintf(&sb, "  %-20s severity %.2f  %s\n", ind.Name, ind.Severity, ind.Rationale)
		}
	}
	return sb.String()
}

func (v scoreResultView) TableHeaders() []string {
	return []string{"Listing", "Score", "Risk", "Confidence", "Outcome"}
}

func (v scoreResultView) TableRows() [][]string {
	return [][]string{{
		v.ListingID,
		fmt.Sprintf("%d", v.Score),
		v.RiskLevel,
		fmt.Sprintf("%.2f", v.Confidence),
		v.Outcome,
	}}
}

//Personal.AI order the ending
