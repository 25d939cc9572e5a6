package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/BrandGuard-Intelligence/pkg/client"
)

// NewBrandsCmd creates the brands command group for inspecting and
// extending the brand knowledge graph.
func NewBrandsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brands",
		Short: "Inspect and extend the brand knowledge graph",
	}

	cmd.AddCommand(
		newBrandsListCmd(),
		newBrandsGetCmd(),
		newBrandsAddVariationCmd(),
		newBrandsAddPatternCmd(),
	)

	return cmd
}

func newBrandsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all protected brands",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			names, err := cliCtx.Client.Brands().List(cmd.Context())
			if err != nil {
				return err
			}

			return PrintResult(cmd, strings.Join(names, "\n"))
		},
	}
}

func newBrandsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <brand>",
		Short: "Show a brand's record, variations, and patterns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			detail, err := cliCtx.Client.Brands().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return PrintResult(cmd, brandDetailView{detail})
		},
	}
}

func newBrandsAddVariationCmd() *cobra.Command {
	var (
		name       string
		riskWeight float64
	)

	cmd := &cobra.Command{
		Use:   "add-variation <brand>",
		Short: "Register a new name variation for a brand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			v := client.Variation{Name: name, RiskWeight: riskWeight}
			if err := cliCtx.Client.Brands().AddVariation(cmd.Context(), args[0], v); err != nil {
				return err
			}

			PrintSuccess(cmd, fmt.Sprintf("variation %q added to brand %s", name, args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "variation spelling [REQUIRED]")
	cmd.Flags().Float64Var(&riskWeight, "risk-weight", 0.8, "risk weight in [0,1]")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newBrandsAddPatternCmd() *cobra.Command {
	var (
		name        string
		weight      float64
		description string
	)

	cmd := &cobra.Command{
		Use:   "add-pattern <brand>",
		Short: "Register a new counterfeit pattern for a brand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			p := client.CounterfeitPattern{Name: name, Weight: weight, Description: description}
			if err := cliCtx.Client.Brands().AddPattern(cmd.Context(), args[0], p); err != nil {
				return err
			}

			PrintSuccess(cmd, fmt.Sprintf("pattern %q added to brand %s", name, args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "pattern name [REQUIRED]")
	cmd.Flags().Float64Var(&weight, "weight", 0.5, "pattern weight in [0,1]")
	cmd.Flags().StringVar(&description, "description", "", "human-readable description")
	cmd.MarkFlagRequired("name")

	return cmd
}

// brandDetailView adapts a BrandDetail to the CLI output formats.
type brandDetailView struct {
	*client.BrandDetail
}

func (v brandDetailView) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Brand: %s\n", v.Record.Name)
	if len(v.Record.ProductTypes) > 0 {
		fmt.Fprintf(&sb, "Product types: %s\n", strings.Join(v.Record.ProductTypes, ", "))
	}
	if len(v.Record.Regions) > 0 {
		fmt.Fprintf(&sb, "Regions: %s\n", strings.Join(v.Record.Regions, ", "))
	}
	if len(v.Record.Baselines) > 0 {
		sb.WriteString("Price baselines:\n")
		for category, price := range v.Record.Baselines {
			fmt.Fprintf(&sb, "  %-16s %.2f\n", category, price)
		}
	}
	if len(v.Record.Variations) > 0 {
		sb.WriteString("Variations:\n")
		for _, variation := range v.Record.Variations {
			fmt.Fprintf(&sb, "  %-16s risk %.2f\n", variation.Name, variation.RiskWeight)
		}
	}
	if len(v.Patterns) > 0 {
		sb.WriteString("Counterfeit patterns:\n")
		for _, p := range v.Patterns {
			fmt.Fprintf(&sb, "  %-16s weight %.2f  %s\n", p.Name, p.Weight, p.Description)
		}
	}
	return sb.String()
}

func (v brandDetailView) TableHeaders() []string {
	return []string{"Variation", "Risk Weight"}
}

func (v brandDetailView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.Record.Variations))
	for _, variation := range v.Record.Variations {
		rows = append(rows, []string{variation.Name, fmt.Sprintf("%.2f", variation.RiskWeight)})
	}
	return rows
}

//Personal.AI order the ending
