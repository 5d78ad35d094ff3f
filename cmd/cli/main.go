package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"incosedss/adapters/excel"
	"incosedss/domain/survey"
	"incosedss/internal/analysis"
	"incosedss/internal/config"
	"incosedss/internal/errors"
	"incosedss/internal/insights"
	"incosedss/internal/report"
	"incosedss/internal/table"
	"incosedss/internal/testkit"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "dss",
		Short:        "INCOSE India survey decision support from the command line",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newReportCmd(),
		newColumnsCmd(),
		newSampleCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newReportCmd() *cobra.Command {
	var domain string
	var summary bool
	var configFile string

	cmd := &cobra.Command{
		Use:   "report [survey.xlsx]",
		Short: "Print the decision support report for a survey file",
		Long: `Read a survey workbook or CSV export and print the same report the web
page shows: key outcomes, distributions, the domain by membership table,
risks, opportunities and recommendations.

Example: dss report survey.xlsx --domain Healthcare --summary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := reportConfig(configFile)
			if err != nil {
				return err
			}

			ds, err := loadDataset(args[0], cfg)
			if err != nil {
				return alertError(cmd.ErrOrStderr(), err)
			}

			r, err := report.Build(ds, report.Request{Domain: domain, WithSummary: summary}, cfg.Thresholds)
			if err != nil {
				return alertError(cmd.ErrOrStderr(), err)
			}

			printReport(cmd.OutOrStdout(), r)
			return nil
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "All", "Restrict the report to one domain")
	cmd.Flags().BoolVar(&summary, "summary", false, "Append the executive summary")
	cmd.Flags().StringVar(&configFile, "config", "", "YAML report configuration overriding the defaults")

	return cmd
}

func newColumnsCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "columns [survey.xlsx]",
		Short: "Show which column answers each survey question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := reportConfig(configFile)
			if err != nil {
				return err
			}

			ds, err := loadDataset(args[0], cfg)
			if err != nil {
				return alertError(cmd.ErrOrStderr(), err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ROLE\tCOLUMN")
			for _, role := range survey.Roles {
				fmt.Fprintf(w, "%s\t%s\n", role.Label(), ds.Mapping.Column(role))
			}
			fmt.Fprintf(w, "\nDomains\t%s\n", strings.Join(ds.DomainOptions[1:], ", "))
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "YAML report configuration overriding the defaults")
	return cmd
}

func newSampleCmd() *cobra.Command {
	var rows int
	var seed int64
	var scenario bool

	cmd := &cobra.Command{
		Use:   "sample [out.xlsx]",
		Short: "Write a synthetic survey workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headers, data := testkit.ScenarioHeaders, testkit.ScenarioRows()
			if !scenario {
				genCfg := testkit.DefaultSurveyConfig()
				genCfg.Respondents = rows
				genCfg.Seed = seed
				headers, data = testkit.SurveyHeaders, testkit.NewSurveyDataGenerator(genCfg).GenerateRows()
			}

			content, err := testkit.WorkbookBytes(headers, data)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], content, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d responses to %s\n", len(data), args[0])
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 60, "Number of synthetic responses")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic output")
	cmd.Flags().BoolVar(&scenario, "scenario", false, "Write the fixed 12 response sample instead")

	return cmd
}

func reportConfig(path string) (config.ReportConfig, error) {
	if path == "" {
		return config.DefaultReportConfig(), nil
	}
	return config.LoadReportFile(path)
}

func loadDataset(path string, cfg config.ReportConfig) (*report.Dataset, error) {
	data, err := excel.NewDataReader(path).WithConfig(cfg.Reader).ReadData()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read survey")
	}
	tbl, err := table.FromExcel(data, cfg.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load table")
	}
	return report.Prepare(tbl, cfg.Rules)
}

// alertError prints err the way the web page would and returns it for the exit code
func alertError(w io.Writer, err error) error {
	alert := errors.ToAlert(err)
	fmt.Fprintf(w, "[%s] %s\n", strings.ToUpper(alert.Level), alert.Title)
	for _, line := range alert.Lines {
		fmt.Fprintf(w, "  - %s\n", line)
	}
	return err
}

func printReport(out io.Writer, r *report.Report) {
	fmt.Fprintf(out, "INCOSE India – Survey Decision Support System (domain: %s)\n\n", r.Domain)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Key Survey Outcomes")
	fmt.Fprintf(w, "  Total Responses\t%d\n", r.Metrics.TotalResponses)
	fmt.Fprintf(w, "  Existing INCOSE Members\t%d\n", r.Metrics.ExistingMembers)
	fmt.Fprintf(w, "  Need ASEP / CSEP Guidance\t%d\n", r.Metrics.GuidanceNeed)
	fmt.Fprintln(w)

	printDistribution(w, "Membership Status", r.Membership)
	printDistribution(w, "Domain Representation", r.Domains)
	printDistribution(w, "What Members Expect from INCOSE (2026)", r.Expectations)

	fmt.Fprintln(w, "Domain by Membership")
	fmt.Fprintf(w, "  \t%s\tTotal\n", strings.Join(r.CrossTab.Columns, "\t"))
	for i, row := range r.CrossTab.Rows {
		fmt.Fprintf(w, "  %s", row)
		for _, n := range r.CrossTab.Counts[i] {
			fmt.Fprintf(w, "\t%d", n)
		}
		fmt.Fprintf(w, "\t%d\n", r.CrossTab.RowTotals[i])
	}
	w.Flush()
	if a := r.Association; a != nil {
		fmt.Fprintf(out, "  chi2=%.2f df=%d p=%.3f V=%.2f\n", a.ChiSquare, a.DegreesOfFreedom, a.PValue, a.CramersV)
	}

	fmt.Fprintf(out, "\nInsights\n  Most represented domain: %s\n  Most expected support: %s\n", r.TopDomain, r.TopExpectation)

	fmt.Fprintln(out, "\nRisks")
	for _, line := range r.Findings.RiskLines() {
		fmt.Fprintf(out, "  ! %s\n", line)
	}
	fmt.Fprintln(out, "\nOpportunities")
	for _, line := range r.Findings.OpportunityLines() {
		fmt.Fprintf(out, "  + %s\n", line)
	}

	fmt.Fprintln(out, "\nStrategic Recommendations for INCOSE India")
	fmt.Fprint(out, insights.RecommendationsMarkdown())

	if r.ExecutiveSummary != "" {
		fmt.Fprintf(out, "\nExecutive Summary\n%s", r.ExecutiveSummary)
	}
}

func printDistribution(w io.Writer, title string, d analysis.Distribution) {
	fmt.Fprintln(w, title)
	for _, b := range d.Buckets {
		fmt.Fprintf(w, "  %s\t%d\n", b.Label, b.Count)
	}
	fmt.Fprintln(w)
}
