package testkit

import (
	"bytes"
	"fmt"
	"math/rand"

	"github.com/xuri/excelize/v2"
)

// SurveyHeaders are the column titles used by the INCOSE India questionnaire.
var SurveyHeaders = []string{
	"Timestamp",
	"Domain",
	"Are you an INCOSE member?",
	"What would help you decide?",
	"What would be valuable in 2026?",
}

// SurveyGeneratorConfig configures the survey response generator
type SurveyGeneratorConfig struct {
	Respondents  int      `json:"respondents"`
	Seed         int64    `json:"seed"`
	Domains      []string `json:"domains"`
	Memberships  []string `json:"memberships"`
	Decisions    []string `json:"decisions"`
	Expectations []string `json:"expectations"`
	// MissingRate is the probability that an answer is left blank.
	MissingRate float64 `json:"missing_rate"`
}

// DefaultSurveyConfig returns a realistic mix of answers
func DefaultSurveyConfig() SurveyGeneratorConfig {
	return SurveyGeneratorConfig{
		Respondents: 60,
		Seed:        42,
		Domains: []string{
			"Healthcare", "Healthcare", "Healthcare",
			"Aerospace", "Aerospace",
			"Automotive", "Automotive",
			"Defense", "Energy", "Rail",
		},
		Memberships: []string{
			"Yes", "Yes", "Yes",
			"No, still exploring",
			"No, need help to decide",
			"No",
		},
		Decisions: []string{
			"Clarity on ASEP certification path",
			"CSEP preparation support",
			"Employer sponsorship",
			"Lower membership fee",
			"Local chapter events",
		},
		Expectations: []string{
			"Certification guidance",
			"Certification guidance",
			"Domain-specific working groups",
			"Mentorship",
			"Networking events",
		},
		MissingRate: 0.05,
	}
}

// SurveyDataGenerator generates survey answer rows
type SurveyDataGenerator struct {
	config SurveyGeneratorConfig
	rng    *rand.Rand
}

// NewSurveyDataGenerator creates a new seeded survey generator
func NewSurveyDataGenerator(config SurveyGeneratorConfig) *SurveyDataGenerator {
	return &SurveyDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateRows returns one row per respondent, aligned with SurveyHeaders
func (g *SurveyDataGenerator) GenerateRows() [][]string {
	rows := make([][]string, 0, g.config.Respondents)
	for i := 0; i < g.config.Respondents; i++ {
		rows = append(rows, []string{
			fmt.Sprintf("2025-11-%02d 10:%02d", 1+i%28, i%60),
			g.pick(g.config.Domains),
			g.pick(g.config.Memberships),
			g.pick(g.config.Decisions),
			g.pick(g.config.Expectations),
		})
	}
	return rows
}

func (g *SurveyDataGenerator) pick(options []string) string {
	if len(options) == 0 || g.rng.Float64() < g.config.MissingRate {
		return ""
	}
	return options[g.rng.Intn(len(options))]
}

// ScenarioHeaders are the four questions of the reference scenario.
var ScenarioHeaders = []string{
	"Domain",
	"Are you an INCOSE member?",
	"What would help you decide?",
	"What would be valuable in 2026?",
}

// ScenarioRows is a 12 response sample: 11 members, Healthcare leading with 5
// responses, 4 answers naming ASEP or CSEP.
func ScenarioRows() [][]string {
	return [][]string{
		{"Healthcare", "Yes", "ASEP roadmap", "Certification guidance"},
		{"Healthcare", "Yes", "Mentoring", "Certification guidance"},
		{"Aerospace", "Yes", "CSEP exam prep", "Networking"},
		{"Healthcare", "Yes", "Employer support", "Mentorship"},
		{"Automotive", "Yes", "Fee waiver", "Certification guidance"},
		{"Aerospace", "Yes", "asep study group", "Networking"},
		{"Healthcare", "yes, since 2019", "Local events", "Certification guidance"},
		{"Defense", "Yes", "Employer support", "Mentorship"},
		{"Aerospace", "Yes", "Mentoring", "Networking"},
		{"Healthcare", "Yes", "Csep mentoring", "Certification guidance"},
		{"Automotive", "Yes", "Local events", "Networking"},
		{"Defense", "No, still exploring", "Fee waiver", "Mentorship"},
	}
}

// WorkbookBytes writes headers and rows to the first sheet of a new xlsx workbook
func WorkbookBytes(headers []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		if v == "" {
			cells[i] = nil
			continue
		}
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
