package clicker

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

// DefaultSummaryTemplate is the share text used when none is configured.
const DefaultSummaryTemplate = "I've sold {{.Sold}} desserts for a total of ${{.Revenue}}! #DessertClicker"

// summaryData is the template input. Only these two values are exposed so the
// output depends on nothing else.
type summaryData struct {
	Sold    int
	Revenue int
}

// Summary renders share text from a localizable template.
type Summary struct {
	tmpl *template.Template
}

// ErrSummaryValues reports a template that drops or reformats a counter.
var ErrSummaryValues = errors.New("clicker: summary must print .Sold and .Revenue verbatim")

// Distinct sample counters for the trial render.
const (
	trialSold    = 1234567
	trialRevenue = 7654321
)

// NewSummary parses text and trial-renders it, so template errors surface at
// startup. Both counters must appear in the output as plain decimal numbers.
func NewSummary(text string) (*Summary, error) {
	tmpl, err := template.New("summary").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("clicker: invalid summary template: %w", err)
	}
	s := &Summary{tmpl: tmpl}
	out, err := s.render(trialSold, trialRevenue)
	if err != nil {
		return nil, fmt.Errorf("clicker: invalid summary template: %w", err)
	}
	for name, v := range map[string]int{".Sold": trialSold, ".Revenue": trialRevenue} {
		if !strings.Contains(out, strconv.Itoa(v)) {
			return nil, fmt.Errorf("%w: %s missing from %q", ErrSummaryValues, name, out)
		}
	}
	return s, nil
}

// DefaultSummary returns a Summary for DefaultSummaryTemplate.
func DefaultSummary() *Summary {
	s, err := NewSummary(DefaultSummaryTemplate)
	if err != nil {
		panic(err)
	}
	return s
}

// Format renders the summary for the given counters. It panics if the
// template fails on these counters after passing NewSummary.
func (s *Summary) Format(sold, revenue int) string {
	out, err := s.render(sold, revenue)
	if err != nil {
		panic(fmt.Errorf("clicker: render summary for %d/%d: %w", sold, revenue, err))
	}
	return out
}

func (s *Summary) render(sold, revenue int) (string, error) {
	var sb strings.Builder
	if err := s.tmpl.Execute(&sb, summaryData{Sold: sold, Revenue: revenue}); err != nil {
		return "", err
	}
	return sb.String(), nil
}
