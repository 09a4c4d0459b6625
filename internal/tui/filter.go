package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/fundex/despesas/internal/model"
	"github.com/fundex/despesas/internal/pipeline"
	"github.com/fundex/despesas/internal/source"

	"github.com/charmbracelet/huh"
)

const dateInputLayout = "02/01/2006"

// filterValues backs the filter form fields.
type filterValues struct {
	centers  []string
	accounts []string
	from     string
	to       string
}

func newFilterValues(c pipeline.Criteria) *filterValues {
	v := &filterValues{
		centers:  c.Centers.Sorted(),
		accounts: c.Accounts.Sorted(),
	}
	if !c.Start.IsZero() {
		v.from = c.Start.Format(dateInputLayout)
	}
	if !c.End.IsZero() {
		v.to = c.End.Format(dateInputLayout)
	}
	return v
}

// newFilterForm builds the sidebar-style filter: two multi-selects over
// the values present in t and an optional date range.
func newFilterForm(t *model.Table, vals *filterValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Cost centers").
				Options(selectOptions(t.Centers(), vals.centers)...).
				Filterable(true).
				Height(12).
				Value(&vals.centers),
			huh.NewMultiSelect[string]().
				Title("Accounts").
				Options(selectOptions(t.Accounts(), vals.accounts)...).
				Filterable(true).
				Height(12).
				Value(&vals.accounts),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("From").
				Description("dd/mm/yyyy, blank for the first entry").
				Placeholder("01/01/2024").
				Value(&vals.from).
				Validate(validateDateInput),
			huh.NewInput().
				Title("To").
				Description("dd/mm/yyyy, blank for the last entry").
				Placeholder("31/12/2024").
				Value(&vals.to).
				Validate(validateDateInput),
		),
	).WithShowHelp(true)
}

func selectOptions(all, selected []string) []huh.Option[string] {
	on := pipeline.NewSet(selected...)
	opts := make([]huh.Option[string], len(all))
	for i, v := range all {
		opts[i] = huh.NewOption(v, v).Selected(on.Has(v))
	}
	return opts
}

func validateDateInput(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := source.ParseDate(s); err != nil {
		return errors.New("use dd/mm/yyyy")
	}
	return nil
}

// criteria converts the form values. Start after End is rejected.
func (v *filterValues) criteria() (pipeline.Criteria, error) {
	c := pipeline.Criteria{
		Centers:  pipeline.NewSet(v.centers...),
		Accounts: pipeline.NewSet(v.accounts...),
	}
	var err error
	if c.Start, err = parseOptionalDate(v.from); err != nil {
		return c, err
	}
	if c.End, err = parseOptionalDate(v.to); err != nil {
		return c, err
	}
	if !c.Start.IsZero() && !c.End.IsZero() && c.Start.After(c.End) {
		return c, errors.New("start date is after end date")
	}
	return c, nil
}

func parseOptionalDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return source.ParseDate(s)
}
