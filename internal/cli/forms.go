package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/jobwbs/internal/cli/formatter"
	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func jobwbsHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateRequired(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

// validateNumber accepts what the numeric fields accept: empty, or a
// non-negative number with optional thousands separators.
func validateNumber(field domain.Field) func(string) error {
	return func(s string) error {
		return domain.NewLineItem("").Set(field, s)
	}
}

// jobForm collects the fields of a new job. Values already set on j (from
// flags) are pre-filled.
func jobForm(j *domain.Job) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Job Number").Value(&j.JobNumber).Validate(validateRequired("job number")),
			huh.NewInput().Title("Branch Number").Value(&j.BranchNumber).Validate(validateRequired("branch number")),
			huh.NewInput().Title("Job Name").Value(&j.JobName).Validate(validateRequired("job name")),
			huh.NewInput().Title("Salesforce ID").Description("optional").Value(&j.SalesforceID),
		),
	).WithTheme(jobwbsHuhTheme()).WithShowHelp(false)
}

// itemFormValues holds the string form of every editable field while the
// item form is open.
type itemFormValues map[domain.Field]*string

func newItemFormValues(li *domain.LineItem) itemFormValues {
	v := make(itemFormValues, len(domain.EditableFields))
	for _, f := range domain.EditableFields {
		s := li.Get(f)
		if f.IsNumeric() && s == "0" {
			s = ""
		}
		v[f] = &s
	}
	return v
}

func enumOptions(allowed []string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, a := range allowed {
		opts = append(opts, huh.NewOption(a, a))
	}
	return opts
}

// itemForm builds the line-item edit form over values.
func itemForm(title string, values itemFormValues) *huh.Form {
	text := func(f domain.Field, label string) *huh.Input {
		return huh.NewInput().Title(label).Value(values[f])
	}
	number := func(f domain.Field, label string) *huh.Input {
		return huh.NewInput().Title(label).Placeholder("0").Value(values[f]).Validate(validateNumber(f))
	}
	enum := func(f domain.Field, label string, allowed []string) *huh.Select[string] {
		return huh.NewSelect[string]().Title(label).Options(enumOptions(allowed)...).Value(values[f])
	}

	return huh.NewForm(
		huh.NewGroup(
			text(domain.FieldServiceLine, "Service Line"),
			text(domain.FieldWBSTask, "WBS Task"),
			text(domain.FieldWBSSubtask, "WBS Subtask"),
			number(domain.FieldQty, "QTY"),
			text(domain.FieldUnitOfMeasure, "Unit of Measure"),
		).Title(title),
		huh.NewGroup(
			enum(domain.FieldContractVsCO, "Contract vs CO", domain.ContractTypes),
			enum(domain.FieldFPAType, "FPA Type", domain.FPATypes),
			enum(domain.FieldFPASubtype, "FPA Subtype", domain.FPASubtypes),
		),
		huh.NewGroup(
			number(domain.FieldBudgetedRevenue, "Budgeted Revenue"),
			number(domain.FieldBudgetedHours, "Budgeted Hours"),
			number(domain.FieldBudgetedCost, "Budgeted Cost"),
		),
	).WithTheme(jobwbsHuhTheme()).WithShowHelp(false)
}
