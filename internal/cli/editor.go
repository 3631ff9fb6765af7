package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/jobwbs/internal/aggregate"
	"github.com/alexanderramin/jobwbs/internal/cli/formatter"
	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/alexanderramin/jobwbs/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type editorMode int

const (
	editorBrowse editorMode = iota
	editorForm
)

type editorKeyMap struct {
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Save      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Cancel    key.Binding
}

func defaultEditorKeys() editorKeyMap {
	return editorKeyMap{
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:      key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Save:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// editorTableKeyMap leaves letter keys other than j/k/g/G free for the
// editor's own shortcuts.
func editorTableKeyMap() table.KeyMap {
	return table.KeyMap{
		LineUp:       key.NewBinding(key.WithKeys("up", "k")),
		LineDown:     key.NewBinding(key.WithKeys("down", "j")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		GotoTop:      key.NewBinding(key.WithKeys("home", "g")),
		GotoBottom:   key.NewBinding(key.WithKeys("end", "G")),
	}
}

var editorColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "Service Line", Width: 16},
	{Title: "Task", Width: 18},
	{Title: "Subtask", Width: 18},
	{Title: "Qty", Width: 9},
	{Title: "UoM", Width: 9},
	{Title: "Contract", Width: 8},
	{Title: "FPA Type", Width: 9},
	{Title: "Subtype", Width: 10},
	{Title: "Revenue", Width: 13},
	{Title: "Hours", Width: 8},
	{Title: "Cost", Width: 13},
}

// editorModel edits one job's WBS through an EditSession. Changes stay in
// the session buffer until the user saves.
type editorModel struct {
	ctx     context.Context
	session *service.EditSession
	keys    editorKeyMap
	table   table.Model

	mode       editorMode
	form       *huh.Form
	formIndex  int
	formValues itemFormValues

	status      string
	statusErr   bool
	confirmQuit bool
	lastSave    *service.SaveResult
}

func newEditorModel(ctx context.Context, s *service.EditSession, pageSize int) editorModel {
	if pageSize <= 0 {
		pageSize = 20
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(formatter.ColorHeader).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(formatter.ColorDim).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(formatter.ColorFg).
		Background(lipgloss.Color("#504945")).
		Bold(false)

	t := table.New(
		table.WithColumns(editorColumns),
		table.WithFocused(true),
		table.WithHeight(pageSize+1),
		table.WithKeyMap(editorTableKeyMap()),
		table.WithStyles(styles),
	)

	m := editorModel{
		ctx:     ctx,
		session: s,
		keys:    defaultEditorKeys(),
		table:   t,
	}
	m.refresh()
	return m
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == editorForm {
		return m.updateForm(msg)
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		return m.updateBrowse(k)
	}
	return m, nil
}

func (m editorModel) updateBrowse(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(k, m.keys.Quit) {
		m.confirmQuit = false
	}

	switch {
	case key.Matches(k, m.keys.ForceQuit):
		return m, tea.Quit

	case key.Matches(k, m.keys.Quit):
		if m.session.Dirty() && !m.confirmQuit {
			m.confirmQuit = true
			m.setStatus("Unsaved changes. Press q again to discard them, or s to save.", true)
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(k, m.keys.Add):
		index, err := m.session.AddItem()
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.refresh()
		m.table.SetCursor(index)
		return m.openForm(index, fmt.Sprintf("New row %d", index+1))

	case key.Matches(k, m.keys.Edit):
		if m.session.Len() == 0 {
			m.setStatus("Nothing to edit. Press a to add a row.", false)
			return m, nil
		}
		index := m.table.Cursor()
		return m.openForm(index, fmt.Sprintf("Row %d", index+1))

	case key.Matches(k, m.keys.Delete):
		if m.session.Len() == 0 {
			return m, nil
		}
		index := m.table.Cursor()
		if err := m.session.RemoveItem(index); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.refresh()
		m.setStatus(fmt.Sprintf("Removed row %d. Press s to save.", index+1), false)
		return m, nil

	case key.Matches(k, m.keys.Save):
		res, err := m.session.Save(m.ctx)
		if err != nil {
			m.setStatus("Save failed: "+err.Error(), true)
			return m, nil
		}
		m.lastSave = &res
		m.refresh()
		msg := fmt.Sprintf("Saved %d item(s).", res.Written)
		if res.Skipped > 0 {
			msg += fmt.Sprintf(" Skipped %d blank row(s).", res.Skipped)
		}
		m.setStatus(msg, false)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(k)
	return m, cmd
}

func (m editorModel) openForm(index int, title string) (tea.Model, tea.Cmd) {
	li, err := m.session.Item(index)
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.formIndex = index
	m.formValues = newItemFormValues(li)
	m.form = itemForm(title, m.formValues)
	m.mode = editorForm
	m.status = ""
	return m, m.form.Init()
}

func (m editorModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.ForceQuit):
			return m, tea.Quit
		case key.Matches(k, m.keys.Cancel):
			m.closeForm()
			m.setStatus("Edit cancelled.", false)
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitForm()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		m.setStatus("Edit cancelled.", false)
		return m, nil
	}
	return m, cmd
}

// submitForm applies every form value to the session item. Values the
// session rejects are reported and leave their field unchanged.
func (m *editorModel) submitForm() {
	var problems []string
	for _, f := range domain.EditableFields {
		v, ok := m.formValues[f]
		if !ok || v == nil {
			continue
		}
		if err := m.session.UpdateItem(m.formIndex, f, *v); err != nil {
			problems = append(problems, err.Error())
		}
	}
	index := m.formIndex
	m.closeForm()
	m.refresh()
	if len(problems) > 0 {
		m.setStatus(strings.Join(problems, "; "), true)
		return
	}
	m.setStatus(fmt.Sprintf("Updated row %d. Press s to save.", index+1), false)
}

func (m *editorModel) closeForm() {
	m.mode = editorBrowse
	m.form = nil
	m.formValues = nil
}

func (m *editorModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// refresh rebuilds the table rows from the session buffer and keeps the
// cursor in range.
func (m *editorModel) refresh() {
	items := m.session.Items()
	rows := make([]table.Row, 0, len(items))
	for i, li := range items {
		rows = append(rows, table.Row{
			fmt.Sprint(i + 1),
			li.ServiceLine,
			li.WBSTask,
			li.WBSSubtask,
			formatter.Quantity(li.Qty),
			li.UnitOfMeasure,
			string(li.ContractVsCO),
			string(li.FPAType),
			string(li.FPASubtype),
			formatter.Money(li.BudgetedRevenue),
			formatter.Hours(li.BudgetedHours),
			formatter.Money(li.BudgetedCost),
		})
	}
	m.table.SetRows(rows)
	switch {
	case len(rows) == 0:
		m.table.SetCursor(0)
	case m.table.Cursor() >= len(rows):
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m editorModel) View() string {
	var b strings.Builder
	title := "WBS"
	if job := m.session.Job(); job != nil {
		title = job.Label()
	}
	b.WriteString(formatter.Header(title) + "\n\n")

	if m.mode == editorForm && m.form != nil {
		b.WriteString(m.form.View())
		b.WriteString("\n" + formatter.Dim("esc cancel") + "\n")
		return b.String()
	}

	if m.session.Len() == 0 {
		b.WriteString(formatter.Dim("No WBS line items. Press a to add one.") + "\n")
	} else {
		b.WriteString(m.table.View() + "\n")
	}

	totals := aggregate.SumTotals(m.session.Items())
	line := fmt.Sprintf("%d item(s)  Revenue %s  Hours %s  Cost %s",
		m.session.Len(), formatter.Money(totals.Revenue), formatter.Hours(totals.Hours), formatter.Money(totals.Cost))
	if m.session.Dirty() {
		line += "  " + formatter.StyleYellow.Render("● unsaved")
	}
	b.WriteString("\n" + line + "\n")

	if m.status != "" {
		if m.statusErr {
			b.WriteString(formatter.StyleRed.Render(m.status) + "\n")
		} else {
			b.WriteString(formatter.StyleGreen.Render(m.status) + "\n")
		}
	}

	help := []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Save, m.keys.Quit}
	hints := make([]string, 0, len(help))
	for _, h := range help {
		hints = append(hints, h.Help().Key+" "+h.Help().Desc)
	}
	b.WriteString(formatter.Dim(strings.Join(hints, "  ")) + "\n")
	return b.String()
}
