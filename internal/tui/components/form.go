package components

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Veraticus/credit-risk-console/internal/model"
	"github.com/Veraticus/credit-risk-console/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type fieldKind int

const (
	fieldInt fieldKind = iota
	fieldFloat
	fieldChoice
)

// fieldSpec binds one form row to a ClientProfile field.
type fieldSpec struct {
	intRef   func(*model.ClientProfile) *int
	floatRef func(*model.ClientProfile) *float64
	strRef   func(*model.ClientProfile) *string
	label    string
	options  []string
	kind     fieldKind
}

func intField(label string, ref func(*model.ClientProfile) *int) fieldSpec {
	return fieldSpec{label: label, kind: fieldInt, intRef: ref}
}

func floatField(label string, ref func(*model.ClientProfile) *float64) fieldSpec {
	return fieldSpec{label: label, kind: fieldFloat, floatRef: ref}
}

func choiceField(label string, options []string, ref func(*model.ClientProfile) *string) fieldSpec {
	return fieldSpec{label: label, kind: fieldChoice, options: options, strRef: ref}
}

var formFields = []fieldSpec{
	intField("Age", func(p *model.ClientProfile) *int { return &p.Age }),
	choiceField("Gender", model.Genders, func(p *model.ClientProfile) *string { return &p.Gender }),
	choiceField("Education", model.EducationLevels, func(p *model.ClientProfile) *string { return &p.Education }),
	floatField("Annual income", func(p *model.ClientProfile) *float64 { return &p.Income }),
	intField("Employment (years)", func(p *model.ClientProfile) *int { return &p.EmploymentYears }),
	choiceField("Home ownership", model.HomeOwnerships, func(p *model.ClientProfile) *string { return &p.HomeOwnership }),
	floatField("Loan amount", func(p *model.ClientProfile) *float64 { return &p.LoanAmount }),
	choiceField("Loan intent", model.LoanIntents, func(p *model.ClientProfile) *string { return &p.LoanIntent }),
	floatField("Interest rate (%)", func(p *model.ClientProfile) *float64 { return &p.InterestRate }),
	floatField("Loan / income", func(p *model.ClientProfile) *float64 { return &p.LoanPercentIncome }),
	intField("Credit history (years)", func(p *model.ClientProfile) *int { return &p.CreditHistoryYears }),
	intField("Credit score", func(p *model.ClientProfile) *int { return &p.CreditScore }),
	choiceField("Prior defaults", model.YesNo, func(p *model.ClientProfile) *string { return &p.PriorDefaults }),
}

// FormModel collects a client profile. Numeric fields are text inputs that
// accept digits only; categorical fields cycle through their options.
type FormModel struct {
	theme   themes.Theme
	inputs  []textinput.Model
	choices []int
	cursor  int
	width   int
}

// NewFormModel creates a form filled with the default profile.
func NewFormModel(theme themes.Theme) FormModel {
	m := FormModel{
		theme:   theme,
		inputs:  make([]textinput.Model, len(formFields)),
		choices: make([]int, len(formFields)),
	}
	for i, f := range formFields {
		if f.kind == fieldChoice {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 12
		ti.Width = 14
		m.inputs[i] = ti
	}
	m.SetProfile(model.DefaultProfile())
	m.focus(0)
	return m
}

// FieldCount returns the number of rows in the form.
func (m FormModel) FieldCount() int {
	return len(formFields)
}

// Cursor returns the index of the focused row.
func (m FormModel) Cursor() int {
	return m.cursor
}

// SetProfile replaces every field value with p's.
func (m *FormModel) SetProfile(p model.ClientProfile) {
	for i, f := range formFields {
		switch f.kind {
		case fieldInt:
			m.inputs[i].SetValue(strconv.Itoa(*f.intRef(&p)))
		case fieldFloat:
			m.inputs[i].SetValue(strconv.FormatFloat(*f.floatRef(&p), 'f', -1, 64))
		case fieldChoice:
			m.choices[i] = max(0, slices.Index(f.options, *f.strRef(&p)))
			continue
		}
		m.inputs[i].CursorEnd()
	}
}

// Reset restores the default profile and focuses the first row.
func (m *FormModel) Reset() {
	m.SetProfile(model.DefaultProfile())
	m.focus(0)
}

// Profile parses the form. Unparseable numbers and out-of-range values are
// reported together.
func (m FormModel) Profile() (model.ClientProfile, error) {
	var p model.ClientProfile
	var errs []error

	for i, f := range formFields {
		raw := strings.TrimSpace(m.inputs[i].Value())
		switch f.kind {
		case fieldInt:
			n, err := strconv.Atoi(raw)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %q is not a whole number", f.label, raw))
				continue
			}
			*f.intRef(&p) = n
		case fieldFloat:
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %q is not a number", f.label, raw))
				continue
			}
			*f.floatRef(&p) = v
		case fieldChoice:
			*f.strRef(&p) = f.options[m.choices[i]]
		}
	}

	if len(errs) > 0 {
		return p, fmt.Errorf("%w: %w", model.ErrInvalidProfile, errors.Join(errs...))
	}
	return p, p.Validate()
}

// Update handles key input. Submitting emits SubmitRequestMsg or
// InvalidProfileMsg.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "down":
			m.focus(m.cursor + 1)
			return m, nil
		case "up", "shift+tab":
			m.focus(m.cursor - 1)
			return m, nil
		case "enter":
			if m.cursor == len(formFields)-1 {
				return m, m.submit()
			}
			m.focus(m.cursor + 1)
			return m, nil
		case "ctrl+s":
			return m, m.submit()
		}

		f := formFields[m.cursor]
		if f.kind == fieldChoice {
			switch msg.String() {
			case "right", " ", "l":
				m.choices[m.cursor] = (m.choices[m.cursor] + 1) % len(f.options)
			case "left", "h":
				m.choices[m.cursor] = (m.choices[m.cursor] - 1 + len(f.options)) % len(f.options)
			}
			return m, nil
		}

		if msg.Type == tea.KeyRunes && !acceptsRunes(f.kind, msg.Runes) {
			return m, nil
		}
		var cmd tea.Cmd
		m.inputs[m.cursor], cmd = m.inputs[m.cursor].Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the form.
func (m FormModel) View() string {
	rows := make([]string, 0, len(formFields)+1)
	rows = append(rows, m.theme.Title.Render("Client Profile"))

	for i, f := range formFields {
		marker := "  "
		label := m.theme.Label.Render(f.label)
		if i == m.cursor {
			marker = lipgloss.NewStyle().Foreground(m.theme.Primary).Render("▸ ")
			label = m.theme.Label.Foreground(m.theme.Primary).Render(f.label)
		}

		var value string
		if f.kind == fieldChoice {
			opt := f.options[m.choices[i]]
			if i == m.cursor {
				value = m.theme.Selected.Render("‹ " + opt + " ›")
			} else {
				value = m.theme.Normal.Render(opt)
			}
		} else {
			value = m.inputs[i].View()
		}
		rows = append(rows, marker+label+value)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m FormModel) submit() tea.Cmd {
	p, err := m.Profile()
	if err != nil {
		return func() tea.Msg { return InvalidProfileMsg{Err: err} }
	}
	return func() tea.Msg { return SubmitRequestMsg{Profile: p} }
}

func (m *FormModel) focus(i int) {
	i = max(0, min(len(formFields)-1, i))
	if formFields[m.cursor].kind != fieldChoice {
		m.inputs[m.cursor].Blur()
	}
	m.cursor = i
	if formFields[i].kind != fieldChoice {
		m.inputs[i].Focus()
		m.inputs[i].CursorEnd()
	}
}

func acceptsRunes(kind fieldKind, runes []rune) bool {
	for _, r := range runes {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && kind == fieldFloat:
		default:
			return false
		}
	}
	return true
}
