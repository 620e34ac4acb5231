// ABOUTME: Marker form modal over the map
// ABOUTME: Edits the draft held by the form controller and commits on save

package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/harper/geomark/internal/form"
	"github.com/harper/geomark/internal/media"
	"github.com/harper/geomark/internal/models"
	"github.com/harper/geomark/internal/tui/common"
)

// FormDoneMsg is sent when the form closes.
type FormDoneMsg struct {
	Saved   *models.Marker
	Deleted bool
}

type field int

const (
	fieldTitle field = iota
	fieldObservation
	fieldImage
	fieldDate
)

var fieldLabels = map[field]string{
	fieldTitle:       "Title",
	fieldObservation: "Observation",
	fieldImage:       "Photo",
	fieldDate:        "Date",
}

// FormModel is the modal editing a marker draft.
type FormModel struct {
	ctx    context.Context
	ctrl   *form.Controller
	keys   common.FormKeyMap
	fields []field
	inputs map[field]*textinput.Model
	focus  int

	shared *form.Message
	status string
	err    error
}

// NewFormModel builds the modal for an open controller.
func NewFormModel(ctx context.Context, ctrl *form.Controller) FormModel {
	draft := ctrl.Draft()

	fields := []field{fieldTitle, fieldObservation, fieldImage}
	if ctrl.Features().Date {
		fields = append(fields, fieldDate)
	}

	values := map[field]string{
		fieldTitle:       draft.Title,
		fieldObservation: draft.Observation,
		fieldImage:       draft.ImageURL,
		fieldDate:        draft.Date,
	}
	placeholders := map[field]string{
		fieldTitle:       "Point name",
		fieldObservation: "What did you see?",
		fieldImage:       "/path/to/photo.jpg",
		fieldDate:        "YYYY-MM-DD",
	}

	inputs := make(map[field]*textinput.Model, len(fields))
	for _, f := range fields {
		in := textinput.New()
		in.Placeholder = placeholders[f]
		in.CharLimit = 1024
		in.Width = 40
		in.SetValue(values[f])
		inputs[f] = &in
	}
	inputs[fieldTitle].CharLimit = 255
	inputs[fieldTitle].Focus()

	return FormModel{
		ctx:    ctx,
		ctrl:   ctrl,
		keys:   common.DefaultFormKeyMap(),
		fields: fields,
		inputs: inputs,
	}
}

// Init starts the cursor blinking.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Value returns the current text of a field, for tests and callers.
func (m FormModel) Value(name string) string {
	for f, label := range fieldLabels {
		if strings.EqualFold(label, name) {
			if in, ok := m.inputs[f]; ok {
				return in.Value()
			}
		}
	}
	return ""
}

// Focused returns the label of the focused field.
func (m FormModel) Focused() string {
	return fieldLabels[m.fields[m.focus]]
}

// Update handles messages for the form.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Tab):
			m.setFocus(m.focus + 1)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.setFocus(m.focus - 1)
			return m, nil
		case key.Matches(msg, m.keys.Save):
			return m.save()
		case key.Matches(msg, m.keys.Delete):
			return m.delete()
		case key.Matches(msg, m.keys.Pick):
			m.pick()
			return m, nil
		case key.Matches(msg, m.keys.Share):
			m.share()
			return m, nil
		case key.Matches(msg, m.keys.Cancel):
			m.ctrl.Cancel()
			return m, done(FormDoneMsg{})
		case key.Matches(msg, m.keys.Quit):
			// The draft is discarded, never saved.
			m.ctrl.Cancel()
			return m, tea.Quit
		}
	}

	in := m.inputs[m.fields[m.focus]]
	updated, cmd := in.Update(msg)
	*in = updated
	return m, cmd
}

func done(msg FormDoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m *FormModel) setFocus(i int) {
	n := len(m.fields)
	m.inputs[m.fields[m.focus]].Blur()
	m.focus = ((i % n) + n) % n
	m.inputs[m.fields[m.focus]].Focus()
}

// sync pushes the inputs into the controller's draft.
func (m *FormModel) sync() error {
	if err := m.ctrl.SetTitle(m.inputs[fieldTitle].Value()); err != nil {
		return err
	}
	if err := m.ctrl.SetObservation(m.inputs[fieldObservation].Value()); err != nil {
		return err
	}

	image := strings.TrimSpace(m.inputs[fieldImage].Value())
	if image != m.ctrl.Draft().ImageURL {
		if image == "" {
			if err := m.ctrl.SetImageURL(""); err != nil {
				return err
			}
		} else if err := m.ctrl.PickImage(m.ctx, media.NewFilePicker(image)); err != nil {
			return fmt.Errorf("photo: %w", err)
		}
		m.inputs[fieldImage].SetValue(m.ctrl.Draft().ImageURL)
	}

	if in, ok := m.inputs[fieldDate]; ok {
		if err := m.ctrl.SetDate(in.Value()); err != nil {
			return err
		}
	}
	return nil
}

func (m FormModel) save() (FormModel, tea.Cmd) {
	if err := m.sync(); err != nil {
		m.err = err
		return m, nil
	}
	saved := m.ctrl.Save(m.ctx)
	return m, done(FormDoneMsg{Saved: saved})
}

func (m FormModel) delete() (FormModel, tea.Cmd) {
	if err := m.ctrl.Delete(m.ctx); err != nil {
		m.err = err
		return m, nil
	}
	return m, done(FormDoneMsg{Deleted: true})
}

func (m *FormModel) pick() {
	path := strings.TrimSpace(m.inputs[fieldImage].Value())
	if err := m.ctrl.PickImage(m.ctx, media.NewFilePicker(path)); err != nil {
		m.err = fmt.Errorf("photo: %w", err)
		return
	}
	m.inputs[fieldImage].SetValue(m.ctrl.Draft().ImageURL)
	m.err = nil
	if path != "" {
		m.status = "Photo attached"
	}
}

func (m *FormModel) share() {
	if err := m.sync(); err != nil {
		m.err = err
		return
	}
	msg, err := m.ctrl.Share()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.shared = &msg
}

// View renders the form.
func (m FormModel) View() string {
	var sb strings.Builder

	heading := "New marker"
	if m.ctrl.Mode() == form.ModeEdit {
		heading = "Edit marker"
	}
	sb.WriteString(common.TitleStyle.Render(heading))
	sb.WriteString("\n")
	if loc, ok := m.ctrl.Location(); ok {
		sb.WriteString(common.MutedTextStyle.Render(loc.String()))
		sb.WriteString("\n\n")
	}

	for i, f := range m.fields {
		label := common.LabelStyle.Render(fieldLabels[f])
		if i == m.focus {
			label = common.FocusedLabelStyle.Render(fieldLabels[f])
		}
		sb.WriteString(label)
		sb.WriteString(m.inputs[f].View())
		sb.WriteString("\n")
	}

	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(common.ErrorTextStyle.Render(m.err.Error()))
		sb.WriteString("\n")
	} else if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(common.SuccessTextStyle.Render(m.status))
		sb.WriteString("\n")
	}

	if m.shared != nil {
		sb.WriteString("\n")
		sb.WriteString(common.ModalStyle.Render(m.shared.Body))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	help := []string{
		common.FormatHelp("ctrl+s", "save"),
		common.FormatHelp("ctrl+p", "photo"),
	}
	if m.ctrl.Mode() == form.ModeEdit {
		help = append(help, common.FormatHelp("ctrl+d", "delete"))
	}
	if m.ctrl.Features().Share {
		help = append(help, common.FormatHelp("ctrl+x", "share"))
	}
	help = append(help, common.FormatHelp("esc", "cancel"))
	sb.WriteString(strings.Join(help, "  "))

	return common.ModalStyle.Render(sb.String())
}
