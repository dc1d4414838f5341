package components

import (
	"testing"

	"github.com/Veraticus/credit-risk-console/internal/model"
	"github.com/Veraticus/credit-risk-console/internal/tui/themes"
	"github.com/Veraticus/credit-risk-console/internal/tui/tuitest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedForm(t *testing.T, m FormModel, msgs ...tea.Msg) (FormModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func moveTo(t *testing.T, m FormModel, row int) FormModel {
	t.Helper()
	for m.Cursor() < row {
		m, _ = m.Update(tuitest.Key(tea.KeyDown))
	}
	require.Equal(t, row, m.Cursor())
	return m
}

func TestNewFormModel_StartsFromDefaultProfile(t *testing.T) {
	m := NewFormModel(themes.Default)

	p, err := m.Profile()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultProfile(), p)
	assert.Equal(t, 13, m.FieldCount())
	assert.Equal(t, 0, m.Cursor())
}

func TestFormModel_NumericInput(t *testing.T) {
	tests := []struct {
		name  string
		keys  []tea.Msg
		row   int
		check func(t *testing.T, p model.ClientProfile)
	}{
		{
			name: "replace age",
			row:  0,
			keys: append([]tea.Msg{tuitest.Key(tea.KeyBackspace), tuitest.Key(tea.KeyBackspace)}, tuitest.Type("45")...),
			check: func(t *testing.T, p model.ClientProfile) {
				assert.Equal(t, 45, p.Age)
			},
		},
		{
			name: "letters are ignored",
			row:  0,
			keys: tuitest.Type("ab"),
			check: func(t *testing.T, p model.ClientProfile) {
				assert.Equal(t, 30, p.Age)
			},
		},
		{
			name: "decimal point accepted in float fields",
			row:  8,
			keys: append([]tea.Msg{
				tuitest.Key(tea.KeyBackspace),
				tuitest.Key(tea.KeyBackspace),
				tuitest.Key(tea.KeyBackspace),
				tuitest.Key(tea.KeyBackspace),
			}, tuitest.Type("7.25")...),
			check: func(t *testing.T, p model.ClientProfile) {
				assert.InDelta(t, 7.25, p.InterestRate, 0.0001)
			},
		},
		{
			name: "decimal point rejected in integer fields",
			row:  11,
			keys: tuitest.Type("."),
			check: func(t *testing.T, p model.ClientProfile) {
				assert.Equal(t, 680, p.CreditScore)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := moveTo(t, NewFormModel(themes.Default), tt.row)
			m, _ = feedForm(t, m, tt.keys...)

			p, err := m.Profile()
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestFormModel_ChoiceCycling(t *testing.T) {
	m := moveTo(t, NewFormModel(themes.Default), 1)

	m, _ = m.Update(tuitest.Key(tea.KeyRight))
	p, err := m.Profile()
	require.NoError(t, err)
	assert.Equal(t, "Female", p.Gender)

	m, _ = m.Update(tuitest.Key(tea.KeyRight))
	p, _ = m.Profile()
	assert.Equal(t, "Male", p.Gender, "cycling wraps around")

	m, _ = m.Update(tuitest.Key(tea.KeyLeft))
	p, _ = m.Profile()
	assert.Equal(t, "Female", p.Gender)
}

func TestFormModel_Navigation(t *testing.T) {
	m := NewFormModel(themes.Default)

	m, _ = m.Update(tuitest.Key(tea.KeyUp))
	assert.Equal(t, 0, m.Cursor(), "cursor stops at the first row")

	m, _ = m.Update(tuitest.Key(tea.KeyEnter))
	assert.Equal(t, 1, m.Cursor(), "enter advances before the last row")

	m = moveTo(t, m, m.FieldCount()-1)
	m, _ = m.Update(tuitest.Key(tea.KeyDown))
	assert.Equal(t, m.FieldCount()-1, m.Cursor(), "cursor stops at the last row")
}

func TestFormModel_Submit(t *testing.T) {
	t.Run("ctrl+s emits the parsed profile", func(t *testing.T) {
		m := NewFormModel(themes.Default)
		_, cmd := m.Update(tuitest.KeyCtrl('s'))
		require.NotNil(t, cmd)

		msg, ok := cmd().(SubmitRequestMsg)
		require.True(t, ok)
		assert.Equal(t, model.DefaultProfile(), msg.Profile)
	})

	t.Run("enter on the last row submits", func(t *testing.T) {
		m := NewFormModel(themes.Default)
		m = moveTo(t, m, m.FieldCount()-1)
		_, cmd := m.Update(tuitest.Key(tea.KeyEnter))
		require.NotNil(t, cmd)

		_, ok := cmd().(SubmitRequestMsg)
		assert.True(t, ok)
	})

	t.Run("out of range values are reported", func(t *testing.T) {
		m := NewFormModel(themes.Default)
		m, _ = feedForm(t, m, tuitest.Key(tea.KeyBackspace))
		_, cmd := m.Update(tuitest.KeyCtrl('s'))
		require.NotNil(t, cmd)

		msg, ok := cmd().(InvalidProfileMsg)
		require.True(t, ok)
		assert.ErrorIs(t, msg.Err, model.ErrInvalidProfile)
		assert.Contains(t, msg.Err.Error(), "person_age")
	})

	t.Run("empty numbers are reported", func(t *testing.T) {
		m := NewFormModel(themes.Default)
		m, _ = feedForm(t, m, tuitest.Key(tea.KeyBackspace), tuitest.Key(tea.KeyBackspace))
		_, cmd := m.Update(tuitest.KeyCtrl('s'))

		msg, ok := cmd().(InvalidProfileMsg)
		require.True(t, ok)
		assert.Contains(t, msg.Err.Error(), "Age")
		assert.Contains(t, msg.Err.Error(), "not a whole number")
	})
}

func TestFormModel_SetProfileAndReset(t *testing.T) {
	m := NewFormModel(themes.Default)

	want := model.DefaultProfile()
	want.Age = 52
	want.Gender = "Female"
	want.LoanIntent = "MEDICAL"
	want.LoanPercentIncome = 0.45
	want.PriorDefaults = "Yes"
	m.SetProfile(want)

	got, err := m.Profile()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	m = moveTo(t, m, 4)
	m.Reset()
	assert.Equal(t, 0, m.Cursor())
	got, err = m.Profile()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultProfile(), got)
}

func TestFormModel_View(t *testing.T) {
	m := moveTo(t, NewFormModel(themes.Default), 1)
	view := tuitest.StripANSI(m.View())

	assert.True(t, tuitest.ContainsInOrder(view, "Client Profile", "Age", "Gender", "Credit score", "Prior defaults"))
	assert.Contains(t, view, "‹ Male ›", "focused choice row is not shown as focused")
}
