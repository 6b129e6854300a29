package cli

import (
	"context"
	"strings"
	"testing"

	"tasku/internal/api"
	"tasku/internal/domain"
	"tasku/internal/errors"
	"tasku/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a task from flags", func(t *testing.T) {
		app, out := loggedInTestApp(t)
		cmd := NewAddCommand(app)
		cmd.subject = "bd"
		cmd.due = "2024-04-12T18:00"
		cmd.priority = "alta"

		err := cmd.Execute(ctx, []string{"Modelo", "entidad", "relación"})
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "Created task task_"), lines[0])
		assert.True(t, strings.HasSuffix(lines[0], ": Modelo entidad relación"), lines[0])
		assert.Equal(t, "  Base de Datos · due Friday, 06:00 PM · high", lines[1])

		tasks, err := app.api.ListTasks(ctx, api.ListOptions{})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, domain.PriorityHigh, tasks[0].Priority)
	})

	t.Run("accepts an offset due date", func(t *testing.T) {
		app, out := loggedInTestApp(t)
		cmd := NewAddCommand(app)
		cmd.subject = "redes"
		cmd.due = "20h"
		cmd.priority = "media"

		require.NoError(t, cmd.Execute(ctx, []string{"Informe de redes"}))

		assert.Contains(t, out.String(), "Redes de Computadores · due Tomorrow, 05:00 AM · medium")
	})

	t.Run("past due date needs confirmation", func(t *testing.T) {
		app, out := loggedInTestApp(t)
		cmd := NewAddCommand(app)
		cmd.subject = "movil"
		cmd.due = "2024-04-09T10:00"
		cmd.priority = "high"

		err := cmd.Execute(ctx, []string{"Entrega atrasada"})
		require.Error(t, err)
		assert.True(t, validation.IsConfirmationRequired(err))
		assert.Contains(t, err.Error(), "--confirm-past")
		assert.Empty(t, out.String())

		cmd.confirmPast = true
		require.NoError(t, cmd.Execute(ctx, []string{"Entrega atrasada"}))
		assert.Contains(t, out.String(), "Note: this task is already overdue.")
	})

	t.Run("reports the first failing rule", func(t *testing.T) {
		app, _ := loggedInTestApp(t)
		cmd := NewAddCommand(app)
		cmd.due = "2024-04-12T18:00"
		cmd.priority = "low"

		err := cmd.Execute(ctx, []string{"Informe"})

		assert.Equal(t, validation.ReasonSubjectRequired, validation.ReasonOf(err))
	})

	t.Run("rejects an unreadable due date", func(t *testing.T) {
		app, _ := loggedInTestApp(t)
		cmd := NewAddCommand(app)
		cmd.subject = "bd"
		cmd.due = "next friday"
		cmd.priority = "low"

		err := cmd.Execute(ctx, []string{"Informe"})

		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})

	t.Run("requires a session", func(t *testing.T) {
		app, _ := setupTestApp(t)
		cmd := NewAddCommand(app)
		cmd.subject = "bd"
		cmd.due = "2024-04-12T18:00"
		cmd.priority = "low"

		err := cmd.Execute(ctx, []string{"Informe"})

		assert.ErrorIs(t, err, errors.ErrNotAuthenticated)
		assert.Contains(t, err.Error(), "tasku login")
	})
}
