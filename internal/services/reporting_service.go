package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"tasku/internal/config"
	"tasku/internal/datefmt"
	"tasku/internal/domain"

	"golang.org/x/text/language"
)

const (
	// ManyPendingThreshold is the pending count above which planning hints are given.
	ManyPendingThreshold = 5

	reportRule = "============================="
)

type reportLabels struct {
	title     string
	semester  string
	total     string
	completed string
	pending   string
	overdue   string
	rate      string
}

type reportingMessages struct {
	report       reportLabels
	noPending    string
	tooMany      string
	studyBlocks  string
	highPriority string
	upcomingOne  string
	upcomingMany string
}

var spanishMessages = reportingMessages{
	report: reportLabels{
		title:     "REPORTE ACADÉMICO",
		semester:  "Semestre",
		total:     "Tareas Totales",
		completed: "Completadas",
		pending:   "Pendientes",
		overdue:   "Atrasadas",
		rate:      "Tasa de Cumplimiento",
	},
	noPending:    "¡Excelente! No tienes tareas pendientes. Considera revisar material de estudio.",
	tooMany:      "Tienes muchas tareas. Considera organizarlas por prioridad.",
	studyBlocks:  "Planifica bloques de estudio de 45-60 minutos con descansos.",
	highPriority: "Enfócate primero en las tareas de alta prioridad.",
	upcomingOne:  "Tienes 1 tarea que vence en las próximas 24 horas.",
	upcomingMany: "Tienes %d tareas que vencen en las próximas 24 horas.",
}

var englishMessages = reportingMessages{
	report: reportLabels{
		title:     "ACADEMIC REPORT",
		semester:  "Semester",
		total:     "Total Tasks",
		completed: "Completed",
		pending:   "Pending",
		overdue:   "Overdue",
		rate:      "Completion Rate",
	},
	noPending:    "Excellent! You have no pending tasks. Consider reviewing study material.",
	tooMany:      "You have many tasks. Consider organizing them by priority.",
	studyBlocks:  "Plan study blocks of 45-60 minutes with breaks.",
	highPriority: "Focus on high priority tasks first.",
	upcomingOne:  "You have 1 task due in the next 24 hours.",
	upcomingMany: "You have %d tasks due in the next 24 hours.",
}

func messagesFor(tag language.Tag) reportingMessages {
	if tag == language.English {
		return englishMessages
	}
	return spanishMessages
}

// String renders the plain-text academic report.
func (r *AcademicReport) String() string {
	labels := r.labels
	if labels.title == "" {
		labels = spanishMessages.report
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== %s %s ===\n", labels.title, r.Institution)
	fmt.Fprintf(&b, "%s: %s\n", labels.semester, r.Semester)
	fmt.Fprintf(&b, "%s: %d\n", labels.total, r.Stats.Total)
	fmt.Fprintf(&b, "%s: %d\n", labels.completed, r.Stats.Completed)
	fmt.Fprintf(&b, "%s: %d\n", labels.pending, r.Stats.Pending)
	fmt.Fprintf(&b, "%s: %d\n", labels.overdue, r.Stats.Overdue)
	fmt.Fprintf(&b, "%s: %d%%\n", labels.rate, r.Stats.CompletionRatePercent)
	b.WriteString(reportRule)
	return b.String()
}

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	taskService   TaskService
	searchService SearchService
	timeService   TimeService
	presenter     *datefmt.Presenter
	catalog       *config.Catalog
	messages      reportingMessages
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(taskService TaskService, searchService SearchService, timeService TimeService, presenter *datefmt.Presenter, catalog *config.Catalog) ReportingService {
	if catalog == nil {
		catalog = config.DefaultCatalog()
	}
	return &reportingServiceImpl{
		taskService:   taskService,
		searchService: searchService,
		timeService:   timeService,
		presenter:     presenter,
		catalog:       catalog,
		messages:      messagesFor(presenter.Language()),
	}
}

func (r *reportingServiceImpl) allTasks(ctx context.Context) ([]domain.Task, error) {
	seq, err := r.taskService.ListTasks(ctx, domain.TaskFilter{})
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}

// Stats computes the dashboard counters. "Due today" uses the configured timezone.
func (r *reportingServiceImpl) Stats(ctx context.Context) (*domain.Stats, error) {
	tasks, err := r.allTasks(ctx)
	if err != nil {
		return nil, err
	}
	stats := domain.ComputeStats(tasks, r.timeService.Now(), r.timeService.Location())
	return &stats, nil
}

// Upcoming returns pending tasks due within the next 24 hours and the
// reminder to show for them. The message is empty when there are none.
func (r *reportingServiceImpl) Upcoming(ctx context.Context) (*UpcomingTasks, error) {
	tasks, err := r.searchService.FindUpcoming(ctx)
	if err != nil {
		return nil, err
	}

	upcoming := &UpcomingTasks{Tasks: tasks}
	switch len(tasks) {
	case 0:
	case 1:
		upcoming.Message = r.messages.upcomingOne
	default:
		upcoming.Message = fmt.Sprintf(r.messages.upcomingMany, len(tasks))
	}
	return upcoming, nil
}

// Report builds the academic report for the current semester
func (r *reportingServiceImpl) Report(ctx context.Context) (*AcademicReport, error) {
	stats, err := r.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &AcademicReport{
		Institution: r.catalog.Institution,
		Semester:    r.presenter.Semester(r.timeService.Now()),
		Stats:       *stats,
		labels:      r.messages.report,
	}, nil
}

// Suggestions returns study hints derived from the pending tasks
func (r *reportingServiceImpl) Suggestions(ctx context.Context) ([]string, error) {
	tasks, err := r.allTasks(ctx)
	if err != nil {
		return nil, err
	}

	var pending, highPriority int
	for _, task := range tasks {
		if !task.IsPending() {
			continue
		}
		pending++
		if task.Priority == domain.PriorityHigh {
			highPriority++
		}
	}

	suggestions := []string{}
	switch {
	case pending == 0:
		suggestions = append(suggestions, r.messages.noPending)
	case pending > ManyPendingThreshold:
		suggestions = append(suggestions, r.messages.tooMany, r.messages.studyBlocks)
	}
	if highPriority > 0 {
		suggestions = append(suggestions, r.messages.highPriority)
	}
	return suggestions, nil
}

// WelcomeMessage picks one of the catalog's welcome messages at random
func (r *reportingServiceImpl) WelcomeMessage() string {
	messages := r.catalog.WelcomeMessages
	if len(messages) == 0 {
		return ""
	}
	return messages[rand.IntN(len(messages))]
}
