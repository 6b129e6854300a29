package services

import (
	"context"
	"slices"
	"strings"

	"tasku/internal/domain"
	"tasku/internal/repository/sqlite"
)

var priorityRank = map[domain.Priority]int{
	domain.PriorityHigh:   0,
	domain.PriorityMedium: 1,
	domain.PriorityLow:    2,
}

// searchServiceImpl implements the SearchService interface
type searchServiceImpl struct {
	repo        sqlite.Repository
	timeService TimeService
	mapper      *domain.Mapper
}

// NewSearchService creates a new SearchService instance
func NewSearchService(repo sqlite.Repository, timeService TimeService) SearchService {
	return &searchServiceImpl{
		repo:        repo,
		timeService: timeService,
		mapper:      domain.NewMapper(),
	}
}

// SearchTasks finds tasks by status and due date window, in insertion order
func (s *searchServiceImpl) SearchTasks(ctx context.Context, opts domain.SearchOptions) ([]domain.Task, error) {
	dbTasks, err := s.repo.SearchTasks(ctx, s.mapper.SearchOptions.ToDatabase(opts))
	if err != nil {
		return nil, err
	}
	return s.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

// FindUpcoming returns pending tasks due after now and within the upcoming window
func (s *searchServiceImpl) FindUpcoming(ctx context.Context) ([]domain.Task, error) {
	window := s.timeService.GetUpcomingRange()
	pending := domain.StatusPending

	return s.SearchTasks(ctx, domain.SearchOptions{
		Status:    &pending,
		DueAfter:  &window.Start,
		DueBefore: &window.End,
	})
}

// SortTasks returns a sorted copy of tasks. Ties keep their input order.
func (s *searchServiceImpl) SortTasks(tasks []domain.Task, order SortOrder) []domain.Task {
	sorted := slices.Clone(tasks)

	switch order {
	case SortByOldestFirst:
		slices.SortStableFunc(sorted, func(a, b domain.Task) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case SortByDueDate:
		slices.SortStableFunc(sorted, func(a, b domain.Task) int {
			return a.DueAt.Compare(b.DueAt)
		})
	case SortByPriority:
		slices.SortStableFunc(sorted, func(a, b domain.Task) int {
			return rankOf(a.Priority) - rankOf(b.Priority)
		})
	case SortByTitle:
		slices.SortStableFunc(sorted, func(a, b domain.Task) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		})
	default: // SortByRecentFirst
		slices.Reverse(sorted)
		slices.SortStableFunc(sorted, func(a, b domain.Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}

	return sorted
}

func rankOf(p domain.Priority) int {
	if rank, ok := priorityRank[p]; ok {
		return rank
	}
	return len(priorityRank)
}
