// Package analytics computes the dashboard metrics from a scoped slice of
// tasks. Scoping (who may see which tasks, optional assignee filter) is the
// caller's job; everything here is pure computation so the bucketing rules
// stay testable without a database.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
)

type GroupBy string

const (
	GroupByDay  GroupBy = "day"
	GroupByWeek GroupBy = "week"
)

// Range is an inclusive [Start, End] window. A nil bound is open.
type Range struct {
	Start *time.Time
	End   *time.Time
}

func (r Range) contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

type Overview struct {
	TotalTasks     int                         `json:"totalTasks"`
	ByStatus       map[domain.TaskStatus]int   `json:"byStatus"`
	ByPriority     map[domain.TaskPriority]int `json:"byPriority"`
	OverdueTasks   int                         `json:"overdueTasks"`
	CompletionRate float64                     `json:"completionRate"`
}

type TrendBucket struct {
	Date       string                      `json:"date"`
	Completed  int                         `json:"completed"`
	ByPriority map[domain.TaskPriority]int `json:"byPriority"`
}

type ProductivityBucket struct {
	Date           string  `json:"date"`
	Created        int     `json:"created"`
	Completed      int     `json:"completed"`
	Pending        int     `json:"pending"`
	InProgress     int     `json:"inProgress"`
	CompletionRate float64 `json:"completionRate"`
}

type TimeAnalysis struct {
	CompletedTasks int                              `json:"completedTasks"`
	AvgHours       float64                          `json:"avgHours"`
	MinHours       float64                          `json:"minHours"`
	MaxHours       float64                          `json:"maxHours"`
	AvgDays        float64                          `json:"avgDays"`
	ByPriority     map[domain.TaskPriority]*float64 `json:"byPriority"`
}

type BestDay struct {
	Date      string `json:"date"`
	DayOfWeek int    `json:"dayOfWeek"`
	Completed int    `json:"completed"`
}

const DefaultBestDaysLimit = 7

// bucketKey renders a time into its day or ISO-week bucket.
func bucketKey(t time.Time, groupBy GroupBy) string {
	if groupBy == GroupByWeek {
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	}
	return t.Format("2006-01-02")
}

// ComputeOverview summarizes the whole slice. The completion rate is
// zero-guarded: no tasks means 0, not a division by zero.
func ComputeOverview(tasks []domain.Task, now time.Time) Overview {
	out := Overview{
		ByStatus:   map[domain.TaskStatus]int{},
		ByPriority: map[domain.TaskPriority]int{},
	}
	for i := range tasks {
		t := &tasks[i]
		out.TotalTasks++
		out.ByStatus[t.Status]++
		out.ByPriority[t.Priority]++
		if t.Overdue(now) {
			out.OverdueTasks++
		}
	}
	if out.TotalTasks > 0 {
		out.CompletionRate = float64(out.ByStatus[domain.TaskStatusCompleted]) / float64(out.TotalTasks) * 100
	}
	return out
}

// CompletionTrends buckets completed tasks by completion date. Buckets with
// zero completions are absent, and the result is ordered ascending by key.
func CompletionTrends(tasks []domain.Task, r Range, groupBy GroupBy) []TrendBucket {
	buckets := map[string]*TrendBucket{}
	for i := range tasks {
		t := &tasks[i]
		if t.CompletedAt == nil || !r.contains(*t.CompletedAt) {
			continue
		}
		key := bucketKey(*t.CompletedAt, groupBy)
		b, ok := buckets[key]
		if !ok {
			b = &TrendBucket{Date: key, ByPriority: map[domain.TaskPriority]int{}}
			buckets[key] = b
		}
		b.Completed++
		b.ByPriority[t.Priority]++
	}
	out := make([]TrendBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Productivity buckets every task by creation date and reports, per bucket,
// how many of the tasks created then have reached each status.
func Productivity(tasks []domain.Task, r Range, groupBy GroupBy) []ProductivityBucket {
	buckets := map[string]*ProductivityBucket{}
	for i := range tasks {
		t := &tasks[i]
		if !r.contains(t.CreatedAt) {
			continue
		}
		key := bucketKey(t.CreatedAt, groupBy)
		b, ok := buckets[key]
		if !ok {
			b = &ProductivityBucket{Date: key}
			buckets[key] = b
		}
		b.Created++
		switch t.Status {
		case domain.TaskStatusCompleted:
			b.Completed++
		case domain.TaskStatusPending:
			b.Pending++
		case domain.TaskStatusInProgress:
			b.InProgress++
		}
	}
	out := make([]ProductivityBucket, 0, len(buckets))
	for _, b := range buckets {
		if b.Created > 0 {
			b.CompletionRate = float64(b.Completed) / float64(b.Created) * 100
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ComputeTimeAnalysis reports completion-duration statistics over completed
// tasks in range. Per-priority averages are nil when no completed task of
// that priority is in range.
func ComputeTimeAnalysis(tasks []domain.Task, r Range) TimeAnalysis {
	out := TimeAnalysis{
		ByPriority: map[domain.TaskPriority]*float64{
			domain.TaskPriorityHigh:   nil,
			domain.TaskPriorityMedium: nil,
			domain.TaskPriorityLow:    nil,
		},
	}
	var total float64
	sums := map[domain.TaskPriority]float64{}
	counts := map[domain.TaskPriority]int{}
	for i := range tasks {
		t := &tasks[i]
		if t.CompletedAt == nil || !r.contains(*t.CompletedAt) {
			continue
		}
		hours := t.CompletedAt.Sub(t.CreatedAt).Hours()
		if out.CompletedTasks == 0 || hours < out.MinHours {
			out.MinHours = hours
		}
		if hours > out.MaxHours {
			out.MaxHours = hours
		}
		total += hours
		sums[t.Priority] += hours
		counts[t.Priority]++
		out.CompletedTasks++
	}
	if out.CompletedTasks > 0 {
		out.AvgHours = total / float64(out.CompletedTasks)
		out.AvgDays = out.AvgHours / 24
	}
	for prio, n := range counts {
		avg := sums[prio] / float64(n)
		out.ByPriority[prio] = &avg
	}
	return out
}

// BestDays ranks calendar dates by completion count, descending. Tie order
// between equal counts is unspecified.
func BestDays(tasks []domain.Task, r Range, limit int) []BestDay {
	if limit <= 0 {
		limit = DefaultBestDaysLimit
	}
	counts := map[string]int{}
	days := map[string]time.Time{}
	for i := range tasks {
		t := &tasks[i]
		if t.CompletedAt == nil || !r.contains(*t.CompletedAt) {
			continue
		}
		key := t.CompletedAt.Format("2006-01-02")
		counts[key]++
		days[key] = *t.CompletedAt
	}
	out := make([]BestDay, 0, len(counts))
	for key, n := range counts {
		out = append(out, BestDay{
			Date: key,
			// 1=Sunday .. 7=Saturday.
			DayOfWeek: int(days[key].Weekday()) + 1,
			Completed: n,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Completed > out[j].Completed })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
