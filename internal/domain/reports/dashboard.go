package reports

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/querier"
)

const (
	DefaultActivityLimit = 10
	perSourceLimit       = 5
)

// FallbackRecorder counts dashboard queries that degraded to a default.
type FallbackRecorder interface {
	Fallback(query string)
}

type Service struct {
	db       querier.Querier
	recorder FallbackRecorder
	now      func() time.Time
}

func NewService(db querier.Querier, recorder FallbackRecorder) *Service {
	return &Service{db: db, recorder: recorder, now: time.Now}
}

// DashboardStats never fails. When the employees table cannot be read all
// counts are zero; otherwise each count that errors is reported as zero.
func (s *Service) DashboardStats(ctx context.Context) Stats {
	var anyID string
	if err := s.db.QueryRow(ctx, "SELECT id::text FROM employees LIMIT 1").Scan(&anyID); err != nil && !isNoRows(err) {
		slog.Warn("dashboard employees check failed", "err", err)
		s.fallback("employees_check")
		return Stats{}
	}

	today := s.today()
	return Stats{
		TotalEmployees:     s.count(ctx, "total_employees", "SELECT COUNT(1) FROM employees"),
		ActiveEmployees:    s.count(ctx, "active_employees", "SELECT COUNT(1) FROM employees WHERE status = 'active'"),
		Departments:        s.count(ctx, "departments", "SELECT COUNT(1) FROM departments"),
		PendingLeave:       s.count(ctx, "pending_leave", "SELECT COUNT(1) FROM leave_requests WHERE status = 'pending'"),
		OnLeaveToday:       s.count(ctx, "on_leave_today", "SELECT COUNT(DISTINCT employee_id) FROM leave_requests WHERE status = 'approved' AND $1 BETWEEN start_date AND end_date", today),
		OpenPostings:       s.count(ctx, "open_postings", "SELECT COUNT(1) FROM job_postings WHERE status = 'open'"),
		UpcomingTraining:   s.count(ctx, "upcoming_training", "SELECT COUNT(1) FROM training_programs WHERE status = 'scheduled' AND start_date >= $1", today),
		ActiveBenefitPlans: s.count(ctx, "active_benefit_plans", "SELECT COUNT(1) FROM benefit_plans WHERE status = 'active'"),
	}
}

func (s *Service) count(ctx context.Context, name, query string, args ...any) int {
	var n int
	if err := s.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		slog.Warn("dashboard count failed", "query", name, "err", err)
		s.fallback(name)
		return 0
	}
	return n
}

// RecentActivities merges the newest employees, leave requests and reviews,
// newest first. Labels are resolved per row and cached for the call.
func (s *Service) RecentActivities(ctx context.Context, limit int) []Activity {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	labels := newLabelCache(s.db)

	out := []Activity{}
	out = append(out, s.recentEmployees(ctx, labels)...)
	out = append(out, s.recentLeave(ctx, labels)...)
	out = append(out, s.recentReviews(ctx, labels)...)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].At.After(out[j].At)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// pending is an activity whose label still needs a lookup.
type pending struct {
	activity Activity
	resolve  func(ctx context.Context, id string) string
	ref      string
}

func (s *Service) recentEmployees(ctx context.Context, labels *labelCache) []Activity {
	return s.collect(ctx, "recent_employees", `
    SELECT id::text, first_name || ' ' || last_name, COALESCE(department_id::text, ''), created_at
    FROM employees
    ORDER BY created_at DESC
    LIMIT $1
  `, func(rows pgx.Rows) (pending, error) {
		var p pending
		var name string
		err := rows.Scan(&p.activity.EntityID, &name, &p.ref, &p.activity.At)
		p.activity.Kind = ActivityEmployee
		p.activity.Title = "New employee " + name
		p.resolve = labels.department
		return p, err
	})
}

func (s *Service) recentLeave(ctx context.Context, labels *labelCache) []Activity {
	return s.collect(ctx, "recent_leave", `
    SELECT id::text, employee_id::text, leave_type, status, created_at
    FROM leave_requests
    ORDER BY created_at DESC
    LIMIT $1
  `, func(rows pgx.Rows) (pending, error) {
		var p pending
		var leaveType, status string
		err := rows.Scan(&p.activity.EntityID, &p.ref, &leaveType, &status, &p.activity.At)
		p.activity.Kind = ActivityLeave
		p.activity.Title = fmt.Sprintf("%s leave request %s", leaveType, status)
		p.resolve = labels.employeeCode
		return p, err
	})
}

func (s *Service) recentReviews(ctx context.Context, labels *labelCache) []Activity {
	return s.collect(ctx, "recent_reviews", `
    SELECT id::text, employee_id::text, review_period, created_at
    FROM performance_reviews
    ORDER BY created_at DESC
    LIMIT $1
  `, func(rows pgx.Rows) (pending, error) {
		var p pending
		var period string
		err := rows.Scan(&p.activity.EntityID, &p.ref, &period, &p.activity.At)
		p.activity.Kind = ActivityReview
		p.activity.Title = "Performance review " + period
		p.resolve = labels.employeeCode
		return p, err
	})
}

// collect reads one activity source and resolves labels after the rows are
// closed, since the lookups share the connection. Any read error drops the
// whole source.
func (s *Service) collect(ctx context.Context, name, query string, scan func(pgx.Rows) (pending, error)) []Activity {
	rows, err := s.db.Query(ctx, query, perSourceLimit)
	if err != nil {
		s.skipSource(name, err)
		return nil
	}
	var found []pending
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			rows.Close()
			s.skipSource(name, err)
			return nil
		}
		found = append(found, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		s.skipSource(name, err)
		return nil
	}

	out := make([]Activity, 0, len(found))
	for _, p := range found {
		p.activity.Label = p.resolve(ctx, p.ref)
		out = append(out, p.activity)
	}
	return out
}

func (s *Service) skipSource(name string, err error) {
	slog.Warn("recent activity source skipped", "source", name, "err", err)
	s.fallback(name)
}

func (s *Service) fallback(name string) {
	if s.recorder != nil {
		s.recorder.Fallback(name)
	}
}

func (s *Service) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
