package dashboard

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Abraxas-365/internhub/pkg/iam/user"
	"github.com/Abraxas-365/internhub/pkg/kernel"
	"github.com/Abraxas-365/internhub/recruitment/application"
	"github.com/Abraxas-365/internhub/recruitment/internship"
)

// DefaultTrendDays is the window used by the admin dashboard trend chart
const DefaultTrendDays = 7

// Duration buckets accepted by Filters.Duration
const (
	DurationShort  = "1-3"
	DurationMedium = "3-6"
	DurationLong   = "6+"
)

// Sort orders accepted by Filters.SortBy
const (
	SortNewest      = "newest"
	SortDeadline    = "deadline"
	SortStipendHigh = "stipend-high"
	SortStipendLow  = "stipend-low"
)

// Filters narrows and orders the public internship listing
type Filters struct {
	Search   string `json:"search" query:"search"`
	Location string `json:"location" query:"location"`
	Duration string `json:"duration" query:"duration"`
	SortBy   string `json:"sort_by" query:"sort_by"`
}

// StatusCounts holds the total and per-status application counts
type StatusCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Screening int `json:"screening"`
	Interview int `json:"interview"`
	Accepted  int `json:"accepted"`
	Rejected  int `json:"rejected"`
}

// DailyCount is one point of the application trend
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type InternshipSummary struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// StudentSummary is a student together with their application stats
type StudentSummary struct {
	Student *user.User       `json:"student"`
	Stats   ApplicationStats `json:"stats"`
}

type ApplicationStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

// FilterInternships applies search, location and duration filters and sorts the result.
// The input slice is never modified.
func FilterInternships(list []*internship.Internship, f Filters) []*internship.Internship {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	location := strings.ToLower(strings.TrimSpace(f.Location))

	out := make([]*internship.Internship, 0, len(list))
	for _, i := range list {
		if search != "" &&
			!strings.Contains(strings.ToLower(i.Title), search) &&
			!strings.Contains(strings.ToLower(i.Company), search) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(i.Location), location) {
			continue
		}
		if !matchesDuration(i.DurationMonths, f.Duration) {
			continue
		}
		out = append(out, i)
	}

	sortInternships(out, f.SortBy)
	return out
}

func matchesDuration(months int, bucket string) bool {
	switch bucket {
	case DurationShort:
		return months >= 1 && months <= 3
	case DurationMedium:
		return months >= 3 && months <= 6
	case DurationLong:
		return months >= 6
	default:
		return true
	}
}

func sortInternships(list []*internship.Internship, sortBy string) {
	var less func(a, b *internship.Internship) bool
	switch sortBy {
	case SortDeadline:
		less = func(a, b *internship.Internship) bool { return a.Deadline.Before(b.Deadline) }
	case SortStipendHigh:
		less = func(a, b *internship.Internship) bool { return ParseStipend(a.Stipend) > ParseStipend(b.Stipend) }
	case SortStipendLow:
		less = func(a, b *internship.Internship) bool { return ParseStipend(a.Stipend) < ParseStipend(b.Stipend) }
	default:
		less = func(a, b *internship.Internship) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(list, func(i, j int) bool { return less(list[i], list[j]) })
}

// ParseStipend reads the leading number of a free-form stipend such as "$1,500/month".
// Thousands separators and currency symbols are ignored; anything unparseable is 0.
func ParseStipend(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.Is(unicode.Sc, r)
	})

	end := 0
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c == '.' && !seenDot {
			seenDot = true
		} else if c < '0' || c > '9' {
			break
		}
		end++
	}

	v, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return v
}

// CountByStatus tallies applications per status
func CountByStatus(apps []*application.ApplicationWithDetails) StatusCounts {
	var c StatusCounts
	for _, a := range apps {
		c.Total++
		switch a.Status {
		case application.StatusPending:
			c.Pending++
		case application.StatusScreening:
			c.Screening++
		case application.StatusInterview:
			c.Interview++
		case application.StatusAccepted:
			c.Accepted++
		case application.StatusRejected:
			c.Rejected++
		}
	}
	return c
}

// DailyTrend counts applications per calendar day in loc. Days without applications
// are omitted and only the latest days entries are kept, oldest first.
func DailyTrend(apps []*application.ApplicationWithDetails, loc *time.Location, days int) []DailyCount {
	if loc == nil {
		loc = time.UTC
	}
	if days <= 0 {
		days = DefaultTrendDays
	}

	counts := make(map[string]int)
	for _, a := range apps {
		counts[a.CreatedAt.In(loc).Format(time.DateOnly)]++
	}

	trend := make([]DailyCount, 0, len(counts))
	for date, n := range counts {
		trend = append(trend, DailyCount{Date: date, Count: n})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date < trend[j].Date })

	if len(trend) > days {
		trend = trend[len(trend)-days:]
	}
	return trend
}

// SummarizeInternships counts postings and the ones still open at now
func SummarizeInternships(list []*internship.Internship, now time.Time) InternshipSummary {
	s := InternshipSummary{Total: len(list)}
	for _, i := range list {
		if i.IsActive(now) {
			s.Active++
		}
	}
	return s
}

// StudentStats pairs every student with their application stats, zero-filled
func StudentStats(students []*user.User, apps []*application.ApplicationWithDetails) []StudentSummary {
	byStudent := make(map[kernel.UserID]*ApplicationStats, len(students))
	out := make([]StudentSummary, len(students))
	for i, s := range students {
		out[i] = StudentSummary{Student: s}
		byStudent[s.ID] = &out[i].Stats
	}

	for _, a := range apps {
		st, ok := byStudent[a.StudentID]
		if !ok {
			continue
		}
		st.Total++
		switch a.Status {
		case application.StatusPending:
			st.Pending++
		case application.StatusAccepted:
			st.Accepted++
		case application.StatusRejected:
			st.Rejected++
		}
	}
	return out
}
