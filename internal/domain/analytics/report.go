package analytics

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// DefaultReportDays is the daily series window when none is requested
const DefaultReportDays = 30

const day = 24 * time.Hour

// PublishedBlog is the part of a blog a report needs
type PublishedBlog struct {
	ID          string
	ClerkUserID string
	Title       string
	Slug        string
	CreatedAt   time.Time
}

// BlogStats holds the visitor counts of one blog
type BlogStats struct {
	BlogID             string
	ClerkUserID        string
	Title              string
	Slug               string
	CreatedAt          time.Time
	UniqueVisitors     int
	VisitorsLast7Days  int
	VisitorsLast30Days int
	LastVisit          *time.Time
}

// DailyVisitors is one point of the daily series
type DailyVisitors struct {
	Date           string
	UniqueVisitors int
}

// Report is the analytics overview of one author
type Report struct {
	Daily                   []DailyVisitors
	Blogs                   []BlogStats
	TotalVisitors           int
	TotalVisitorsLast7Days  int
	TotalVisitorsLast30Days int
	VisitorsChange          int
}

type blogAccumulator struct {
	all, last7, last30 map[string]struct{}
	lastVisit          *time.Time
}

func newBlogAccumulator() *blogAccumulator {
	return &blogAccumulator{
		all:    map[string]struct{}{},
		last7:  map[string]struct{}{},
		last30: map[string]struct{}{},
	}
}

// BuildReport aggregates visits of the given blogs as seen at now.
// The daily series covers visits in the last days days, bucketed by UTC date.
func BuildReport(blogs []PublishedBlog, visits []*Visit, days int, now time.Time) *Report {
	if days <= 0 {
		days = DefaultReportDays
	}

	perBlog := make(map[string]*blogAccumulator, len(blogs))
	for _, b := range blogs {
		perBlog[b.ID] = newBlogAccumulator()
	}

	dailyCutoff := now.Add(-time.Duration(days) * day)
	daily := map[string]map[string]struct{}{}

	for _, v := range visits {
		acc, ok := perBlog[v.BlogID]
		if !ok {
			continue
		}

		acc.all[v.VisitorID] = struct{}{}
		age := now.Sub(v.VisitedAt)
		if age <= 7*day {
			acc.last7[v.VisitorID] = struct{}{}
		}
		if age <= 30*day {
			acc.last30[v.VisitorID] = struct{}{}
		}
		if acc.lastVisit == nil || v.VisitedAt.After(*acc.lastVisit) {
			t := v.VisitedAt
			acc.lastVisit = &t
		}

		if !v.VisitedAt.Before(dailyCutoff) {
			date := v.VisitedAt.UTC().Format(time.DateOnly)
			if daily[date] == nil {
				daily[date] = map[string]struct{}{}
			}
			daily[date][v.VisitorID] = struct{}{}
		}
	}

	report := &Report{
		Daily: make([]DailyVisitors, 0, len(daily)),
		Blogs: make([]BlogStats, 0, len(blogs)),
	}

	for _, b := range blogs {
		acc := perBlog[b.ID]
		slug := b.Slug
		if slug == "" {
			slug = FallbackSlug(b.Title)
		}
		stats := BlogStats{
			BlogID:             b.ID,
			ClerkUserID:        b.ClerkUserID,
			Title:              b.Title,
			Slug:               slug,
			CreatedAt:          b.CreatedAt,
			UniqueVisitors:     len(acc.all),
			VisitorsLast7Days:  len(acc.last7),
			VisitorsLast30Days: len(acc.last30),
			LastVisit:          acc.lastVisit,
		}
		report.Blogs = append(report.Blogs, stats)
		report.TotalVisitors += stats.UniqueVisitors
		report.TotalVisitorsLast7Days += stats.VisitorsLast7Days
		report.TotalVisitorsLast30Days += stats.VisitorsLast30Days
	}

	for date, visitors := range daily {
		report.Daily = append(report.Daily, DailyVisitors{Date: date, UniqueVisitors: len(visitors)})
	}
	sort.Slice(report.Daily, func(i, j int) bool { return report.Daily[i].Date < report.Daily[j].Date })

	if report.TotalVisitorsLast30Days > 0 {
		report.VisitorsChange = 100
	}

	return report
}

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces     = regexp.MustCompile(`\s+`)
	slugDashes     = regexp.MustCompile(`-+`)
)

// FallbackSlugMaxLen bounds slugs derived for blogs stored without one
const FallbackSlugMaxLen = 50

// FallbackSlug derives a display slug for a blog that was stored without one
func FallbackSlug(title string) string {
	s := strings.ToLower(title)
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.TrimSpace(s)
	if len(s) > FallbackSlugMaxLen {
		s = s[:FallbackSlugMaxLen]
	}
	return s
}
