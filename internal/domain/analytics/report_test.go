//go:build unit
// +build unit

package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visitAt(blogID, visitorID string, at time.Time) *Visit {
	return &Visit{BlogID: blogID, VisitorID: visitorID, VisitedAt: at}
}

func TestBuildReport(t *testing.T) {
	now := time.Date(2026, 5, 31, 12, 0, 0, 0, time.UTC)
	blogs := []PublishedBlog{
		{ID: "b1", Title: "First Post", Slug: "first-post-abc12345"},
		{ID: "b2", Title: "Hello, World!  Again"},
	}
	visits := []*Visit{
		visitAt("b1", "v1", now.Add(-1*time.Hour)),
		visitAt("b1", "v2", now.Add(-3*day)),
		visitAt("b1", "v3", now.Add(-10*day)),
		visitAt("b1", "v4", now.Add(-40*day)),
		visitAt("b2", "v1", now.Add(-2*time.Hour)),
		visitAt("other", "v9", now),
	}

	report := BuildReport(blogs, visits, 30, now)
	require.Len(t, report.Blogs, 2)

	b1 := report.Blogs[0]
	assert.Equal(t, "b1", b1.BlogID)
	assert.Equal(t, "first-post-abc12345", b1.Slug)
	assert.Equal(t, 4, b1.UniqueVisitors)
	assert.Equal(t, 2, b1.VisitorsLast7Days)
	assert.Equal(t, 3, b1.VisitorsLast30Days)
	require.NotNil(t, b1.LastVisit)
	assert.Equal(t, now.Add(-1*time.Hour), *b1.LastVisit)

	b2 := report.Blogs[1]
	assert.Equal(t, "hello-world-again", b2.Slug)
	assert.Equal(t, 1, b2.UniqueVisitors)

	assert.Equal(t, 5, report.TotalVisitors)
	assert.Equal(t, 3, report.TotalVisitorsLast7Days)
	assert.Equal(t, 4, report.TotalVisitorsLast30Days)
	assert.Equal(t, 100, report.VisitorsChange)

	// v1 visited both blogs on the same day and is counted once
	require.Len(t, report.Daily, 3)
	assert.Equal(t, DailyVisitors{Date: "2026-05-21", UniqueVisitors: 1}, report.Daily[0])
	assert.Equal(t, DailyVisitors{Date: "2026-05-28", UniqueVisitors: 1}, report.Daily[1])
	assert.Equal(t, DailyVisitors{Date: "2026-05-31", UniqueVisitors: 1}, report.Daily[2])
}

func TestBuildReport_WindowBoundsAreInclusive(t *testing.T) {
	now := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)
	blogs := []PublishedBlog{{ID: "b1", Slug: "s"}}
	visits := []*Visit{
		visitAt("b1", "v7", now.Add(-7*day)),
		visitAt("b1", "v30", now.Add(-30*day)),
	}

	report := BuildReport(blogs, visits, 7, now)
	assert.Equal(t, 1, report.Blogs[0].VisitorsLast7Days)
	assert.Equal(t, 2, report.Blogs[0].VisitorsLast30Days)
	require.Len(t, report.Daily, 1)
	assert.Equal(t, "2026-05-24", report.Daily[0].Date)
}

func TestBuildReport_Empty(t *testing.T) {
	report := BuildReport(nil, nil, 0, time.Now())

	assert.NotNil(t, report.Daily)
	assert.NotNil(t, report.Blogs)
	assert.Empty(t, report.Blogs)
	assert.Equal(t, 0, report.TotalVisitors)
	assert.Equal(t, 0, report.VisitorsChange)
}

func TestBuildReport_NoRecentVisits(t *testing.T) {
	now := time.Now()
	blogs := []PublishedBlog{{ID: "b1", Slug: "s"}}
	visits := []*Visit{visitAt("b1", "v1", now.Add(-90*day))}

	report := BuildReport(blogs, visits, 30, now)
	assert.Equal(t, 1, report.TotalVisitors)
	assert.Equal(t, 0, report.TotalVisitorsLast30Days)
	assert.Equal(t, 0, report.VisitorsChange)
	assert.Empty(t, report.Daily)
}

func TestFallbackSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Go & Rust: a comparison!", "go-rust-a-comparison"},
		{"Multiple   spaces --- and dashes", "multiple-spaces-and-dashes"},
		{"Ünïcode títle", "ncode-ttle"},
		{"", ""},
		{"This title is definitely longer than fifty characters in total", "this-title-is-definitely-longer-than-fifty-charact"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := FallbackSlug(tt.title)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), FallbackSlugMaxLen)
		})
	}
}
