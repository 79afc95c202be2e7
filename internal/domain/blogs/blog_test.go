//go:build unit
// +build unit

package blogs

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBaseSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Go: 10 Tips & Tricks!  ", "go-10-tips-tricks"},
		{"---", ""},
		{"Ünïcode Títle", "n-code-t-tle"},
		{strings.Repeat("a", 150), strings.Repeat("a", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseSlug(tt.title))
		})
	}
}

func TestBaseSlug_TruncationDoesNotEndWithDash(t *testing.T) {
	title := strings.Repeat("a", 99) + " b"
	slug := BaseSlug(title)
	assert.Equal(t, strings.Repeat("a", 99), slug)
}

func TestGenerateSlug(t *testing.T) {
	slug := GenerateSlug("My First Video")
	require.True(t, strings.HasPrefix(slug, "my-first-video-"))
	assert.Len(t, strings.TrimPrefix(slug, "my-first-video-"), SlugSuffixLen)

	other := GenerateSlug("My First Video")
	assert.NotEqual(t, slug, other)

	assert.True(t, strings.HasPrefix(GenerateSlug("!!!"), "post-"))
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"go", "video"}, NormalizeTags([]string{" go ", "", "  ", "video"}))
	assert.Equal(t, []string{}, NormalizeTags(nil))
}

func TestNew(t *testing.T) {
	now := time.Now().UTC()
	in := &Input{
		Title:      "  A Talk  ",
		Content:    "# Body",
		Excerpt:    strPtr("   "),
		YoutubeURL: strPtr("https://youtu.be/abc"),
		Tags:       []string{"talk", " "},
	}

	b := New("user_1", in, now)
	assert.NoError(t, uuid.Validate(b.ID))
	assert.Equal(t, "user_1", b.ClerkUserID)
	assert.Equal(t, "A Talk", b.Title)
	assert.True(t, strings.HasPrefix(b.Slug, "a-talk-"))
	assert.Nil(t, b.Excerpt)
	require.NotNil(t, b.YoutubeURL)
	assert.Equal(t, "https://youtu.be/abc", *b.YoutubeURL)
	assert.Equal(t, []string{"talk"}, b.Tags)
	assert.False(t, b.IsPublished)
	assert.Equal(t, now, b.CreatedAt)
	require.NoError(t, b.Validate())
}

func TestNew_KeepsGivenSlug(t *testing.T) {
	b := New("user_1", &Input{Title: "T", Content: "C", Slug: "custom-slug"}, time.Now())
	assert.Equal(t, "custom-slug", b.Slug)
}

func TestBlog_Validate(t *testing.T) {
	b := New("user_1", &Input{Title: "T", Content: "C"}, time.Now())
	require.NoError(t, b.Validate())

	noContent := *b
	noContent.Content = ""
	assert.Error(t, noContent.Validate())

	badURL := *b
	badURL.ThumbnailURL = strPtr("not a url")
	assert.Error(t, badURL.Validate())
}

func TestBlog_Apply(t *testing.T) {
	created := time.Now().Add(-time.Hour)
	b := New("user_1", &Input{Title: "Old", Content: "old", Slug: "old-slug"}, created)

	later := time.Now()
	b.Apply(&Input{Title: "New", Content: "new", IsPublished: true, Tags: []string{"x"}}, later)

	assert.Equal(t, "New", b.Title)
	assert.Equal(t, "new", b.Content)
	assert.Equal(t, "old-slug", b.Slug)
	assert.True(t, b.IsPublished)
	assert.Equal(t, []string{"x"}, b.Tags)
	assert.Equal(t, created, b.CreatedAt)
	assert.Equal(t, later, b.UpdatedAt)
}

func TestBlog_OwnedBy(t *testing.T) {
	b := &Blog{ClerkUserID: "user_1"}
	assert.True(t, b.OwnedBy("user_1"))
	assert.False(t, b.OwnedBy("user_2"))
}

func TestIsID(t *testing.T) {
	assert.True(t, IsID(uuid.NewString()))
	assert.False(t, IsID("my-blog-post-1a2b3c4d"))
	assert.False(t, IsID(""))
}

func TestQuery_Validate(t *testing.T) {
	assert.NoError(t, NewQuery("user_1").Validate())
	assert.Error(t, (&Query{ClerkUserID: "user_1", Filter: "archived"}).Validate())
	assert.Error(t, (&Query{Filter: FilterDraft}).Validate())
}
