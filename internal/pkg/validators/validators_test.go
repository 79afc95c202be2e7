//go:build unit
// +build unit

package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsYouTubeURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://youtube.com/watch?v=dQw4w9WgXcQ&t=42", true},
		{"http://m.youtube.com/watch?v=abc", true},
		{"https://youtu.be/dQw4w9WgXcQ", true},
		{"https://www.youtube.com/shorts/abc123", true},
		{"https://www.youtube.com/embed/abc123", true},
		{"https://www.youtube.com/watch", false},
		{"https://www.youtube.com/shorts/", false},
		{"https://youtu.be/", false},
		{"https://vimeo.com/123", false},
		{"ftp://youtube.com/watch?v=abc", false},
		{"not a url", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsYouTubeURL(tt.url))
		})
	}
}

type sample struct {
	Plan  string `validate:"planType"`
	Cycle string `validate:"billingCycle"`
	Video string `validate:"youtubeURL"`
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	valid := sample{Plan: "starter", Cycle: "yearly", Video: "https://youtu.be/abc"}
	assert.NoError(t, v.Struct(valid))

	invalid := sample{Plan: "enterprise", Cycle: "weekly", Video: "https://example.com"}
	err := v.Struct(invalid)
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
}

func TestStruct(t *testing.T) {
	err := Struct(&sample{Plan: "team", Cycle: "monthly", Video: "https://www.youtube.com/watch?v=abc"})
	assert.NoError(t, err)

	err = Struct(&sample{Plan: "gold", Cycle: "monthly", Video: "https://youtu.be/abc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Field: Plan, Tag: planType")
}
