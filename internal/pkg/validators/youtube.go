package validators

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var youtubeHosts = map[string]bool{
	"youtube.com":       true,
	"www.youtube.com":   true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
	"youtu.be":          true,
}

// IsYouTubeURL reports whether raw is an http(s) link to a YouTube video
func IsYouTubeURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if !youtubeHosts[host] {
		return false
	}

	if host == "youtu.be" {
		return len(strings.Trim(u.Path, "/")) > 0
	}

	if u.Path == "/watch" {
		return u.Query().Get("v") != ""
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[1] == "" {
		return false
	}
	switch segments[0] {
	case "shorts", "embed", "live":
		return true
	default:
		return false
	}
}

// YouTubeURLValidation validates a string field with IsYouTubeURL.
func YouTubeURLValidation(fl validator.FieldLevel) bool {
	return IsYouTubeURL(fl.Field().String())
}

// Register adds the custom validations used by domain entities to v
func Register(v *validator.Validate) error {
	for tag, fn := range map[string]validator.Func{
		"planType":     PlanTypeValidation,
		"billingCycle": BillingCycleValidation,
		"youtubeURL":   YouTubeURLValidation,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
