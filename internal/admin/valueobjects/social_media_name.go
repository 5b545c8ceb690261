package valueobjects

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/testnest/admin/internal/admin/guard"
)

var socialMediaNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// SocialMediaName pairs a platform name with its home URL.
type SocialMediaName struct {
	name        string
	platformURL string
}

// NewSocialMediaName validates both parts together.
func NewSocialMediaName(name, platformURL string) (SocialMediaName, error) {
	err := guard.Aggregate(
		guard.AgainstNullOrWhiteSpace(name, guard.Failed("EmptyName", "Social media name cannot be empty.")),
		guard.AgainstRegex(name, socialMediaNamePattern, guard.Failed("InvalidCharacters", "Social media name may only contain letters, digits, '_' and '.'.")),
		guard.AgainstLength(name, 3, 50, guard.Failed("InvalidLength", "Social media name must be between 3 and 50 characters.")),
		guard.AgainstNullOrWhiteSpace(platformURL, guard.Failed("EmptyPlatformURL", "Platform URL cannot be empty.")),
		guard.AgainstCondition(!isAbsoluteHTTPURL(platformURL), guard.Failed("InvalidPlatformURLFormat", "Platform URL must be an absolute http(s) URL.")),
	)
	if err != nil {
		return SocialMediaName{}, err
	}
	return SocialMediaName{name: name, platformURL: platformURL}, nil
}

func isAbsoluteHTTPURL(raw string) bool {
	if !strings.HasPrefix(strings.ToLower(raw), "http") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != "" && !strings.ContainsAny(raw, " \t\n")
}

func EmptySocialMediaName() SocialMediaName { return SocialMediaName{} }

// WithName replaces the name, keeping the URL.
func (s SocialMediaName) WithName(name string) (SocialMediaName, error) {
	return NewSocialMediaName(name, s.platformURL)
}

// WithPlatformURL replaces the URL, keeping the name.
func (s SocialMediaName) WithPlatformURL(platformURL string) (SocialMediaName, error) {
	return NewSocialMediaName(s.name, platformURL)
}

// WithNamePlatform replaces both parts.
func (s SocialMediaName) WithNamePlatform(name, platformURL string) (SocialMediaName, error) {
	return NewSocialMediaName(name, platformURL)
}

func (s SocialMediaName) Name() string { return s.name }
func (s SocialMediaName) PlatformURL() string { return s.platformURL }
func (s SocialMediaName) IsEmpty() bool { return s == SocialMediaName{} }

func (s SocialMediaName) String() string {
	return fmt.Sprintf("%s (%s)", s.name, s.platformURL)
}
