package models

import (
	"github.com/testnest/admin/internal/admin/ids"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

// SocialMediaPlatform is a social network establishments can link to.
// Platform names are unique.
type SocialMediaPlatform struct {
	ID   ids.SocialMediaID
	Name vo.SocialMediaName
}

// CreateSocialMediaPlatform builds a new platform with a fresh ID.
func CreateSocialMediaPlatform(name vo.SocialMediaName) (*SocialMediaPlatform, error) {
	if err := requirePresent(name, "NullSocialMediaName", "Social media name is required."); err != nil {
		return nil, err
	}
	return &SocialMediaPlatform{ID: ids.New[ids.SocialMedia](), Name: name}, nil
}

func (x *SocialMediaPlatform) GetID() ids.SocialMediaID { return x.ID }

// WithName returns a copy with a new name and URL.
func (x *SocialMediaPlatform) WithName(name vo.SocialMediaName) (*SocialMediaPlatform, error) {
	if err := requirePresent(name, "NullSocialMediaName", "Social media name is required."); err != nil {
		return nil, err
	}
	c := *x
	c.Name = name
	return &c, nil
}

// SocialMediaPlatformInput carries the raw fields of a create or full update.
type SocialMediaPlatformInput struct {
	Name        string
	PlatformURL string
}

// SocialMediaPlatformPatch carries the fields of a partial update.
type SocialMediaPlatformPatch struct {
	Name        *string
	PlatformURL *string
}
