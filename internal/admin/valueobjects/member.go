package valueobjects

import (
	"regexp"

	"github.com/testnest/admin/internal/admin/guard"
)

var memberTagPattern = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

// MemberTitle is the title an employee holds within an establishment.
type MemberTitle struct {
	title string
}

func NewMemberTitle(title string) (MemberTitle, error) {
	err := guard.Aggregate(
		guard.AgainstNullOrWhiteSpace(title, guard.Failed("EmptyMemberTitle", "Member title cannot be empty.")),
		guard.AgainstLength(title, 1, 100, guard.Failed("InvalidMemberTitleLength", "Member title must not exceed 100 characters.")),
	)
	if err != nil {
		return MemberTitle{}, err
	}
	return MemberTitle{title: title}, nil
}

func EmptyMemberTitle() MemberTitle { return MemberTitle{} }
func (t MemberTitle) Update(title string) (MemberTitle, error) { return NewMemberTitle(title) }
func (t MemberTitle) Title() string { return t.title }
func (t MemberTitle) IsEmpty() bool { return t == MemberTitle{} }
func (t MemberTitle) String() string { return t.title }

// MemberDescription is free text describing a membership.
type MemberDescription struct {
	description string
}

func NewMemberDescription(description string) (MemberDescription, error) {
	err := guard.Aggregate(
		guard.AgainstNullOrWhiteSpace(description, guard.Failed("EmptyMemberDescription", "Member description cannot be empty.")),
		guard.AgainstLength(description, 1, 500, guard.Failed("InvalidMemberDescriptionLength", "Member description must not exceed 500 characters.")),
	)
	if err != nil {
		return MemberDescription{}, err
	}
	return MemberDescription{description: description}, nil
}

func EmptyMemberDescription() MemberDescription { return MemberDescription{} }

func (d MemberDescription) Update(description string) (MemberDescription, error) {
	return NewMemberDescription(description)
}

func (d MemberDescription) Description() string { return d.description }
func (d MemberDescription) IsEmpty() bool { return d == MemberDescription{} }
func (d MemberDescription) String() string { return d.description }

// MemberTag is a short label used to group members.
type MemberTag struct {
	tag string
}

func NewMemberTag(tag string) (MemberTag, error) {
	err := guard.Aggregate(
		guard.AgainstNullOrWhiteSpace(tag, guard.Failed("EmptyMemberTag", "Member tag cannot be empty.")),
		guard.AgainstLength(tag, 1, 50, guard.Failed("InvalidMemberTagLength", "Member tag must not exceed 50 characters.")),
		guard.AgainstRegex(tag, memberTagPattern, guard.Failed("InvalidMemberTagCharacters", "Member tag may only contain letters, digits, spaces, '_' and '-'.")),
	)
	if err != nil {
		return MemberTag{}, err
	}
	return MemberTag{tag: tag}, nil
}

func EmptyMemberTag() MemberTag { return MemberTag{} }
func (t MemberTag) Update(tag string) (MemberTag, error) { return NewMemberTag(tag) }
func (t MemberTag) Tag() string { return t.tag }
func (t MemberTag) IsEmpty() bool { return t == MemberTag{} }
func (t MemberTag) String() string { return t.tag }
