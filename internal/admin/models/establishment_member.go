package models

import (
	"github.com/testnest/admin/internal/admin/guard"
	"github.com/testnest/admin/internal/admin/ids"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

// EstablishmentMember records an employee's membership in an
// establishment. An employee is a member of a given establishment at most
// once.
type EstablishmentMember struct {
	ID              ids.EstablishmentMemberID
	EstablishmentID ids.EstablishmentID
	EmployeeID      ids.EmployeeID
	Title           vo.MemberTitle
	Description     vo.MemberDescription
	Tag             vo.MemberTag
}

// CreateEstablishmentMember builds a new membership with a fresh ID.
func CreateEstablishmentMember(
	establishmentID ids.EstablishmentID,
	employeeID ids.EmployeeID,
	title vo.MemberTitle,
	description vo.MemberDescription,
	tag vo.MemberTag,
) (*EstablishmentMember, error) {
	if err := guard.Aggregate(
		requirePresent(establishmentID, "NullEstablishmentId", "Establishment id is required."),
		requirePresent(employeeID, "NullEmployeeId", "Employee id is required."),
		requirePresent(title, "NullMemberTitle", "Member title is required."),
		requirePresent(description, "NullMemberDescription", "Member description is required."),
		requirePresent(tag, "NullMemberTag", "Member tag is required."),
	); err != nil {
		return nil, err
	}
	return &EstablishmentMember{
		ID:              ids.New[ids.EstablishmentMember](),
		EstablishmentID: establishmentID,
		EmployeeID:      employeeID,
		Title:           title,
		Description:     description,
		Tag:             tag,
	}, nil
}

func (x *EstablishmentMember) GetID() ids.EstablishmentMemberID { return x.ID }

// WithTitle returns a copy with a new title.
func (x *EstablishmentMember) WithTitle(title vo.MemberTitle) (*EstablishmentMember, error) {
	if err := requirePresent(title, "NullMemberTitle", "Member title is required."); err != nil {
		return nil, err
	}
	c := *x
	c.Title = title
	return &c, nil
}

// WithDescription returns a copy with a new description.
func (x *EstablishmentMember) WithDescription(description vo.MemberDescription) (*EstablishmentMember, error) {
	if err := requirePresent(description, "NullMemberDescription", "Member description is required."); err != nil {
		return nil, err
	}
	c := *x
	c.Description = description
	return &c, nil
}

// WithTag returns a copy with a new tag.
func (x *EstablishmentMember) WithTag(tag vo.MemberTag) (*EstablishmentMember, error) {
	if err := requirePresent(tag, "NullMemberTag", "Member tag is required."); err != nil {
		return nil, err
	}
	c := *x
	c.Tag = tag
	return &c, nil
}

// WithEmployee returns a copy for another employee.
func (x *EstablishmentMember) WithEmployee(employeeID ids.EmployeeID) (*EstablishmentMember, error) {
	if err := requirePresent(employeeID, "NullEmployeeId", "Employee id is required."); err != nil {
		return nil, err
	}
	c := *x
	c.EmployeeID = employeeID
	return &c, nil
}

// EstablishmentMemberInput carries the raw fields of a create or full
// update. EmployeeID is ignored on update.
type EstablishmentMemberInput struct {
	EstablishmentID   string
	EmployeeID        string
	MemberTitle       string
	MemberDescription string
	MemberTag         string
}

// EstablishmentMemberPatch carries the fields of a partial update.
type EstablishmentMemberPatch struct {
	EmployeeID        *string
	MemberTitle       *string
	MemberDescription *string
	MemberTag         *string
}
