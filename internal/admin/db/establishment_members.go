package db

import (
	"context"

	"gorm.io/gorm"

	dbmodels "github.com/testnest/admin/internal/admin/db/models"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

var memberColumns = columns{
	"id":                    "id",
	"establishmentmemberid": "id",
	"establishmentid":       "establishment_id",
	"employeeid":            "employee_id",
	"membertitle":           "member_title",
	"memberdescription":     "member_description",
	"membertag":             "member_tag",
}

func memberToRow(m *models.EstablishmentMember) *dbmodels.EstablishmentMember {
	return &dbmodels.EstablishmentMember{
		ID:                m.ID.UUID(),
		EstablishmentID:   m.EstablishmentID.UUID(),
		EmployeeID:        m.EmployeeID.UUID(),
		MemberTitle:       m.Title.Title(),
		MemberDescription: m.Description.Description(),
		MemberTag:         m.Tag.Tag(),
	}
}

func memberFromRow(row *dbmodels.EstablishmentMember) (*models.EstablishmentMember, error) {
	id := ids.FromUUID[ids.EstablishmentMember](row.ID)
	title, titleErr := vo.NewMemberTitle(row.MemberTitle)
	description, descErr := vo.NewMemberDescription(row.MemberDescription)
	tag, tagErr := vo.NewMemberTag(row.MemberTag)
	for _, err := range []error{titleErr, descErr, tagErr} {
		if err != nil {
			return nil, corrupt("establishment member", id, err)
		}
	}
	return &models.EstablishmentMember{
		ID:              id,
		EstablishmentID: ids.FromUUID[ids.Establishment](row.EstablishmentID),
		EmployeeID:      ids.FromUUID[ids.Employee](row.EmployeeID),
		Title:           title,
		Description:     description,
		Tag:             tag,
	}, nil
}

func (r *Repository) CreateEstablishmentMember(ctx context.Context, member *models.EstablishmentMember) error {
	if err := r.db.WithContext(ctx).Create(memberToRow(member)).Error; err != nil {
		return translate(err, "create establishment member")
	}
	return nil
}

func (r *Repository) GetEstablishmentMember(ctx context.Context, id ids.EstablishmentMemberID) (*models.EstablishmentMember, error) {
	row, err := getRow[dbmodels.EstablishmentMember](ctx, r.db, id, "establishment member")
	if err != nil {
		return nil, err
	}
	return memberFromRow(row)
}

func (r *Repository) UpdateEstablishmentMember(ctx context.Context, member *models.EstablishmentMember) error {
	return saveRow(ctx, r.db, memberToRow(member), member.ID, "establishment member")
}

func (r *Repository) DeleteEstablishmentMember(ctx context.Context, id ids.EstablishmentMemberID) error {
	return deleteRow[dbmodels.EstablishmentMember](ctx, r.db, id, "establishment member")
}

func (r *Repository) ListEstablishmentMembers(ctx context.Context, spec ListSpec) ([]*models.EstablishmentMember, error) {
	var rows []dbmodels.EstablishmentMember
	err := r.db.WithContext(ctx).
		Scopes(memberColumns.filter(spec), memberColumns.page(spec)).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list establishment members")
	}
	out := make([]*models.EstablishmentMember, 0, len(rows))
	for i := range rows {
		m, err := memberFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Repository) CountEstablishmentMembers(ctx context.Context, spec ListSpec) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmodels.EstablishmentMember{}).
		Scopes(memberColumns.filter(spec)).
		Count(&count).Error
	return count, translate(err, "count establishment members")
}

// EstablishmentMemberExists reports whether employeeID is already a member
// of the establishment through a membership other than excludeID.
func (r *Repository) EstablishmentMemberExists(
	ctx context.Context,
	establishmentID ids.EstablishmentID,
	employeeID ids.EmployeeID,
	excludeID ids.EstablishmentMemberID,
) (bool, error) {
	found, err := exists[dbmodels.EstablishmentMember](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		q = q.Where("establishment_id = ? AND employee_id = ?", establishmentID.UUID(), employeeID.UUID())
		return excluding(q, excludeID)
	})
	return found, translate(err, "check establishment member")
}
