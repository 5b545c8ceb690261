package db

import (
	"context"

	"gorm.io/gorm"

	dbmodels "github.com/testnest/admin/internal/admin/db/models"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

var employeeColumns = columns{
	"id":               "id",
	"employeeid":       "id",
	"employeenumber":   "employee_number",
	"firstname":        "first_name",
	"middlename":       "middle_name",
	"lastname":         "last_name",
	"emailaddress":     "email",
	"email":            "email",
	"employeestatusid": "status_id",
	"employeeroleid":   "role_id",
	"establishmentid":  "establishment_id",
}

func employeeToRow(x *models.Employee) *dbmodels.Employee {
	return &dbmodels.Employee{
		ID:              x.ID.UUID(),
		EmployeeNumber:  x.Number.EmployeeNo(),
		FirstName:       x.Name.FirstName(),
		MiddleName:      x.Name.MiddleName(),
		LastName:        x.Name.LastName(),
		Email:           x.Email.Email(),
		StatusID:        x.Status.ID,
		RoleID:          x.RoleID.UUID(),
		EstablishmentID: x.EstablishmentID.UUID(),
	}
}

func employeeFromRow(row *dbmodels.Employee) (*models.Employee, error) {
	id := ids.FromUUID[ids.Employee](row.ID)
	number, numberErr := vo.NewEmployeeNumber(row.EmployeeNumber)
	name, nameErr := vo.NewPersonName(row.FirstName, row.MiddleName, row.LastName)
	email, emailErr := vo.NewEmailAddress(row.Email)
	status, statusErr := vo.EmployeeStatusFromID(row.StatusID)
	for _, err := range []error{numberErr, nameErr, emailErr, statusErr} {
		if err != nil {
			return nil, corrupt("employee", id, err)
		}
	}
	return &models.Employee{
		ID:              id,
		Number:          number,
		Name:            name,
		Email:           email,
		Status:          status,
		RoleID:          ids.FromUUID[ids.EmployeeRole](row.RoleID),
		EstablishmentID: ids.FromUUID[ids.Establishment](row.EstablishmentID),
	}, nil
}

func (r *Repository) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	if err := r.db.WithContext(ctx).Create(employeeToRow(employee)).Error; err != nil {
		return translate(err, "create employee")
	}
	return nil
}

func (r *Repository) GetEmployee(ctx context.Context, id ids.EmployeeID) (*models.Employee, error) {
	row, err := getRow[dbmodels.Employee](ctx, r.db, id, "employee")
	if err != nil {
		return nil, err
	}
	return employeeFromRow(row)
}

func (r *Repository) UpdateEmployee(ctx context.Context, employee *models.Employee) error {
	return saveRow(ctx, r.db, employeeToRow(employee), employee.ID, "employee")
}

func (r *Repository) DeleteEmployee(ctx context.Context, id ids.EmployeeID) error {
	return deleteRow[dbmodels.Employee](ctx, r.db, id, "employee")
}

func (r *Repository) ListEmployees(ctx context.Context, spec ListSpec) ([]*models.Employee, error) {
	var rows []dbmodels.Employee
	err := r.db.WithContext(ctx).
		Scopes(employeeColumns.filter(spec), employeeColumns.page(spec)).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list employees")
	}
	out := make([]*models.Employee, 0, len(rows))
	for i := range rows {
		x, err := employeeFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

func (r *Repository) CountEmployees(ctx context.Context, spec ListSpec) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmodels.Employee{}).
		Scopes(employeeColumns.filter(spec)).
		Count(&count).Error
	return count, translate(err, "count employees")
}

// EmployeeExistsWithSameCombination reports whether another employee than
// excludeID has the same number, name and email in the establishment.
func (r *Repository) EmployeeExistsWithSameCombination(
	ctx context.Context,
	number vo.EmployeeNumber,
	name vo.PersonName,
	email vo.EmailAddress,
	establishmentID ids.EstablishmentID,
	excludeID ids.EmployeeID,
) (bool, error) {
	found, err := exists[dbmodels.Employee](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		q = q.Where("employee_number = ? AND email = ? AND establishment_id = ?",
			number.EmployeeNo(), email.Email(), establishmentID.UUID()).
			Where("first_name = ? AND middle_name = ? AND last_name = ?",
				name.FirstName(), name.MiddleName(), name.LastName())
		return excluding(q, excludeID)
	})
	return found, translate(err, "check employee")
}

// EmployeeHasMemberships reports whether any membership references id.
func (r *Repository) EmployeeHasMemberships(ctx context.Context, id ids.EmployeeID) (bool, error) {
	found, err := exists[dbmodels.EstablishmentMember](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Where("employee_id = ?", id.UUID())
	})
	return found, translate(err, "check employee memberships")
}
