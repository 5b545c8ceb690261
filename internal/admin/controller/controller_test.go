package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/testnest/admin/internal/admin/db"
	e "github.com/testnest/admin/internal/admin/errors"
	"github.com/testnest/admin/internal/admin/events"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
)

// recordingProducer is a test double for the Kafka producer.
type recordingProducer struct {
	events chan events.Event
}

func newRecordingProducer() *recordingProducer {
	return &recordingProducer{events: make(chan events.Event, 32)}
}

func (p *recordingProducer) Produce(event events.Event) {
	p.events <- event
}

func (p *recordingProducer) next(t *testing.T) events.Event {
	t.Helper()
	select {
	case ev := <-p.events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event produced")
		return events.Event{}
	}
}

func (p *recordingProducer) assertQuiet(t *testing.T) {
	t.Helper()
	select {
	case ev := <-p.events:
		t.Fatalf("unexpected event %s", ev.Name())
	case <-time.After(50 * time.Millisecond):
	}
}

func setupRepo(t *testing.T) *db.Repository {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo, err := db.Open(gdb)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// fixture wires every service to one database.
type fixture struct {
	repo           *db.Repository
	producer       *recordingProducer
	establishments *EstablishmentService
	addresses      *EstablishmentAddressService
	contacts       *EstablishmentContactService
	phones         *EstablishmentPhoneService
	members        *EstablishmentMemberService
	employees      *EmployeeService
	roles          *EmployeeRoleService
	platforms      *SocialMediaPlatformService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := setupRepo(t)
	producer := newRecordingProducer()
	logger := zaptest.NewLogger(t)
	return &fixture{
		repo:           repo,
		producer:       producer,
		establishments: NewEstablishmentService(repo, producer, logger),
		addresses:      NewEstablishmentAddressService(repo, producer, logger),
		contacts:       NewEstablishmentContactService(repo, producer, logger),
		phones:         NewEstablishmentPhoneService(repo, producer, logger),
		members:        NewEstablishmentMemberService(repo, producer, logger),
		employees:      NewEmployeeService(repo, producer, logger),
		roles:          NewEmployeeRoleService(repo, producer, logger),
		platforms:      NewSocialMediaPlatformService(repo, producer, logger),
	}
}

func (f *fixture) establishment(t *testing.T, name string) *models.Establishment {
	t.Helper()
	est, err := f.establishments.CreateEstablishment(context.Background(), models.EstablishmentInput{
		Name:     name,
		Email:    "hello@example.ph",
		StatusID: 2,
	})
	require.NoError(t, err)
	f.producer.next(t)
	return est
}

func (f *fixture) role(t *testing.T, name string) *models.EmployeeRole {
	t.Helper()
	role, err := f.roles.CreateEmployeeRole(context.Background(), models.EmployeeRoleInput{RoleName: name})
	require.NoError(t, err)
	f.producer.next(t)
	return role
}

func (f *fixture) employee(t *testing.T, number string, est *models.Establishment, role *models.EmployeeRole) *models.Employee {
	t.Helper()
	emp, err := f.employees.CreateEmployee(context.Background(), models.EmployeeInput{
		EmployeeNumber:  number,
		FirstName:       "Ana",
		LastName:        "Reyes",
		Email:           "ana@example.ph",
		StatusID:        1,
		RoleID:          role.ID.String(),
		EstablishmentID: est.ID.String(),
	})
	require.NoError(t, err)
	f.producer.next(t)
	return emp
}

func requireFailure(t *testing.T, err error, want e.ErrorType, codes ...string) {
	t.Helper()
	var f *e.Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, want, f.Type)
	if len(codes) > 0 {
		assert.Equal(t, codes, f.Codes())
	}
}

func TestEstablishmentService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	est := f.establishment(t, "Casa Verde")
	assert.Equal(t, "Active", est.Status.Name)

	_, err := f.establishments.CreateEstablishment(ctx, models.EstablishmentInput{Name: "Casa Verde", Email: "hello@example.ph", StatusID: 2})
	requireFailure(t, err, e.Conflict, "DuplicateEstablishment")

	_, err = f.establishments.CreateEstablishment(ctx, models.EstablishmentInput{Name: "x", Email: "bad", StatusID: 9})
	requireFailure(t, err, e.Validation, "InvalidLength", "InvalidEmailFormat", "InvalidEstablishmentStatus")

	closed := 4
	patched, err := f.establishments.PatchEstablishment(ctx, est.ID, models.EstablishmentPatch{StatusID: &closed})
	require.NoError(t, err)
	assert.Equal(t, "Closed", patched.Status.Name)
	assert.Equal(t, "Casa Verde", patched.Name.Name())
	ev := f.producer.next(t)
	assert.Equal(t, "establishment.updated", ev.Name())
	assert.Equal(t, est.ID.String(), ev.ID)

	same, err := f.establishments.PatchEstablishment(ctx, est.ID, models.EstablishmentPatch{StatusID: &closed})
	require.NoError(t, err)
	assert.Equal(t, patched, same)
	f.producer.assertQuiet(t)

	_, err = f.establishments.GetEstablishment(ctx, ids.New[ids.Establishment]())
	requireFailure(t, err, e.NotFound)
}

func TestDeleteEstablishmentInUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	est := f.establishment(t, "Casa Verde")
	_, err := f.phones.CreateEstablishmentPhone(ctx, models.EstablishmentPhoneInput{
		EstablishmentID: est.ID.String(), PhoneNumber: "09175550101",
	})
	require.NoError(t, err)

	err = f.establishments.DeleteEstablishment(ctx, est.ID)
	requireFailure(t, err, e.Conflict, "EstablishmentInUse")

	empty := f.establishment(t, "Casa Roja")
	require.NoError(t, f.establishments.DeleteEstablishment(ctx, empty.ID))
}

func TestEmployeeService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	est := f.establishment(t, "Casa Verde")
	role := f.role(t, "Cashier")
	emp := f.employee(t, "EMP-1", est, role)

	input := models.EmployeeInput{
		EmployeeNumber:  "EMP-1",
		FirstName:       "Ana",
		LastName:        "Reyes",
		Email:           "ana@example.ph",
		StatusID:        1,
		RoleID:          role.ID.String(),
		EstablishmentID: est.ID.String(),
	}
	_, err := f.employees.CreateEmployee(ctx, input)
	requireFailure(t, err, e.Conflict, "DuplicateEmployee")

	missingRole := input
	missingRole.EmployeeNumber = "EMP-2"
	missingRole.RoleID = ids.New[ids.EmployeeRole]().String()
	_, err = f.employees.CreateEmployee(ctx, missingRole)
	requireFailure(t, err, e.NotFound)

	onLeave := 3
	last := "Santos"
	patched, err := f.employees.PatchEmployee(ctx, emp.ID, models.EmployeePatch{StatusID: &onLeave, LastName: &last})
	require.NoError(t, err)
	assert.Equal(t, "Ana Santos", patched.Name.FullName())
	assert.Equal(t, "OnLeave", patched.Status.Name)
	assert.True(t, patched.RoleID.Equal(role.ID))

	err = f.roles.DeleteEmployeeRole(ctx, role.ID)
	requireFailure(t, err, e.Conflict, "RoleInUse")
}

func TestEstablishmentMemberService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	est := f.establishment(t, "Casa Verde")
	other := f.establishment(t, "Casa Roja")
	role := f.role(t, "Cashier")
	emp := f.employee(t, "EMP-1", est, role)
	outsider := f.employee(t, "EMP-9", other, role)

	in := models.EstablishmentMemberInput{
		EstablishmentID:   est.ID.String(),
		EmployeeID:        emp.ID.String(),
		MemberTitle:       "Manager",
		MemberDescription: "Runs the floor",
		MemberTag:         "floor",
	}
	member, err := f.members.CreateEstablishmentMember(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "establishment_member.created", f.producer.next(t).Name())

	_, err = f.members.CreateEstablishmentMember(ctx, in)
	requireFailure(t, err, e.Conflict, "DuplicateMember")

	foreign := in
	foreign.EmployeeID = outsider.ID.String()
	_, err = f.members.CreateEstablishmentMember(ctx, foreign)
	requireFailure(t, err, e.Validation, "EmployeeNotInEstablishment")

	ghost := in
	ghost.EmployeeID = ids.New[ids.Employee]().String()
	_, err = f.members.CreateEstablishmentMember(ctx, ghost)
	requireFailure(t, err, e.NotFound)

	wrongParent := in
	wrongParent.EstablishmentID = other.ID.String()
	_, err = f.members.UpdateEstablishmentMember(ctx, member.ID, wrongParent)
	requireFailure(t, err, e.Unauthorized)

	tag := "kitchen"
	patched, err := f.members.PatchEstablishmentMember(ctx, member.ID, models.EstablishmentMemberPatch{MemberTag: &tag})
	require.NoError(t, err)
	assert.Equal(t, "kitchen", patched.Tag.Tag())
	assert.Equal(t, "Manager", patched.Title.Title())

	err = f.employees.DeleteEmployee(ctx, emp.ID)
	requireFailure(t, err, e.Conflict, "EmployeeInUse")
}

func TestEmployeeRoleAndPlatformServices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	role := f.role(t, "Cashier")
	_, err := f.roles.CreateEmployeeRole(ctx, models.EmployeeRoleInput{RoleName: "Cashier"})
	requireFailure(t, err, e.Conflict, "DuplicateRoleName")

	renamed, err := f.roles.UpdateEmployeeRole(ctx, role.ID, models.EmployeeRoleInput{RoleName: "Head Cashier"})
	require.NoError(t, err)
	assert.Equal(t, "Head Cashier", renamed.RoleName.Name())

	platform, err := f.platforms.CreateSocialMediaPlatform(ctx, models.SocialMediaPlatformInput{Name: "facebook", PlatformURL: "https://facebook.com"})
	require.NoError(t, err)
	_, err = f.platforms.CreateSocialMediaPlatform(ctx, models.SocialMediaPlatformInput{Name: "facebook", PlatformURL: "https://fb.com"})
	requireFailure(t, err, e.Conflict, "DuplicateSocialMediaName")

	url := "https://www.facebook.com"
	moved, err := f.platforms.PatchSocialMediaPlatform(ctx, platform.ID, models.SocialMediaPlatformPatch{PlatformURL: &url})
	require.NoError(t, err)
	assert.Equal(t, "facebook", moved.Name.Name())
	assert.Equal(t, url, moved.Name.PlatformURL())

	require.NoError(t, f.platforms.DeleteSocialMediaPlatform(ctx, platform.ID))
	err = f.platforms.DeleteSocialMediaPlatform(ctx, platform.ID)
	requireFailure(t, err, e.NotFound)
}
