package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/testnest/admin/internal/admin/auth"
	"github.com/testnest/admin/internal/admin/cache"
	"github.com/testnest/admin/internal/admin/controller"
	"github.com/testnest/admin/internal/admin/db"
	"github.com/testnest/admin/internal/admin/events"
)

const testSecret = "test-secret"

// api is an in-process admin API over sqlite and miniredis.
type api struct {
	t       *testing.T
	handler http.Handler
	redis   *miniredis.Miniredis
	token   string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	logger := zaptest.NewLogger(t)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	repo, err := db.Open(gdb)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	responseCache := cache.New(client, time.Minute, logger)
	publisher := events.PublisherFunc(responseCache.Evict)

	services := Services{
		Employees:              controller.NewEmployeeService(repo, publisher, logger),
		Establishments:         controller.NewEstablishmentService(repo, publisher, logger),
		EstablishmentAddresses: controller.NewEstablishmentAddressService(repo, publisher, logger),
		EstablishmentContacts:  controller.NewEstablishmentContactService(repo, publisher, logger),
		EstablishmentPhones:    controller.NewEstablishmentPhoneService(repo, publisher, logger),
		EstablishmentMembers:   controller.NewEstablishmentMemberService(repo, publisher, logger),
		EmployeeRoles:          controller.NewEmployeeRoleService(repo, publisher, logger),
		SocialMediaPlatforms:   controller.NewSocialMediaPlatformService(repo, publisher, logger),
	}
	mux := runtime.NewServeMux()
	require.NoError(t, NewHandler(services, responseCache, logger).Register(mux))

	token, err := auth.GenerateToken("admin", testSecret)
	require.NoError(t, err)

	return &api{
		t:       t,
		handler: RequestLogger(auth.HTTPMiddleware(mux, testSecret), logger),
		redis:   mr,
		token:   token,
	}
}

func (a *api) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(a.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if method != http.MethodGet {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (a *api) createEstablishment(name string) EstablishmentResponse {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/establishments", EstablishmentRequest{
		EstablishmentName:     name,
		EstablishmentEmail:    "hello@example.ph",
		EstablishmentStatusID: 2,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[EstablishmentResponse](a.t, rec)
}

func problemCodes(p Problem) []string {
	codes := make([]string, 0, len(p.Errors))
	for _, err := range p.Errors {
		codes = append(codes, err.Code)
	}
	return codes
}

func TestEstablishmentRoutes(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/api/establishments", EstablishmentRequest{
		EstablishmentName:     "Casa Verde",
		EstablishmentEmail:    "hello@example.ph",
		EstablishmentStatusID: 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[EstablishmentResponse](t, rec)
	assert.Equal(t, "/api/establishments/"+created.EstablishmentID, rec.Header().Get("Location"))
	assert.Equal(t, "Active", created.EstablishmentStatus)

	rec = a.do(http.MethodGet, rec.Header().Get("Location"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[EstablishmentResponse](t, rec))

	rec = a.do(http.MethodPost, "/api/establishments", EstablishmentRequest{
		EstablishmentName:     "Casa Verde",
		EstablishmentEmail:    "hello@example.ph",
		EstablishmentStatusID: 2,
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	conflict := decode[Problem](t, rec)
	assert.Equal(t, "Conflict", conflict.Title)
	assert.Equal(t, []string{"DuplicateEstablishment"}, problemCodes(conflict))

	rec = a.do(http.MethodPost, "/api/establishments", EstablishmentRequest{
		EstablishmentName:     "x",
		EstablishmentEmail:    "bad",
		EstablishmentStatusID: 9,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	invalid := decode[Problem](t, rec)
	assert.Equal(t, "Validation Error", invalid.Title)
	assert.Equal(t, "Validation failed.", invalid.Detail)
	assert.Equal(t, []string{"InvalidLength", "InvalidEmailFormat", "InvalidEstablishmentStatus"}, problemCodes(invalid))

	rec = a.do(http.MethodPatch, "/api/establishments/"+created.EstablishmentID,
		`[{"op":"replace","path":"/establishmentStatusId","value":4}]`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	patched := decode[EstablishmentResponse](t, rec)
	assert.Equal(t, "Closed", patched.EstablishmentStatus)
	assert.Equal(t, "Casa Verde", patched.EstablishmentName)

	rec = a.do(http.MethodPatch, "/api/establishments/"+created.EstablishmentID, `{"op":"replace"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"InvalidPatchDocument"}, problemCodes(decode[Problem](t, rec)))

	rec = a.do(http.MethodDelete, "/api/establishments/"+created.EstablishmentID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(http.MethodGet, "/api/establishments?establishmentId="+created.EstablishmentID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Resource not found.", decode[Problem](t, rec).Detail)
}

func TestEstablishmentPhoneRoutes(t *testing.T) {
	a := newAPI(t)
	est := a.createEstablishment("Casa Verde")
	other := a.createEstablishment("Casa Roja")

	rec := a.do(http.MethodPost, "/api/establishmentphones", EstablishmentPhoneRequest{
		EstablishmentID: est.EstablishmentID, PhoneNumber: "09175550101", IsPrimary: true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	primary := decode[EstablishmentPhoneResponse](t, rec)

	rec = a.do(http.MethodPost, "/api/establishmentphones", EstablishmentPhoneRequest{
		EstablishmentID: est.EstablishmentID, PhoneNumber: "09175550102",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	second := decode[EstablishmentPhoneResponse](t, rec)

	rec = a.do(http.MethodGet, "/api/establishmentphones?establishmentId="+est.EstablishmentID+"&pageSize=1&sortBy=phoneNumber", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decode[struct {
		TotalCount int64                        `json:"totalCount"`
		TotalPages int                          `json:"totalPages"`
		Data       []EstablishmentPhoneResponse `json:"data"`
		Links      Links                        `json:"links"`
	}](t, rec)
	assert.Equal(t, int64(2), page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "09175550101", page.Data[0].PhoneNumber)
	require.NotNil(t, page.Links.Next)
	assert.Equal(t,
		"/api/establishmentphones?pageNumber=2&pageSize=1&sortBy=phoneNumber&sortOrder=asc&establishmentId="+est.EstablishmentID,
		*page.Links.Next)
	assert.Nil(t, page.Links.Previous)

	rec = a.do(http.MethodPatch, "/api/establishmentphones/"+second.EstablishmentPhoneID,
		`[{"op":"replace","path":"/isPrimary","value":true}]`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[EstablishmentPhoneResponse](t, rec).IsPrimary)

	rec = a.do(http.MethodGet, "/api/establishmentphones?establishmentPhoneId="+primary.EstablishmentPhoneID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[EstablishmentPhoneResponse](t, rec).IsPrimary, "promotion demotes the previous primary")

	rec = a.do(http.MethodPut, "/api/establishmentphones/"+primary.EstablishmentPhoneID, EstablishmentPhoneRequest{
		EstablishmentID: other.EstablishmentID, PhoneNumber: "09175550101",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Operation not permitted.", decode[Problem](t, rec).Detail)

	rec = a.do(http.MethodDelete, "/api/establishmentphones/"+second.EstablishmentPhoneID, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"DeletionNotAllowed"}, problemCodes(decode[Problem](t, rec)))

	rec = a.do(http.MethodGet, "/api/establishmentphones?establishmentId="+other.EstablishmentID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "an empty page is not found")
}

func TestSingleReadsAreCached(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/api/employeeroles", EmployeeRoleRequest{RoleName: "Cashier"})
	require.Equal(t, http.StatusCreated, rec.Code)
	role := decode[EmployeeRoleResponse](t, rec)
	key := cache.Key(events.EntityEmployeeRole, role.EmployeeRoleID)

	rec = a.do(http.MethodGet, "/api/employeeroles?employeeRoleId="+role.EmployeeRoleID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, a.redis.Exists(key))

	rec = a.do(http.MethodPut, "/api/employeeroles/"+role.EmployeeRoleID, EmployeeRoleRequest{RoleName: "Head Cashier"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, a.redis.Exists(key), "updates evict the cached copy")

	rec = a.do(http.MethodGet, "/api/employeeroles/"+role.EmployeeRoleID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Head Cashier", decode[EmployeeRoleResponse](t, rec).RoleName)
}

func TestCachedSiblingFollowsPromotion(t *testing.T) {
	a := newAPI(t)
	est := a.createEstablishment("Casa Verde")

	rec := a.do(http.MethodPost, "/api/establishmentphones", EstablishmentPhoneRequest{
		EstablishmentID: est.EstablishmentID, PhoneNumber: "09175550101", IsPrimary: true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decode[EstablishmentPhoneResponse](t, rec)
	rec = a.do(http.MethodPost, "/api/establishmentphones", EstablishmentPhoneRequest{
		EstablishmentID: est.EstablishmentID, PhoneNumber: "09175550102",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	second := decode[EstablishmentPhoneResponse](t, rec)

	rec = a.do(http.MethodGet, "/api/establishmentphones/"+first.EstablishmentPhoneID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, a.redis.Exists(cache.Key(events.EntityEstablishmentPhone, first.EstablishmentPhoneID)))

	rec = a.do(http.MethodPatch, "/api/establishmentphones/"+second.EstablishmentPhoneID,
		`[{"op":"replace","path":"/isPrimary","value":true}]`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do(http.MethodGet, "/api/establishmentphones/"+first.EstablishmentPhoneID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[EstablishmentPhoneResponse](t, rec).IsPrimary, "the demoted phone is not served from a stale cache entry")

	rec = a.do(http.MethodPatch, "/api/establishmentphones/"+second.EstablishmentPhoneID,
		`[{"op":"replace","path":"/isPrimary","value":false}]`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.False(t, decode[EstablishmentPhoneResponse](t, rec).IsPrimary)

	rec = a.do(http.MethodGet, "/api/establishmentphones/"+second.EstablishmentPhoneID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[EstablishmentPhoneResponse](t, rec).IsPrimary)
}

func TestMutationsRequireToken(t *testing.T) {
	a := newAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/employeeroles", bytes.NewBufferString(`{"roleName":"Cashier"}`))
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMalformedRequests(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/api/socialmediaplatforms", `{"name":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"InvalidRequestBody"}, problemCodes(decode[Problem](t, rec)))

	rec = a.do(http.MethodGet, "/api/employees/not-a-guid", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"InvalidGuidFormat"}, problemCodes(decode[Problem](t, rec)))

	rec = a.do(http.MethodGet, "/api/employees?pageSize=zero&employeeStatusId=x", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"InvalidPageSize", "InvalidFilter"}, problemCodes(decode[Problem](t, rec)))
}
