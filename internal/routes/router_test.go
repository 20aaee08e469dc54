package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"cert-system/internal/repositories"
	"cert-system/pkg/config"
	"cert-system/pkg/filestorage"
	"cert-system/pkg/service"
	"cert-system/pkg/utils"
	"cert-system/pkg/validation"
)

type envelope struct {
	Status     bool              `json:"status"`
	Body       json.RawMessage   `json:"body"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields"`
	Pagination *struct {
		TotalCount uint64 `json:"total_count"`
	} `json:"pagination"`
}

type testServer struct {
	e     *echo.Echo
	token string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()

	hash, err := utils.HashPassword("secret-pass")
	require.NoError(t, err)
	files, err := filestorage.NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		Server:    config.ServerConfig{RequestTimeout: 5 * time.Second},
		Admin:     config.AdminConfig{Login: "admin", PasswordHash: hash},
		Documents: config.DocumentConfig{DateFormat: "02.01.2006"},
	}

	e := echo.New()
	e.Validator = validation.New()
	InitRouter(e, Deps{
		Store:       repositories.NewMemoryStore(),
		Cache:       repositories.NewMemoryCacheRepository(),
		FileStorage: files,
		JWT:         service.NewJWTService("test-secret", time.Hour, 24*time.Hour, logger),
		Config:      cfg,
		Logger:      logger,
	})
	return &testServer{e: e}
}

func (s *testServer) do(t *testing.T, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if s.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func (s *testServer) login(t *testing.T) {
	t.Helper()
	rec, env := s.do(t, http.MethodPost, "/api/auth/login", `{"login":"admin","password":"secret-pass"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tokens struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Body, &tokens))
	s.token = tokens.AccessToken
}

// seed заполняет справочники и шаблоны этапов и возвращает id первых записей.
func (s *testServer) seed(t *testing.T) map[string]string {
	t.Helper()
	s.login(t)
	rec, _ := s.do(t, http.MethodPost, "/api/admin/bootstrap", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(t, http.MethodPost, "/api/admin/phase-templates/initialize", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	first := func(path string) map[string]interface{} {
		rec, env := s.do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var items []map[string]interface{}
		require.NoError(t, json.Unmarshal(env.Body, &items))
		require.NotEmpty(t, items, path)
		return items[0]
	}
	project := first("/api/projects")
	return map[string]string{
		"company":  first("/api/companies")["id"].(string),
		"customer": project["customer_id"].(string),
		"project":  project["id"].(string),
		"product":  first("/api/products")["id"].(string),
	}
}

func TestAdminRequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/admin/bootstrap", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Status)

	rec, _ = s.do(t, http.MethodPost, "/api/admin/bootstrap", "", map[string]string{echo.HeaderAuthorization: "Token abc"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/auth/login", `{"login":"admin","password":"wrong-pass"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer(t)
	ids := s.seed(t)

	rec, env := s.do(t, http.MethodGet, "/api/customers?withPagination=true", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Status)
	require.NotNil(t, env.Pagination)
	assert.EqualValues(t, 3, env.Pagination.TotalCount)

	rec, env = s.do(t, http.MethodPost, "/api/companies", `{"name":"","email":"bad"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Fields, "name")

	rec, _ = s.do(t, http.MethodGet, "/api/companies/"+ids["company"], "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/companies/000000-00000000", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPhaseTemplatesEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.seed(t)

	rec, env := s.do(t, http.MethodGet, "/api/phase-templates?work_type=house-construction&building_type=two-story", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var templates []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Body, &templates))
	require.Len(t, templates, 1)
	assert.EqualValues(t, 10, templates[0]["phase_count"])

	rec, _ = s.do(t, http.MethodGet, "/api/phase-templates?work_type=bridge", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// DeliveryTestSuite: каждый тест получает свежий сервер с заполненными справочниками.
type DeliveryTestSuite struct {
	suite.Suite
	server *testServer
	ids    map[string]string
}

func (s *DeliveryTestSuite) SetupTest() {
	s.server = newTestServer(s.T())
	s.ids = s.server.seed(s.T())
}

type deliveryBody struct {
	ID             string `json:"id"`
	DeliveryNumber string `json:"delivery_number"`
	CurrentPhase   int    `json:"current_phase"`
	Phases         []struct {
		PhaseNumber int    `json:"phase_number"`
		Name        string `json:"name"`
		IsCompleted bool   `json:"is_completed"`
	} `json:"phases"`
}

func (s *DeliveryTestSuite) create(workType, buildingType string) deliveryBody {
	body := fmt.Sprintf(`{"company_id":%q,"customer_id":%q,"project_id":%q,"work_type":%q,"building_type":%q,"delivery_date":"2025-03-14"}`,
		s.ids["company"], s.ids["customer"], s.ids["project"], workType, buildingType)
	rec, env := s.server.do(s.T(), http.MethodPost, "/api/deliveries", body, nil)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var d deliveryBody
	s.Require().NoError(json.Unmarshal(env.Body, &d))
	return d
}

func (s *DeliveryTestSuite) toggle(id string, number int, completed bool) (*httptest.ResponseRecorder, deliveryBody) {
	rec, env := s.server.do(s.T(), http.MethodPost, fmt.Sprintf("/api/deliveries/%s/phases/%d/toggle", id, number),
		fmt.Sprintf(`{"is_completed":%t}`, completed), nil)
	var d deliveryBody
	if rec.Code == http.StatusOK {
		s.Require().NoError(json.Unmarshal(env.Body, &d))
	}
	return rec, d
}

func (s *DeliveryTestSuite) TestPrecastUsesDefaultTemplate() {
	d := s.create("precast-concrete", "")
	s.Len(d.Phases, 5)
	s.Equal(1, d.CurrentPhase)
	s.Regexp(`^WD-PRECAST-CONCRETE-\d{6}-[0-9a-f]{8}$`, d.DeliveryNumber)

	rec, env := s.server.do(s.T(), http.MethodGet, "/api/deliveries/"+d.ID, "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var stored deliveryBody
	s.Require().NoError(json.Unmarshal(env.Body, &stored))
	s.Equal(d.DeliveryNumber, stored.DeliveryNumber)
	s.Equal(d.Phases, stored.Phases)
}

func (s *DeliveryTestSuite) TestHouseRequiresBuildingType() {
	body := fmt.Sprintf(`{"company_id":%q,"customer_id":%q,"project_id":%q,"work_type":"house-construction","delivery_date":"2025-03-14"}`,
		s.ids["company"], s.ids["customer"], s.ids["project"])
	rec, env := s.server.do(s.T(), http.MethodPost, "/api/deliveries", body, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(env.Fields, "building_type")
}

func (s *DeliveryTestSuite) TestToggleOutOfOrderKeepsCurrentPhase() {
	d := s.create("house-construction", "two-story")
	s.Require().Len(d.Phases, 10)

	rec, d := s.toggle(d.ID, 3, true)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.True(d.Phases[2].IsCompleted)
	s.Equal(1, d.CurrentPhase)

	_, d = s.toggle(d.ID, 1, true)
	_, d = s.toggle(d.ID, 2, true)
	s.Equal(4, d.CurrentPhase)

	_, d = s.toggle(d.ID, 2, false)
	s.Equal(2, d.CurrentPhase)
}

func (s *DeliveryTestSuite) TestPhaseErrors() {
	d := s.create("precast-concrete", "")

	rec, _ := s.toggle(d.ID, 99, true)
	s.Equal(http.StatusNotFound, rec.Code)

	rec, _ = s.server.do(s.T(), http.MethodPost, "/api/deliveries/"+d.ID+"/phases/abc/toggle", `{"is_completed":true}`, nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec, _ = s.toggle("000000-00000000", 1, true)
	s.Equal(http.StatusNotFound, rec.Code)

	// удаление несуществующего этапа ничего не меняет
	rec, env := s.server.do(s.T(), http.MethodDelete, "/api/deliveries/"+d.ID+"/phases/99", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var got struct {
		Phases []json.RawMessage `json:"phases"`
	}
	s.Require().NoError(json.Unmarshal(env.Body, &got))
	s.Len(got.Phases, 5)

	rec, _ = s.server.do(s.T(), http.MethodPost, "/api/deliveries/"+d.ID+"/phases/1/move", `{"direction":"sideways"}`, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *DeliveryTestSuite) TestPhaseEditing() {
	d := s.create("precast-concrete", "")
	path := "/api/deliveries/" + d.ID + "/phases"

	rec, _ := s.server.do(s.T(), http.MethodPost, path, `{"name":"Extra lifting"}`, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = s.server.do(s.T(), http.MethodPost, path+"/6/move", `{"direction":"up"}`, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec, env := s.server.do(s.T(), http.MethodDelete, path+"/1", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var after deliveryBody
	s.Require().NoError(json.Unmarshal(env.Body, &after))
	s.Require().Len(after.Phases, 5)
	s.Equal("Extra lifting", after.Phases[3].Name)
	for i, p := range after.Phases {
		s.Equal(i+1, p.PhaseNumber)
	}
}

func (s *DeliveryTestSuite) TestDocuments() {
	d := s.create("precast-concrete", "")

	rec, _ := s.server.do(s.T(), http.MethodGet, "/api/deliveries/"+d.ID+"/pdf?disposition=inline", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("application/pdf", rec.Header().Get(echo.HeaderContentType))
	s.True(strings.HasPrefix(rec.Header().Get(echo.HeaderContentDisposition), "inline"))
	s.True(strings.HasPrefix(rec.Body.String(), "%PDF"))

	rec, _ = s.server.do(s.T(), http.MethodGet, "/api/deliveries/export", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.True(strings.HasPrefix(rec.Body.String(), "PK"))
}

func TestDeliveryTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryTestSuite))
}

func TestPreviewStaleGeneration(t *testing.T) {
	s := newTestServer(t)
	ids := s.seed(t)

	body := fmt.Sprintf(`{"company_id":%q,"customer_id":%q,"project_id":%q,"product_id":%q,"delivery_date":"2025-03-14"}`,
		ids["company"], ids["customer"], ids["project"], ids["product"])

	rec, _ := s.do(t, http.MethodPost, "/api/selections/tab-1/generation", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(t, http.MethodPost, "/api/selections/tab-1/generation", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stale := map[string]string{"X-Selection-Session": "tab-1", "X-Selection-Generation": "1"}
	rec, _ = s.do(t, http.MethodPost, "/api/certificates/preview", body, stale)
	assert.Equal(t, http.StatusConflict, rec.Code)

	current := map[string]string{"X-Selection-Session": "tab-1", "X-Selection-Generation": "2", "X-Client-ID": "browser-1"}
	rec, env := s.do(t, http.MethodPost, "/api/certificates/preview", body, current)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var preview struct {
		Ready      bool  `json:"ready"`
		Generation int64 `json:"generation"`
	}
	require.NoError(t, json.Unmarshal(env.Body, &preview))
	assert.True(t, preview.Ready)
	assert.EqualValues(t, 2, preview.Generation)

	rec, _ = s.do(t, http.MethodPost, "/api/certificates/preview", body,
		map[string]string{"X-Selection-Session": "tab-1", "X-Selection-Generation": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreferencesEndpoint(t *testing.T) {
	s := newTestServer(t)
	client := map[string]string{"X-Client-ID": "browser-1"}

	rec, env := s.do(t, http.MethodGet, "/api/preferences", "", client)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Body), `"logo_size":"medium"`)

	rec, _ = s.do(t, http.MethodPut, "/api/preferences/logo-size", `{"logo_size":"huge"}`, client)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodPut, "/api/preferences/logo-size", `{"logo_size":"large"}`, client)
	require.Equal(t, http.StatusOK, rec.Code)

	_, env = s.do(t, http.MethodGet, "/api/preferences", "", client)
	assert.Contains(t, string(env.Body), `"logo_size":"large"`)
}
