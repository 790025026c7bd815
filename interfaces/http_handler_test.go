package interfaces

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobboard/domain"
	"jobboard/infrastructure"
)

type HTTPHandlerSuite struct {
	suite.Suite

	db     *gorm.DB
	router *gin.Engine
}

func TestHTTPHandlerSuite(t *testing.T) {
	suite.Run(t, new(HTTPHandlerSuite))
}

func (s *HTTPHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	require := s.Require()

	cfg := infrastructure.DefaultConfig()
	cfg.DBDSN = ":memory:"
	db, err := infrastructure.NewConnection(cfg, zap.NewNop())
	require.NoError(err)
	s.T().Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	_, err = infrastructure.NewMigrator(db, infrastructure.Migrations, zap.NewNop()).Up(context.Background())
	require.NoError(err)

	metrics, err := infrastructure.NewMetrics(db)
	require.NoError(err)

	s.db = db
	s.router, err = NewRouter(RouterOptions{DB: db, Logger: zap.NewNop(), Metrics: metrics})
	require.NoError(err)
}

func (s *HTTPHandlerSuite) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (s *HTTPHandlerSuite) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HTTPHandlerSuite) createCompany(name string) domain.Company {
	w := s.post("/company/create", url.Values{"name": {name}})
	s.Require().Equal(http.StatusSeeOther, w.Code)
	var c domain.Company
	s.Require().NoError(s.db.Last(&c).Error)
	return c
}

func (s *HTTPHandlerSuite) createJob(title, company string) domain.Job {
	w := s.post("/jobs/create", url.Values{"title": {title}, "company": {company}, "location": {"Remote"}})
	s.Require().Equal(http.StatusSeeOther, w.Code)
	var j domain.Job
	s.Require().NoError(s.db.Last(&j).Error)
	return j
}

func (s *HTTPHandlerSuite) jobCount() int64 {
	var n int64
	s.Require().NoError(s.db.Model(&domain.Job{}).Count(&n).Error)
	return n
}

func (s *HTTPHandlerSuite) TestCreateCompanyRedirectsToDetails() {
	w := s.post("/company/create", url.Values{
		"name":            {"Acme"},
		"description":     {"Anvils and rocket skates"},
		"employees_count": {"120"},
	})
	s.Equal(http.StatusSeeOther, w.Code)

	var c domain.Company
	s.Require().NoError(s.db.First(&c).Error)
	s.Equal("Acme", c.Name)
	s.Require().NotNil(c.EmployeesCount)
	s.Equal(120, *c.EmployeesCount)

	loc := w.Header().Get("Location")
	s.Equal("/company/1?flash=company_created", loc)

	page := s.get(loc)
	s.Equal(http.StatusOK, page.Code)
	body := page.Body.String()
	s.Contains(body, "Company created successfully!")
	s.Contains(body, "Acme")
	s.Contains(body, "Anvils and rocket skates")
	s.Contains(body, "120")
}

func (s *HTTPHandlerSuite) TestCreateCompanyValidation() {
	w := s.post("/company/create", url.Values{"name": {"   "}, "employees_count": {"lots"}, "description": {"kept"}})
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	s.Contains(body, "This field is required.")
	s.Contains(body, "Not a valid integer value.")
	s.Contains(body, `value="kept"`)

	var n int64
	s.Require().NoError(s.db.Model(&domain.Company{}).Count(&n).Error)
	s.Zero(n)
}

func (s *HTTPHandlerSuite) TestCreateCompanyEmptyEmployeesIsNull() {
	c := s.createCompany("Initech")
	s.Nil(c.EmployeesCount)
}

func (s *HTTPHandlerSuite) TestCompanyDetailsNotFound() {
	s.Equal(http.StatusNotFound, s.get("/company/99").Code)
	s.Equal(http.StatusNotFound, s.get("/company/abc").Code)
}

func (s *HTTPHandlerSuite) TestCompanyDetailsListsLinkedJobs() {
	c := s.createCompany("Acme")
	s.createJob("Welder", "Acme")

	w := s.get("/company/1")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Welder")
	s.Equal("Acme", c.Name)
}

func (s *HTTPHandlerSuite) TestCreateJobUnknownCompany() {
	s.createCompany("Acme")

	w := s.post("/jobs/create", url.Values{"title": {"Engineer"}, "company": {"Globex"}, "location": {"Springfield"}})
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	s.Contains(body, "Company not found. Please add it first.")
	s.NotContains(body, "Springfield")
	s.NotContains(body, `value="Engineer"`)
	s.Zero(s.jobCount())
}

func (s *HTTPHandlerSuite) TestCreateJobLinksCompany() {
	c := s.createCompany("Acme")

	w := s.post("/jobs/create", url.Values{"title": {"Engineer"}, "company": {"Acme"}})
	s.Equal(http.StatusSeeOther, w.Code)
	s.Equal("/jobs?flash=job_created", w.Header().Get("Location"))

	var j domain.Job
	s.Require().NoError(s.db.First(&j).Error)
	s.Require().NotNil(j.CompanyID)
	s.Equal(c.ID, *j.CompanyID)

	list := s.get("/jobs?flash=job_created")
	s.Contains(list.Body.String(), "Job created successfully!")
}

func (s *HTTPHandlerSuite) TestCreateJobValidation() {
	w := s.post("/jobs/create", url.Values{"title": {""}, "company": {"Acme"}})
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	s.Contains(body, "This field is required.")
	s.Contains(body, `value="Acme"`)

	w = s.post("/jobs/create", url.Values{"title": {strings.Repeat("x", 101)}, "company": {"Acme"}})
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Contains(w.Body.String(), "Field cannot be longer than 100 characters.")
	s.Zero(s.jobCount())
}

func (s *HTTPHandlerSuite) TestJobDetails() {
	s.createCompany("Acme")
	j := s.createJob("Engineer", "Acme")

	w := s.get("/job/1")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Engineer")
	s.Contains(w.Body.String(), `href="/company/1"`)
	s.EqualValues(1, j.ID)

	s.Equal(http.StatusNotFound, s.get("/job/2").Code)
	s.Equal(http.StatusNotFound, s.get("/job/-1").Code)
}

func (s *HTTPHandlerSuite) TestUpdateJobFormIsPrefilled() {
	s.createCompany("Acme")
	s.createJob("Engineer", "Acme")

	w := s.get("/job/update/1")
	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Contains(body, `value="Engineer"`)
	s.Contains(body, `value="Remote"`)
	s.Contains(body, "Update Job")

	s.Equal(http.StatusNotFound, s.get("/job/update/9").Code)
}

func (s *HTTPHandlerSuite) TestUpdateJobDrift() {
	c := s.createCompany("Acme")
	s.createJob("Engineer", "Acme")

	w := s.post("/job/update/1", url.Values{"title": {"Lead"}, "company": {"No Such Co"}, "location": {"Mars"}})
	s.Equal(http.StatusSeeOther, w.Code)
	s.Equal("/jobs?flash=job_updated", w.Header().Get("Location"))

	var j domain.Job
	s.Require().NoError(s.db.First(&j, 1).Error)
	s.Equal("Lead", j.Title)
	s.Equal("No Such Co", j.Company)
	s.Equal("Mars", j.Location)
	s.Require().NotNil(j.CompanyID)
	s.Equal(c.ID, *j.CompanyID)
}

func (s *HTTPHandlerSuite) TestUpdateJobValidation() {
	s.createCompany("Acme")
	s.createJob("Engineer", "Acme")

	w := s.post("/job/update/1", url.Values{"title": {"Lead"}, "company": {""}})
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Contains(w.Body.String(), `value="Lead"`)

	var j domain.Job
	s.Require().NoError(s.db.First(&j, 1).Error)
	s.Equal("Engineer", j.Title)

	s.Equal(http.StatusNotFound, s.post("/job/update/9", url.Values{"title": {"a"}, "company": {"b"}}).Code)
}

func (s *HTTPHandlerSuite) TestDeleteJob() {
	s.createCompany("Acme")
	s.createJob("Engineer", "Acme")
	s.createJob("Welder", "Acme")

	w := s.get("/job/delete/1")
	s.Equal(http.StatusSeeOther, w.Code)
	s.Equal("/jobs?flash=job_deleted", w.Header().Get("Location"))
	s.Equal(http.StatusNotFound, s.get("/job/1").Code)

	w = s.post("/job/delete/2", url.Values{})
	s.Equal(http.StatusSeeOther, w.Code)
	s.Zero(s.jobCount())

	s.Equal(http.StatusNotFound, s.get("/job/delete/1").Code)
}

func (s *HTTPHandlerSuite) TestListJobs() {
	s.createCompany("Acme")
	titles := []string{"Engineer", "Welder", "Designer", "Tester"}
	for _, t := range titles {
		s.createJob(t, "Acme")
	}

	w := s.get("/jobs")
	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	for _, t := range titles {
		s.Contains(body, t)
	}
	s.Equal(len(titles), strings.Count(body, `href="/job/update/`))
	s.NotContains(body, "successfully")
}

func (s *HTTPHandlerSuite) TestUnknownFlashCodeIgnored() {
	w := s.get("/jobs?flash=bogus")
	s.Equal(http.StatusOK, w.Code)
	s.NotContains(w.Body.String(), `class="flash"`)
}

func (s *HTTPHandlerSuite) TestFormsRender() {
	w := s.get("/jobs/create")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Create Job")

	w = s.get("/company/create")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Create Company")
}

func (s *HTTPHandlerSuite) TestRootRedirectsAndNoRoute() {
	w := s.get("/")
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/jobs", w.Header().Get("Location"))

	w = s.get("/nope")
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("404 page not found", w.Body.String())
}

func (s *HTTPHandlerSuite) TestHealthAndMetrics() {
	w := s.get("/healthz")
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())

	s.get("/jobs")
	w = s.get("/metrics")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `jobboard_http_requests_total{method="GET",route="/jobs",status="200"} 1`)
	s.Contains(w.Body.String(), `go_sql_max_open_connections{db_name="jobboard"} 1`)
}
