package interfaces

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobboard/domain"
)

type CompanyStore interface {
	Get(ctx context.Context, id uint) (*domain.Company, error)
	Create(ctx context.Context, c *domain.Company) error
	Jobs(ctx context.Context, companyID uint) ([]domain.Job, error)
}

type JobStore interface {
	List(ctx context.Context) ([]domain.Job, error)
	Get(ctx context.Context, id uint) (*domain.Job, error)
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, id uint, changes domain.JobChanges) (*domain.Job, error)
	Delete(ctx context.Context, id uint) error
}

type HTTPHandler struct {
	Companies CompanyStore
	Jobs      JobStore
	logger    *zap.Logger
}

func NewHTTPHandler(router gin.IRoutes, companies CompanyStore, jobs JobStore, logger *zap.Logger) *HTTPHandler {
	h := &HTTPHandler{Companies: companies, Jobs: jobs, logger: logger}

	router.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/jobs") })

	router.GET("/company/create", h.NewCompany)
	router.POST("/company/create", h.CreateCompany)
	router.GET("/company/:id", h.CompanyDetails)

	router.GET("/jobs", h.ListJobs)
	router.GET("/jobs/create", h.NewJob)
	router.POST("/jobs/create", h.CreateJob)
	router.GET("/job/:id", h.JobDetails)
	router.GET("/job/update/:id", h.EditJob)
	router.POST("/job/update/:id", h.UpdateJob)
	// GET is kept for old links; it is not safe against prefetchers.
	// The templates submit POST.
	router.GET("/job/delete/:id", h.DeleteJob)
	router.POST("/job/delete/:id", h.DeleteJob)

	return h
}

func notFound(c *gin.Context) {
	c.String(http.StatusNotFound, "404 page not found")
}

// pathID parses :id. Anything that is not a plain unsigned integer is
// treated like a missing row.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		notFound(c)
		return 0, false
	}
	return uint(id), true
}

// fail answers 404 for missing rows and 500 for everything else.
func (h *HTTPHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrJobNotFound) || errors.Is(err, domain.ErrCompanyNotFound) {
		notFound(c)
		return
	}
	h.logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	_ = c.Error(err)
	c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// CompanyDetails GET /company/:id
func (h *HTTPHandler) CompanyDetails(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	company, err := h.Companies.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	jobs, err := h.Companies.Jobs(c.Request.Context(), company.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "company_details.html", companyDetailView{
		page:    page{Title: company.Name, Flashes: flashes(c)},
		Company: company,
		Jobs:    jobs,
	})
}

// NewCompany GET /company/create
func (h *HTTPHandler) NewCompany(c *gin.Context) {
	c.HTML(http.StatusOK, "create_company.html", companyFormView{page: page{Title: "Add a company"}})
}

// CreateCompany POST /company/create
func (h *HTTPHandler) CreateCompany(c *gin.Context) {
	var form CompanyForm
	errs, err := bindForm(c, &form)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		c.HTML(http.StatusUnprocessableEntity, "create_company.html", companyFormView{
			page:   page{Title: "Add a company"},
			Form:   form,
			Errors: errs,
		})
		return
	}

	company := form.Company()
	if err := h.Companies.Create(c.Request.Context(), &company); err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("company created", zap.Uint("id", company.ID), zap.String("name", company.Name))
	redirectWithFlash(c, "/company/"+strconv.FormatUint(uint64(company.ID), 10), flashCompanyCreated)
}

// ListJobs GET /jobs
func (h *HTTPHandler) ListJobs(c *gin.Context) {
	jobs, err := h.Jobs.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "jobs.html", jobListView{
		page: page{Title: "Jobs", Flashes: flashes(c)},
		Jobs: jobs,
	})
}

// JobDetails GET /job/:id
func (h *HTTPHandler) JobDetails(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	job, err := h.Jobs.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	view := jobDetailView{page: page{Title: job.Title, Flashes: flashes(c)}, Job: job}
	if job.CompanyID != nil {
		company, err := h.Companies.Get(c.Request.Context(), *job.CompanyID)
		switch {
		case err == nil:
			view.LinkedCompany = company
		case !errors.Is(err, domain.ErrCompanyNotFound):
			h.fail(c, err)
			return
		}
	}
	c.HTML(http.StatusOK, "job_details.html", view)
}

func newJobView(form JobForm, errs FieldErrors) jobFormView {
	return jobFormView{
		page:   page{Title: "Post a job"},
		Action: "/jobs/create",
		Submit: "Create Job",
		Form:   form,
		Errors: errs,
	}
}

// NewJob GET /jobs/create
func (h *HTTPHandler) NewJob(c *gin.Context) {
	c.HTML(http.StatusOK, "create_job.html", newJobView(JobForm{}, nil))
}

// CreateJob POST /jobs/create
func (h *HTTPHandler) CreateJob(c *gin.Context) {
	var form JobForm
	errs, err := bindForm(c, &form)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		c.HTML(http.StatusUnprocessableEntity, "create_job.html", newJobView(form, errs))
		return
	}

	job := domain.Job{Title: form.Title, Company: form.Company, Location: form.Location}
	err = h.Jobs.Create(c.Request.Context(), &job)
	if errors.Is(err, domain.ErrCompanyNameUnknown) {
		// Submitted values are dropped; the form comes back empty.
		view := newJobView(JobForm{}, nil)
		view.Flashes = []string{msgCompanyUnknown}
		c.HTML(http.StatusUnprocessableEntity, "create_job.html", view)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("job created", zap.Uint("id", job.ID), zap.Uintp("company_id", job.CompanyID))
	redirectWithFlash(c, "/jobs", flashJobCreated)
}

func editJobView(job *domain.Job, form JobForm, errs FieldErrors) jobFormView {
	return jobFormView{
		page:   page{Title: "Edit " + job.Title},
		Action: "/job/update/" + strconv.FormatUint(uint64(job.ID), 10),
		Submit: "Update Job",
		Form:   form,
		Errors: errs,
		Job:    job,
	}
}

// EditJob GET /job/update/:id
func (h *HTTPHandler) EditJob(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	job, err := h.Jobs.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "update_job.html", editJobView(job, jobFormFrom(job), nil))
}

// UpdateJob POST /job/update/:id
func (h *HTTPHandler) UpdateJob(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	job, err := h.Jobs.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	var form JobForm
	errs, err := bindForm(c, &form)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		c.HTML(http.StatusUnprocessableEntity, "update_job.html", editJobView(job, form, errs))
		return
	}

	// company_id is not re-derived from the new company text.
	_, err = h.Jobs.Update(c.Request.Context(), id, domain.JobChanges{
		Title:    form.Title,
		Company:  form.Company,
		Location: form.Location,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("job updated", zap.Uint("id", id))
	redirectWithFlash(c, "/jobs", flashJobUpdated)
}

// DeleteJob GET|POST /job/delete/:id
func (h *HTTPHandler) DeleteJob(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Jobs.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("job deleted", zap.Uint("id", id))
	redirectWithFlash(c, "/jobs", flashJobDeleted)
}
