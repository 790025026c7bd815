package interfaces

import (
	"embed"
	"html/template"

	"jobboard/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"deref": func(n *int) any {
			if n == nil {
				return ""
			}
			return *n
		},
		"fieldOf": fieldOf,
	}).ParseFS(templatesFS, "templates/*.html")
}

type field struct {
	Name  string
	Label string
	Value string
	Error string
}

func fieldOf(name, label, value string, errs FieldErrors) field {
	return field{Name: name, Label: label, Value: value, Error: errs[name]}
}

type page struct {
	Title   string
	Flashes []string
}

type jobListView struct {
	page
	Jobs []domain.Job
}

type jobDetailView struct {
	page
	Job *domain.Job
	// LinkedCompany is resolved from company_id and may be nil.
	LinkedCompany *domain.Company
}

type jobFormView struct {
	page
	Action string
	Submit string
	Form   JobForm
	Errors FieldErrors
	Job    *domain.Job
}

type companyDetailView struct {
	page
	Company *domain.Company
	Jobs    []domain.Job
}

type companyFormView struct {
	page
	Form   CompanyForm
	Errors FieldErrors
}
