package interfaces

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"jobboard/domain"
)

type JobForm struct {
	Title    string `form:"title" binding:"notblank,max=100"`
	Company  string `form:"company" binding:"notblank,max=100"`
	Location string `form:"location" binding:"max=100"`
}

func jobFormFrom(j *domain.Job) JobForm {
	return JobForm{Title: j.Title, Company: j.Company, Location: j.Location}
}

type CompanyForm struct {
	Name        string `form:"name" binding:"notblank,max=100"`
	Description string `form:"description" binding:"max=200"`
	// Kept as text so an empty value maps to NULL instead of 0.
	EmployeesCount string `form:"employees_count" binding:"omitempty,number,max=9"`
}

func (f CompanyForm) Company() domain.Company {
	c := domain.Company{Name: f.Name, Description: f.Description}
	if n, err := strconv.Atoi(strings.TrimSpace(f.EmployeesCount)); err == nil {
		c.EmployeesCount = &n
	}
	return c
}

// FieldErrors maps a form field name to its first validation message.
type FieldErrors map[string]string

var (
	validationOnce sync.Once
	validationErr  error
	translator     ut.Translator
)

var messages = map[string]string{
	"required": "This field is required.",
	"notblank": "This field is required.",
	"max":      "Field cannot be longer than {0} characters.",
	"number":   "Not a valid integer value.",
}

// setupValidation configures gin's validator once per process.
func setupValidation() error {
	validationOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validationErr = errors.New("gin validator is not go-playground/validator")
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			validationErr = err
			return
		}

		locale := en.New()
		translator, _ = ut.New(locale, locale).GetTranslator("en")
		if err := en_translations.RegisterDefaultTranslations(v, translator); err != nil {
			validationErr = err
			return
		}
		for tag, text := range messages {
			key := "form-" + tag
			err := v.RegisterTranslation(tag, translator,
				func(t ut.Translator) error { return t.Add(key, text, true) },
				func(t ut.Translator, fe validator.FieldError) string {
					msg, err := t.T(key, fe.Param())
					if err != nil {
						return fe.Error()
					}
					return msg
				})
			if err != nil {
				validationErr = fmt.Errorf("register %s translation: %w", tag, err)
				return
			}
		}
	})
	return validationErr
}

// bindForm decodes the posted form into dst. Validation failures come back
// as FieldErrors; any other error means the request itself was unreadable.
func bindForm(c *gin.Context, dst any) (FieldErrors, error) {
	err := c.ShouldBindWith(dst, binding.Form)
	if err == nil {
		return nil, nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, err
	}
	out := make(FieldErrors, len(ve))
	for _, fe := range ve {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = fe.Translate(translator)
		}
	}
	return out, nil
}
