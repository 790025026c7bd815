package interfaces

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// Notices travel as a code in the redirect URL rather than in a session,
// so every page render is a function of the request alone.
const flashParam = "flash"

const (
	flashCompanyCreated = "company_created"
	flashJobCreated     = "job_created"
	flashJobUpdated     = "job_updated"
	flashJobDeleted     = "job_deleted"
)

const msgCompanyUnknown = "Company not found. Please add it first."

var flashMessages = map[string]string{
	flashCompanyCreated: "Company created successfully!",
	flashJobCreated:     "Job created successfully!",
	flashJobUpdated:     "Job updated successfully!",
	flashJobDeleted:     "Job deleted successfully!",
}

func flashes(c *gin.Context) []string {
	if msg, ok := flashMessages[c.Query(flashParam)]; ok {
		return []string{msg}
	}
	return nil
}

func redirectWithFlash(c *gin.Context, path, code string) {
	c.Redirect(http.StatusSeeOther, path+"?"+url.Values{flashParam: {code}}.Encode())
}
