package domain

// Job stores its company twice: Company is the name typed into the form,
// CompanyID is resolved from that name when the job is first created.
// Updates only touch Title, Company and Location, so the two can drift.
type Job struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:100;not null"`
	Company   string `gorm:"size:100;not null"`
	Location  string `gorm:"size:100"`
	CompanyID *uint
}

func (Job) TableName() string { return "job" }

// JobChanges are the fields the update form is allowed to overwrite.
type JobChanges struct {
	Title    string
	Company  string
	Location string
}
