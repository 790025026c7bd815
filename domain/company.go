package domain

type Company struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"size:100;not null"`
	Description    string `gorm:"size:200"`
	EmployeesCount *int
}

func (Company) TableName() string { return "company" }
