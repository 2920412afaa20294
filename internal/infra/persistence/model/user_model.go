package model

// UserModel is the GORM model for the users table.
type UserModel struct {
	Base

	FirstName        string `gorm:"type:varchar(100);not null"`
	LastName         string `gorm:"type:varchar(100);not null"`
	ContactNo        string `gorm:"type:varchar(20);uniqueIndex;not null"`
	Username         string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email            string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password         string `gorm:"type:varchar(255);not null"`
	Address          string `gorm:"type:text"`
	City             string `gorm:"type:varchar(100)"`
	State            string `gorm:"type:varchar(100)"`
	Country          string `gorm:"type:varchar(100)"`
	PostalCode       string `gorm:"type:varchar(20)"`
	ProfileImagePath string `gorm:"type:text"`
	IsActive         bool   `gorm:"not null;default:true"`
}

// TableName specifies the table name for UserModel.
func (UserModel) TableName() string {
	return "users"
}

// Columns reports the columns exposed for ordering and searching.
func (UserModel) Columns() map[string]struct{} {
	cols := baseColumns()
	for _, c := range []string{
		"first_name", "last_name", "contact_no", "username", "email",
		"address", "city", "state", "country", "postal_code", "is_active",
	} {
		cols[c] = struct{}{}
	}
	return cols
}
