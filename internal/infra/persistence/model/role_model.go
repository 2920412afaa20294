package model

// RoleModel is the GORM model for the roles table.
type RoleModel struct {
	Base

	RoleName        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	RoleDescription string `gorm:"type:text"`
}

// TableName specifies the table name for RoleModel.
func (RoleModel) TableName() string {
	return "roles"
}

// Columns reports the columns exposed for ordering and searching.
func (RoleModel) Columns() map[string]struct{} {
	cols := baseColumns()
	cols["role_name"] = struct{}{}
	cols["role_description"] = struct{}{}
	return cols
}
