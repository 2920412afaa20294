package model

import (
	"time"

	"github.com/google/uuid"
)

// OTPModel is the GORM model for the otps table. Each user holds at most
// one live code per purpose, enforced by the composite unique index.
type OTPModel struct {
	Base

	UserID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_otp_user_purpose"`
	Purpose    string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_otp_user_purpose"`
	Code       string     `gorm:"type:varchar(10);not null"`
	Expiry     *time.Time `gorm:""`
	IsVerified bool       `gorm:"not null;default:false"`
}

// TableName specifies the table name for OTPModel.
func (OTPModel) TableName() string {
	return "otps"
}

// Columns reports the columns exposed for ordering and searching.
func (OTPModel) Columns() map[string]struct{} {
	cols := baseColumns()
	cols["user_id"] = struct{}{}
	cols["purpose"] = struct{}{}
	cols["is_verified"] = struct{}{}
	return cols
}
