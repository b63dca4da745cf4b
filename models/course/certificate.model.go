package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate statuses for the two-phase issuance flow
const (
	CertificatePending = "PENDING"
	CertificateIssued  = "ISSUED"
	CertificateFailed  = "FAILED"
)

// Certificate records one issuance of a course completion certificate.
// A row is staged as PENDING before the blob upload and confirmed ISSUED
// only after the upload succeeds, so a crash between the two leaves a
// PENDING row for the reconciliation sweep instead of a dangling URL.
// Rows are history: the enrollment's CertificateURL points at the latest.
type Certificate struct {
	gorm.Model
	UserID         uint       `json:"user_id" gorm:"index;not null"`
	CourseID       uint       `json:"course_id" gorm:"index;not null"`
	EnrollmentID   uint       `json:"enrollment_id" gorm:"index;not null"`
	SerialNumber   string     `json:"serial_number" gorm:"unique"`
	StoragePath    string     `json:"storage_path"`
	CertificateURL string     `json:"certificate_url"`
	Status         string     `json:"status" gorm:"default:'PENDING'"` // PENDING, ISSUED, FAILED
	IssuedAt       *time.Time `json:"issued_at"`
	IsDeleted      bool       `gorm:"default:false"`
}
