package utils

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCertificatePDF(t *testing.T) {
	pdf, err := RenderCertificatePDF(CertificateData{
		StudentName:  "Asha Verma",
		CourseTitle:  "Linear Algebra",
		SerialNumber: "CERT-1-2-ABCD1234",
		CompletedAt:  time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output must be a PDF document")
	assert.Greater(t, len(pdf), 1000, "document should not be empty")
}

func TestRenderCertificatePDFLongTitle(t *testing.T) {
	pdf, err := RenderCertificatePDF(CertificateData{
		StudentName:  "Vikram Singh",
		CourseTitle:  "Advanced Data Structures and Algorithm Design for Distributed Systems",
		SerialNumber: "CERT-3-4-DEADBEEF",
		CompletedAt:  time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
