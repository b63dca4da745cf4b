package utils

import (
	"bytes"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// CertificateData fills the fixed certificate layout
type CertificateData struct {
	StudentName  string
	CourseTitle  string
	SerialNumber string
	CompletedAt  time.Time
}

// RenderCertificatePDF renders the completion certificate. The layout is
// fixed: title block, recipient name, course name, completion date, serial
// number and footer on one landscape A4 page.
func RenderCertificatePDF(data CertificateData) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pageWidth, pageHeight := pdf.GetPageSize()

	// Decorative double border
	pdf.SetDrawColor(27, 58, 92)
	pdf.SetLineWidth(1.2)
	pdf.Rect(8, 8, pageWidth-16, pageHeight-16, "D")
	pdf.SetDrawColor(232, 163, 61)
	pdf.SetLineWidth(0.4)
	pdf.Rect(11, 11, pageWidth-22, pageHeight-22, "D")

	// Title block
	pdf.SetY(30)
	pdf.SetFont("Arial", "B", 26)
	pdf.SetTextColor(27, 58, 92)
	pdf.CellFormat(0, 12, "BRIGHTPATH ACADEMY", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 13)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 7, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetDrawColor(232, 163, 61)
	pdf.SetLineWidth(0.6)
	pdf.Line(pageWidth/2-40, pdf.GetY()+3, pageWidth/2+40, pdf.GetY()+3)
	pdf.Ln(14)

	// Recipient
	pdf.SetFont("Arial", "", 12)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 7, "This is to certify that", "", 1, "C", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(27, 58, 92)
	pdf.CellFormat(0, 12, data.StudentName, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// Course
	pdf.SetFont("Arial", "", 12)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 7, "has successfully completed the course", "", 1, "C", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(27, 58, 92)
	pdf.CellFormat(0, 10, data.CourseTitle, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Completion date
	pdf.SetFont("Arial", "", 12)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 7, "on "+data.CompletedAt.Format("January 2, 2006"), "", 1, "C", false, 0, "")

	// Footer: serial number and verification note
	pdf.SetY(pageHeight - 38)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(27, 58, 92)
	pdf.CellFormat(0, 5, "Certificate No: "+data.SerialNumber, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 5, "This is an official computer-generated document. No signature required.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
