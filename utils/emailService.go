package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"lms/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	// Outgoing email is optional; dev and test environments run without it
	if config.AppConfig == nil || config.AppConfig.EmailSender == "" {
		return nil
	}

	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Brightpath Academy <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	fmt.Println("Email sent successfully to", strings.Join(to, ","))
	return nil
}

// HTML wrapper shared by every outgoing mail
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B3A5C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3A5C; line-height: 1.6; }
			.content h2 { color: #1B3A5C; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #E8A33D; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #E8A33D; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>BRIGHTPATH ACADEMY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Brightpath Academy. All rights reserved.<br>
				Keep learning, keep growing.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Course Enrollment
func SendEnrollmentEmail(email, name, courseName string) {
	subject := "Enrollment Confirmed: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have successfully enrolled in <strong>%s</strong>.</p>
		<p>All course content is now available to you. Complete every item to earn your certificate.</p>
		<div class="info-box">
			<strong>Tip:</strong> Your progress is tracked automatically as you work through the course.
		</div>
	`, name, courseName)

	go SendEmail([]string{email}, subject, getEmailTemplate("Enrollment Successful!", body))
}

// 2. Course Completion
func SendCompletionEmail(email, name, courseName string) {
	subject := "Course Completed: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You have completed <strong>%s</strong>.</p>
		<p>Your completion certificate is ready to be generated from your dashboard.</p>
	`, name, courseName)

	go SendEmail([]string{email}, subject, getEmailTemplate("Congratulations!", body))
}

// 3. Assignment Graded
func SendGradeEmail(email, name, assignmentTitle string, grade, points float64) {
	subject := "Your assignment has been graded"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your submission for <strong>%s</strong> has been graded.</p>
		<div class="info-box">
			<strong>Score:</strong> %.4g out of %.4g points
		</div>
		<p>Open the assignment in your dashboard to read your teacher's feedback.</p>
	`, name, assignmentTitle, grade, points)

	go SendEmail([]string{email}, subject, getEmailTemplate("Assignment Graded", body))
}

// 4. Certificate Issued
func SendCertificateEmail(email, name, courseName, certificateNumber, certificateURL string) {
	subject := "Your certificate for " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your certificate for <strong>%s</strong> has been issued.</p>
		<div class="info-box">
			<strong>Certificate Number:</strong> %s
		</div>
		<p>Use this number whenever the certificate needs to be verified.</p>
		<a class="btn" href="%s">Download Certificate</a>
	`, name, courseName, certificateNumber, certificateURL)

	go SendEmail([]string{email}, subject, getEmailTemplate("Certificate of Completion", body))
}
