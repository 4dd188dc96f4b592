package services

import (
	"fmt"
	"html"
	"strings"
	"time"

	"career-guide/models"
)

const contactSubjectFallback = "Career Counseling"

// escapeMultiline HTML-escapes s and turns newlines into <br>.
func escapeMultiline(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}

// ContactNotificationEmail is sent to the admin inbox for each submission.
func ContactNotificationEmail(admin string, m models.ContactMessage, at time.Time) Email {
	subject := m.Subject
	if strings.TrimSpace(subject) == "" {
		subject = contactSubjectFallback
	}

	body := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #2563eb; border-bottom: 2px solid #2563eb; padding-bottom: 10px;">New Contact Form Submission</h2>
    <div style="background-color: #f8fafc; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <h3 style="color: #374151; margin-top: 0;">Contact Details:</h3>
        <p><strong>Name:</strong> %s</p>
        <p><strong>Email:</strong> %s</p>
        <p><strong>Subject:</strong> %s</p>
        <p><strong>Message:</strong></p>
        <div style="background-color: white; padding: 15px; border-left: 4px solid #2563eb; margin: 10px 0;">%s</div>
    </div>
    <p style="color: #1e40af;"><strong>Reply to:</strong> %s</p>
    <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 30px 0;">
    <p style="color: #6b7280; font-size: 14px; text-align: center;">
        This email was sent from the Career Counseling App contact form.<br>
        Submitted on: %s
    </p>
</div>`,
		html.EscapeString(m.Name),
		html.EscapeString(m.Email),
		html.EscapeString(subject),
		escapeMultiline(m.Message),
		html.EscapeString(m.Email),
		at.Format(time.RFC1123))

	return Email{
		To:      admin,
		Subject: "New Contact Form Submission - " + subject,
		HTML:    body,
	}
}

// ContactConfirmationEmail thanks the sender and echoes their message.
func ContactConfirmationEmail(m models.ContactMessage, at time.Time) Email {
	body := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <div style="background: linear-gradient(135deg, #2563eb, #3b82f6); color: white; padding: 30px; border-radius: 8px 8px 0 0;">
        <h1 style="margin: 0; font-size: 28px;">Thank You, %s!</h1>
        <p style="margin: 10px 0 0 0; opacity: 0.9;">We've received your message</p>
    </div>
    <div style="background-color: #ffffff; padding: 30px; border: 1px solid #e5e7eb; border-top: none;">
        <p style="color: #374151; font-size: 16px; line-height: 1.6;">
            Thank you for reaching out to us through our Career Counseling App. Our team will review your message shortly.
        </p>
        <div style="background-color: #f8fafc; padding: 20px; border-radius: 8px; margin: 20px 0;">
            <h3 style="color: #374151; margin-top: 0;">Your Message Summary:</h3>
            <p><strong>Name:</strong> %s</p>
            <p><strong>Email:</strong> %s</p>
            <p><strong>Message:</strong></p>
            <div style="background-color: white; padding: 15px; border-left: 4px solid #2563eb; margin: 10px 0;">%s</div>
        </div>
        <ul style="color: #374151; line-height: 1.6;">
            <li>Our team will review your message within 24 hours</li>
            <li>We'll respond to your inquiry at %s</li>
        </ul>
    </div>
    <p style="color: #9ca3af; font-size: 12px; text-align: center;">Sent on: %s</p>
</div>`,
		html.EscapeString(m.Name),
		html.EscapeString(m.Name),
		html.EscapeString(m.Email),
		escapeMultiline(m.Message),
		html.EscapeString(m.Email),
		at.Format(time.RFC1123))

	return Email{
		To:      m.Email,
		Subject: "Thank you for contacting CareerGuide - We'll be in touch soon!",
		HTML:    body,
	}
}
