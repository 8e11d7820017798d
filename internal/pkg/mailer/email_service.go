package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendTaskAssigned(toEmail, taskTitle, actorName string) error
	SendTaskUpdated(toEmail, taskTitle, actorName string) error
	SendTaskCompleted(toEmail, taskTitle string, createdOn, completedTime time.Time) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
	}
}

func (s *emailService) send(toEmail, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return s.dialer.DialAndSend(m)
}

func (s *emailService) SendTaskAssigned(toEmail, taskTitle, actorName string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New Task Assignment</h2>
			<p>%s assigned you the task:</p>
			<h3>%s</h3>
			<p>Log in to see the details.</p>
		</div>
	`, actorName, taskTitle)

	return s.send(toEmail, "Task Assigned", body)
}

func (s *emailService) SendTaskUpdated(toEmail, taskTitle, actorName string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Task Updated</h2>
			<p>%s updated the task you are assigned to:</p>
			<h3>%s</h3>
			<p>Log in to see what changed.</p>
		</div>
	`, actorName, taskTitle)

	return s.send(toEmail, "Task Updated", body)
}

func (s *emailService) SendTaskCompleted(toEmail, taskTitle string, createdOn, completedTime time.Time) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Task Completed</h2>
			<p>Your task "%s" has been marked as completed.</p>
			<p>Created: %s<br>Completed: %s</p>
		</div>
	`, taskTitle, createdOn.Format(time.RFC1123), completedTime.Format(time.RFC1123))

	return s.send(toEmail, "Task Completed", body)
}
