package services

import (
	"fmt"
	"log"

	"roomledger-backend/config"
	"roomledger-backend/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type NotificationService struct{}

var notifService *NotificationService

func GetNotificationService() *NotificationService {
	if notifService == nil {
		notifService = &NotificationService{}
	}
	return notifService
}

func (ns *NotificationService) sendEmail(toEmail, toName, subject, plainBody, htmlBody string) {
	if config.AppConfig.SendGridAPIKey == "" {
		log.Printf("⚠️  SendGrid API key not set, skipping email to %s", toEmail)
		return
	}

	from := mail.NewEmail(config.AppConfig.AppName, config.AppConfig.SendGridFrom)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainBody, htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("❌ Email send error: %v", err)
		return
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Printf("✅ Email sent to %s", toEmail)
	} else {
		log.Printf("⚠️  SendGrid returned status: %d", resp.StatusCode)
	}
}

// NotifyExpenseAdded emails every member with an outstanding share on a
// new expense.
func (ns *NotificationService) NotifyExpenseAdded(expense models.RoomExpense, payer models.User, room models.Room) {
	memberByID := make(map[string]models.Member, len(room.Members))
	for _, m := range room.Members {
		memberByID[m.UserID.String()] = m
	}

	for _, split := range expense.SplitDetails {
		if split.UserID == expense.PaidBy {
			continue // don't notify the payer
		}
		member, found := memberByID[split.UserID.String()]
		if !found {
			continue
		}

		subject := fmt.Sprintf("%s added \"%s\" in %s", payer.Name, expense.Description, room.Name)
		plain := fmt.Sprintf("%s added %q in %s. Your share: %.2f of %.2f total.",
			payer.Name, expense.Description, room.Name, split.ShareAmount, expense.TotalAmount)
		html := fmt.Sprintf(
			"<p>Hi <strong>%s</strong>,</p><p><strong>%s</strong> added a new expense in <strong>%s</strong>:</p>"+
				"<p><strong>%s</strong><br>Total: %.2f<br><strong>Your share: %.2f</strong></p>",
			member.Name, payer.Name, room.Name, expense.Description, expense.TotalAmount, split.ShareAmount)

		ns.sendEmail(member.Email, member.Name, subject, plain, html)
	}
}

// NotifyMemberAdded emails the newly added member.
func (ns *NotificationService) NotifyMemberAdded(room models.Room, adder models.User, newMember models.User) {
	subject := fmt.Sprintf("You were added to \"%s\"", room.Name)
	plain := fmt.Sprintf("%s added you to the room %q on %s.", adder.Name, room.Name, config.AppConfig.AppName)
	html := fmt.Sprintf(
		"<p>Hi <strong>%s</strong>,</p><p><strong>%s</strong> added you to the room <strong>%q</strong>.</p>"+
			"<p>Open the app to start splitting expenses.</p>",
		newMember.Name, adder.Name, room.Name)

	ns.sendEmail(newMember.Email, newMember.Name, subject, plain, html)
}
