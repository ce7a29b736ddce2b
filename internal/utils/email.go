package utils

import (
	"bytes"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"
)

func newMailClient() (*mail.Client, error) {
	port := 587
	if v, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && v > 0 {
		port = v
	}

	return mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
}

func fromAddress() string {
	if from := os.Getenv("SMTP_FROM"); from != "" {
		return from
	}
	return "noreply@lacave.fr"
}

// SendVerificationEmail envoie le lien de vérification de compte
func SendVerificationEmail(to, verifyURL string) error {
	msg := mail.NewMsg()

	if err := msg.From(fromAddress()); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Vérifiez votre compte La Cave")
	msg.SetBodyString(mail.TypeTextHTML, GenerateVerificationHTML(verifyURL))

	client, err := newMailClient()
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail de vérification à", to)
	return client.DialAndSend(msg)
}

// SendConfirmationEmail envoie la confirmation de commande, avec la facture
// PDF en pièce jointe si disponible
func SendConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	if err := msg.From(fromAddress()); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("facture_lacave.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := newMailClient()
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}
