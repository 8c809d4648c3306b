package infra

import (
	"fmt"
	"net/smtp"

	"gestor/internal/config"
	"gestor/internal/model"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending emails with PDF attachments.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Send delivers a plain-text email, attaching the file at pdfPath when given.
func (m *Mailer) Send(to, subject, body, pdfPath string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if pdfPath != "" {
		if _, err := e.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("mailer: attach PDF: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}

// ReciboSender renders the PDF receipt of a sale and emails it to the
// customer. Deliveries go through a circuit breaker so a flapping SMTP
// relay fast-fails instead of stalling every sale.
type ReciboSender struct {
	mailer      *Mailer
	cb          *CircuitBreaker
	empresa     string
	storagePath string
}

func NewReciboSender(mailer *Mailer, cb *CircuitBreaker, empresa, storagePath string) *ReciboSender {
	return &ReciboSender{mailer: mailer, cb: cb, empresa: empresa, storagePath: storagePath}
}

// EnviarRecibo satisfies service.ReciboMailer.
func (r *ReciboSender) EnviarRecibo(venta *model.Venta, destinatario string) error {
	pdfPath, err := GenerarReciboPDF(venta, r.empresa, r.storagePath)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("%s — Recibo de venta %s", r.empresa, venta.Codigo)
	body := fmt.Sprintf("Adjuntamos el recibo de su compra %s por $%s.\n\nGracias por su compra.",
		venta.Codigo, venta.Total.StringFixed(2))
	return r.cb.Execute(func() error {
		return r.mailer.Send(destinatario, subject, body, pdfPath)
	})
}
