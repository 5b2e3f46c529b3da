// Package mail composes and sends the two submission notifications: a
// confirmation to the submitter and an alert to the admin list. Sending is
// strictly best-effort — nothing in here may fail a submission.
package mail

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	gomail "github.com/wneessen/go-mail"

	"github.com/project-catalyst/catalyst-api/internal/config"
	"github.com/project-catalyst/catalyst-api/internal/models"
)

// Payload carries the submission fields that appear in the notifications.
type Payload struct {
	Name               string
	Email              string
	ProjectTitle       string
	ProjectDescription string
	ProjectType        string
	Budget             string
	AIAnalysis         *models.AIAnalysis
}

// Status records which of the two independent sends succeeded.
type Status struct {
	ClientSent bool
	AdminSent  bool
}

// outgoing is one fully rendered message ready for the transport.
type outgoing struct {
	to           []string
	replyTo      string
	subject      string
	text         string
	html         string
	submissionID string
}

type Dispatcher struct {
	cfg *config.Config

	// send is swapped out in tests; the default goes through SMTP.
	send func(o *outgoing) error
}

func NewDispatcher(cfg *config.Config) *Dispatcher {
	d := &Dispatcher{cfg: cfg}
	d.send = d.sendSMTP
	return d
}

// TrySend dispatches both notifications and reports what went out. It never
// returns an error and never panics past its boundary: the emails are a
// courtesy, the spreadsheet row is the record.
func (d *Dispatcher) TrySend(p Payload) (st Status) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("mail: PANIC: %v", rec)
		}
	}()

	if !d.cfg.SMTPConfigured() {
		log.Printf("warning: mail: SMTP not configured, skipping notifications (%s)", d.redacted())
		return st
	}

	id := uuid.NewString()

	client := &outgoing{
		to:           []string{p.Email},
		replyTo:      d.cfg.SupportEmail,
		subject:      fmt.Sprintf("Thanks — We received your project (%s)", id[:8]),
		text:         clientText(d.cfg, p, id),
		html:         clientHTML(d.cfg, p, id),
		submissionID: id,
	}
	if err := d.send(client); err != nil {
		log.Printf("warning: mail: client send failed: %v (%s)", err, d.redacted())
	} else {
		st.ClientSent = true
		log.Printf("mail: client notification sent to=%s id=%s", p.Email, id)
	}

	if len(d.cfg.AdminEmails) == 0 {
		return st
	}

	admin := &outgoing{
		to:           d.cfg.AdminEmails,
		replyTo:      p.Email,
		subject:      fmt.Sprintf("New submission — %s: %s [%s]", d.cfg.EmailFromName, p.ProjectTitle, id),
		text:         adminText(p),
		html:         adminHTML(d.cfg, p),
		submissionID: id,
	}
	if err := d.send(admin); err != nil {
		log.Printf("warning: mail: admin send failed: %v (%s)", err, d.redacted())
	} else {
		st.AdminSent = true
		log.Printf("mail: admin notification sent to=%v id=%s", d.cfg.AdminEmails, id)
	}

	return st
}

func (d *Dispatcher) sendSMTP(o *outgoing) error {
	opts := []gomail.Option{
		gomail.WithPort(d.cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(d.cfg.SMTPUser),
		gomail.WithPassword(d.cfg.SMTPPass),
		// Some providers are slow to accept connections on cold starts;
		// a short dial timeout produces spurious failures.
		gomail.WithTimeout(60 * time.Second),
	}
	if d.cfg.SMTPSecure {
		opts = append(opts, gomail.WithSSLPort(false))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	c, err := gomail.NewClient(d.cfg.SMTPHost, opts...)
	if err != nil {
		return err
	}

	m := gomail.NewMsg()
	if err := m.From(d.cfg.FromAddress()); err != nil {
		return err
	}
	if err := m.To(o.to...); err != nil {
		return err
	}
	if o.replyTo != "" {
		if err := m.ReplyTo(o.replyTo); err != nil {
			return err
		}
	}
	m.Subject(o.subject)
	m.SetGenHeader(gomail.Header("X-Submission-ID"), o.submissionID)
	m.SetGenHeader(gomail.Header("List-ID"), "project-catalyst.submissions")
	m.SetBodyString(gomail.TypeTextPlain, o.text)
	m.AddAlternativeString(gomail.TypeTextHTML, o.html)

	return c.DialAndSend(m)
}

// redacted describes the transport configuration without the credential.
func (d *Dispatcher) redacted() string {
	return fmt.Sprintf("smtp host=%s port=%d secure=%t userSet=%t passSet=%t",
		d.cfg.SMTPHost, d.cfg.SMTPPort, d.cfg.SMTPSecure,
		d.cfg.SMTPUser != "", d.cfg.SMTPPass != "")
}
