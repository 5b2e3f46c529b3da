package mail

import (
	"errors"
	"strings"
	"testing"

	"github.com/project-catalyst/catalyst-api/internal/config"
	"github.com/project-catalyst/catalyst-api/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		SMTPHost:       "smtp.example.com",
		SMTPPort:       587,
		SMTPUser:       "mailer",
		SMTPPass:       "secret",
		EmailFromName:  "Project Catalyst",
		AdminEmails:    []string{"admin@example.com"},
		BrandColor:     "#0f766e",
		ClientCTAURL:   "https://example.com/book",
		CompanyAddress: "Your City",
	}
}

func testPayload() Payload {
	return Payload{
		Name:               "Ann",
		Email:              "ann@x.com",
		ProjectTitle:       "Shop App",
		ProjectDescription: "Build an e-commerce app with cart and payments",
		ProjectType:        "mobile",
		Budget:             "7000",
	}
}

func TestTrySendUnconfiguredNoOp(t *testing.T) {
	d := NewDispatcher(&config.Config{})
	d.send = func(o *outgoing) error {
		t.Fatal("send must not be called without SMTP configuration")
		return nil
	}

	st := d.TrySend(testPayload())
	if st.ClientSent || st.AdminSent {
		t.Fatalf("expected zero status, got %+v", st)
	}
}

func TestTrySendBothEmails(t *testing.T) {
	d := NewDispatcher(testConfig())
	var sent []*outgoing
	d.send = func(o *outgoing) error {
		sent = append(sent, o)
		return nil
	}

	st := d.TrySend(testPayload())
	if !st.ClientSent || !st.AdminSent {
		t.Fatalf("expected both sent, got %+v", st)
	}
	if len(sent) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(sent))
	}

	client, admin := sent[0], sent[1]
	if client.to[0] != "ann@x.com" {
		t.Fatalf("client to = %v", client.to)
	}
	if admin.to[0] != "admin@example.com" {
		t.Fatalf("admin to = %v", admin.to)
	}
	if admin.replyTo != "ann@x.com" {
		t.Fatalf("admin replyTo = %q", admin.replyTo)
	}
	if client.submissionID == "" || client.submissionID != admin.submissionID {
		t.Fatal("both emails must share one submission id")
	}
	if !strings.Contains(client.subject, client.submissionID[:8]) {
		t.Fatalf("client subject %q lacks short submission id", client.subject)
	}
	if !strings.Contains(admin.subject, "Shop App") || !strings.Contains(admin.subject, admin.submissionID) {
		t.Fatalf("admin subject = %q", admin.subject)
	}
	if !strings.Contains(client.text, "Submission ID: "+client.submissionID) {
		t.Fatal("client text body lacks submission id")
	}
}

func TestTrySendNoAdminList(t *testing.T) {
	cfg := testConfig()
	cfg.AdminEmails = nil
	d := NewDispatcher(cfg)
	var sent int
	d.send = func(o *outgoing) error {
		sent++
		return nil
	}

	st := d.TrySend(testPayload())
	if !st.ClientSent || st.AdminSent {
		t.Fatalf("expected client only, got %+v", st)
	}
	if sent != 1 {
		t.Fatalf("expected 1 message, got %d", sent)
	}
}

func TestTrySendFailuresAreIndependent(t *testing.T) {
	d := NewDispatcher(testConfig())
	calls := 0
	d.send = func(o *outgoing) error {
		calls++
		if calls == 1 {
			return errors.New("connection refused")
		}
		return nil
	}

	st := d.TrySend(testPayload())
	if st.ClientSent {
		t.Fatal("client send failed but was reported sent")
	}
	if !st.AdminSent {
		t.Fatal("admin send must proceed after client failure")
	}
	if calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls)
	}
}

func TestTrySendAbsorbsAllFailures(t *testing.T) {
	d := NewDispatcher(testConfig())
	d.send = func(o *outgoing) error {
		return errors.New("unreachable")
	}

	st := d.TrySend(testPayload())
	if st.ClientSent || st.AdminSent {
		t.Fatalf("expected zero status, got %+v", st)
	}
}

func TestTrySendAbsorbsPanics(t *testing.T) {
	d := NewDispatcher(testConfig())
	d.send = func(o *outgoing) error {
		panic("transport blew up")
	}

	st := d.TrySend(testPayload()) // must not panic past the boundary
	if st.ClientSent || st.AdminSent {
		t.Fatalf("expected zero status, got %+v", st)
	}
}

func TestBodiesEscapeUserInput(t *testing.T) {
	p := testPayload()
	p.ProjectDescription = `<script>alert("x")</script>`
	p.Name = `O'Brien & Sons`
	p.AIAnalysis = &models.AIAnalysis{
		Summary:             "uses <iframe> embeds",
		Category:            "Web",
		EstimatedComplexity: "Low",
	}
	cfg := testConfig()
	id := "11111111-2222-3333-4444-555555555555"

	for name, body := range map[string]string{
		"client": clientHTML(cfg, p, id),
		"admin":  adminHTML(cfg, p),
	} {
		if strings.Contains(body, "<script>") {
			t.Fatalf("%s body contains raw script tag", name)
		}
		if !strings.Contains(body, "&lt;script&gt;") {
			t.Fatalf("%s body lacks escaped script tag", name)
		}
		if !strings.Contains(body, "&lt;iframe&gt;") {
			t.Fatalf("%s body lacks escaped analysis summary", name)
		}
		if strings.Contains(body, "O'Brien & Sons") {
			t.Fatalf("%s body contains unescaped quote/ampersand", name)
		}
	}
}

func TestAdminTextIncludesAllFields(t *testing.T) {
	p := testPayload()
	p.AIAnalysis = &models.AIAnalysis{Summary: "shop", Category: "E-commerce", EstimatedComplexity: "Medium"}

	text := adminText(p)
	for _, want := range []string{"Shop App", "Ann", "ann@x.com", "mobile", "7000", "Summary: shop", "Category: E-commerce", "Complexity: Medium"} {
		if !strings.Contains(text, want) {
			t.Fatalf("admin text lacks %q:\n%s", want, text)
		}
	}
}

func TestRedactedNeverContainsSecret(t *testing.T) {
	d := NewDispatcher(testConfig())
	r := d.redacted()
	if strings.Contains(r, "secret") {
		t.Fatalf("redacted config leaks password: %s", r)
	}
	if !strings.Contains(r, "passSet=true") {
		t.Fatalf("redacted config should note the password is set: %s", r)
	}
}
