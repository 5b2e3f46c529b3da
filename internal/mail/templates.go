package mail

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/project-catalyst/catalyst-api/internal/config"
)

// escapeHTML neutralizes user-controlled strings before they reach an HTML
// body. Covers &, <, >, and both quote characters.
func escapeHTML(s string) string {
	return html.EscapeString(s)
}

// escapeAttr additionally folds newlines so a value can sit inside an
// attribute.
func escapeAttr(s string) string {
	e := escapeHTML(s)
	e = strings.ReplaceAll(e, "\r\n", " ")
	return strings.ReplaceAll(e, "\n", " ")
}

func analysisText(p Payload) string {
	a := p.AIAnalysis
	if a == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nAI Analysis:\n")
	if a.Summary != "" {
		fmt.Fprintf(&b, "- Summary: %s\n", a.Summary)
	}
	if a.Category != "" {
		fmt.Fprintf(&b, "- Category: %s\n", a.Category)
	}
	if a.EstimatedComplexity != "" {
		fmt.Fprintf(&b, "- Complexity: %s\n", a.EstimatedComplexity)
	}
	return b.String()
}

func analysisHTML(p Payload) string {
	a := p.AIAnalysis
	if a == nil {
		return ""
	}
	var items strings.Builder
	if a.Summary != "" {
		fmt.Fprintf(&items, "<li><strong>Summary:</strong> %s</li>", escapeHTML(a.Summary))
	}
	if a.Category != "" {
		fmt.Fprintf(&items, "<li><strong>Category:</strong> %s</li>", escapeHTML(a.Category))
	}
	if a.EstimatedComplexity != "" {
		fmt.Fprintf(&items, "<li><strong>Complexity:</strong> %s</li>", escapeHTML(a.EstimatedComplexity))
	}
	return fmt.Sprintf(`<h3 style="margin:16px 0 8px">AI Analysis</h3><ul>%s</ul>`, items.String())
}

func adminText(p Payload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s\n", p.ProjectTitle)
	fmt.Fprintf(&b, "From: %s <%s>\n", p.Name, p.Email)
	fmt.Fprintf(&b, "Type: %s  Budget: %s\n\n", p.ProjectType, p.Budget)
	b.WriteString("Description:\n")
	b.WriteString(p.ProjectDescription)
	b.WriteString("\n")
	b.WriteString(analysisText(p))
	return b.String()
}

func adminHTML(cfg *config.Config, p Payload) string {
	return fmt.Sprintf(`
<div style="font-family:system-ui,-apple-system,Segoe UI,Roboto,sans-serif;line-height:1.5">
  <div style="max-width:640px;margin:0 auto;background:%s;color:#fff;padding:10px 16px;border-radius:12px">
    <strong>%s</strong>
  </div>
  <h2 style="margin:12px 0">%s</h2>
  <p style="margin:0 0 8px">From: <strong>%s</strong> &lt;%s&gt;</p>
  <p style="margin:0 0 8px">Type: %s &middot; Budget: %s</p>
  <h3 style="margin:16px 0 8px">Description</h3>
  <p style="white-space:pre-wrap">%s</p>
  %s
</div>`,
		cfg.BrandColor,
		escapeHTML(cfg.EmailFromName),
		escapeHTML(p.ProjectTitle),
		escapeHTML(p.Name),
		escapeHTML(p.Email),
		escapeHTML(p.ProjectType),
		escapeHTML(p.Budget),
		escapeHTML(p.ProjectDescription),
		analysisHTML(p),
	)
}

func clientText(cfg *config.Config, p Payload, submissionID string) string {
	lines := []string{
		fmt.Sprintf("Thanks, %s! We've received %q.", p.Name, p.ProjectTitle),
		"",
		"Submission ID: " + submissionID,
		"",
		"What happens next:",
		"1) Scoping reply within 1-2 business days",
		"2) Proposal with timeline if it's a fit",
		"3) Kickoff call",
		"",
		"Book a quick call: " + cfg.ClientCTAURL,
		"",
		adminText(p),
	}
	return strings.Join(lines, "\n")
}

func clientHTML(cfg *config.Config, p Payload, submissionID string) string {
	preheader := fmt.Sprintf("Thanks, %s! We've received %q.", p.Name, p.ProjectTitle)

	return fmt.Sprintf(`
<div style="font-family:system-ui,-apple-system,Segoe UI,Roboto,sans-serif;line-height:1.6;background:#f6f7f9;padding:24px">
  <span style="display:none!important;visibility:hidden;opacity:0;color:transparent;height:0;width:0;overflow:hidden">%s</span>
  <table role="presentation" width="100%%" cellspacing="0" cellpadding="0" style="max-width:640px;margin:0 auto;background:#fff;border-radius:12px;overflow:hidden">
    <tr>
      <td style="padding:20px 24px;background:%s">
        <table width="100%%"><tr>
          <td><span style="color:#e0fffb;font-weight:700">%s</span></td>
          <td align="right" style="color:#e0fffb;font-weight:600">Submission received</td>
        </tr></table>
      </td>
    </tr>
    <tr>
      <td style="padding:24px">
        <h2 style="margin:0 0 8px;font-size:20px">Thanks, %s!</h2>
        <p style="margin:0 0 16px">We&#39;ve received your project <strong>%s</strong>.</p>
        <table role="presentation" width="100%%" style="background:#f3f4f6;border-radius:10px;padding:16px;margin:16px 0">
          <tr><td><strong>Submission ID:</strong> %s</td></tr>
          <tr><td><strong>Type:</strong> %s &nbsp; &middot; &nbsp; <strong>Budget:</strong> %s</td></tr>
          <tr><td><strong>Email:</strong> %s</td></tr>
        </table>
        <h3 style="margin:16px 0 8px">What happens next?</h3>
        <ol style="margin:0 0 16px 20px;padding:0">
          <li>You&#39;ll get a scoping reply within <strong>1&ndash;2 business days</strong>.</li>
          <li>If it&#39;s a fit, we&#39;ll propose timelines and milestones.</li>
          <li>Kickoff call to finalize scope and start.</li>
        </ol>
        <div style="margin:20px 0">
          <a href="%s" style="display:inline-block;padding:12px 18px;background:%s;color:#ffffff;text-decoration:none;border-radius:8px;font-weight:600">Book a quick call</a>
        </div>
        <h3 style="margin:16px 0 8px">Your description</h3>
        <p style="white-space:pre-wrap;margin:0 0 12px">%s</p>
        %s
        <p style="margin-top:24px;color:#6b7280;font-size:12px">If anything looks off, reply to this email with updates. We&#39;ll track your update using your Submission ID.</p>
      </td>
    </tr>
    <tr>
      <td style="background:#f9fafb;padding:16px 24px;color:#6b7280;font-size:12px">&copy; %d %s &middot; %s</td>
    </tr>
  </table>
</div>`,
		escapeHTML(preheader),
		cfg.BrandColor,
		escapeHTML(cfg.EmailFromName),
		escapeHTML(p.Name),
		escapeHTML(p.ProjectTitle),
		escapeHTML(submissionID),
		escapeHTML(p.ProjectType),
		escapeHTML(p.Budget),
		escapeHTML(p.Email),
		escapeAttr(cfg.ClientCTAURL),
		cfg.BrandColor,
		escapeHTML(p.ProjectDescription),
		analysisHTML(p),
		time.Now().Year(),
		escapeHTML(cfg.EmailFromName),
		escapeHTML(cfg.CompanyAddress),
	)
}
