package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"
)

// resendClient is the concrete Sender backed by the Resend API.
type resendClient struct {
	apiKey     string
	fromAddr   string // e.g. "results@cyberstats.globalcyber.example"
	fromName   string // e.g. "GCA CyberStats"
	baseURL    string // result page URL base, e.g. "https://cyberstats.globalcyber.example"
	httpClient *http.Client
}

// NewResendClient returns a Sender that delivers email via Resend.
func NewResendClient(apiKey, fromAddr, fromName, baseURL string) Sender {
	return &resendClient{
		apiKey:   apiKey,
		fromAddr: fromAddr,
		fromName: fromName,
		baseURL:  baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ─── RESEND API SHAPES ────────────────────────────────────────────────────────

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Name       string `json:"name"`
		Message    string `json:"message"`
		StatusCode int    `json:"statusCode"`
	} `json:"error"`
}

// ─── SENDER IMPLEMENTATION ────────────────────────────────────────────────────

// SendResultSummary sends the assessment result email.
func (c *resendClient) SendResultSummary(ctx context.Context, p SummaryParams) error {
	subject := fmt.Sprintf("Your Cyber Risk Score: %d/100 (%s Risk)", p.Score, p.RiskLevel)
	resultURL := fmt.Sprintf("%s/assessment/%s", c.baseURL, p.AssessmentID)

	return c.send(ctx, p.To, subject, summaryHTML(p, resultURL))
}

// SendConsultationReceipt sends the consultation booking confirmation.
func (c *resendClient) SendConsultationReceipt(ctx context.Context, p ReceiptParams) error {
	subject := "Consultation Booking Confirmed"
	if p.Service != "" {
		subject = fmt.Sprintf("Consultation Confirmed — %s", p.Service)
	}

	amount := fmt.Sprintf("$%.2f", float64(p.AmountCents)/100)
	return c.send(ctx, p.To, subject, receiptHTML(p.Service, amount))
}

// ─── HTTP SEND ────────────────────────────────────────────────────────────────

func (c *resendClient) send(ctx context.Context, to, subject, html string) error {
	from := fmt.Sprintf("%s <%s>", c.fromName, c.fromAddr)

	reqBody := resendRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("email: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://api.resend.com/emails",
		bytes.NewReader(bodyBytes),
	)
	if err != nil {
		return fmt.Errorf("email: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email: http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("email: read response: %w", err)
	}

	var parsed resendResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return fmt.Errorf("email: unmarshal response (status %d): %w", resp.StatusCode, err)
	}

	if parsed.Error != nil {
		return fmt.Errorf("email: Resend error %s: %s", parsed.Error.Name, parsed.Error.Message)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email: unexpected status %d: %.200s", resp.StatusCode, string(respBytes))
	}

	return nil
}

// ─── HTML TEMPLATES ───────────────────────────────────────────────────────────

// riskColor maps the risk level to the badge background.
func riskColor(level string) string {
	switch level {
	case "High":
		return "#dc2626"
	case "Medium":
		return "#d97706"
	default:
		return "#16a34a"
	}
}

func summaryHTML(p SummaryParams, resultURL string) string {
	var breakdown strings.Builder
	for _, b := range p.Breakdown {
		fmt.Fprintf(&breakdown, `<tr>
      <td style="padding: 4px 12px; color: #4b5563;">%s</td>
      <td style="padding: 4px 12px; font-weight: 600; text-align: right;">%d</td>
    </tr>`, html.EscapeString(b.Label), b.Value)
	}

	var recs strings.Builder
	for _, r := range p.Recommendations {
		fmt.Fprintf(&recs, `<tr>
      <td style="padding: 8px 12px; border-bottom: 1px solid #e5e7eb; font-weight: 600;">%s</td>
      <td style="padding: 8px 12px; border-bottom: 1px solid #e5e7eb; color: #4b5563;">%s</td>
      <td style="padding: 8px 12px; border-bottom: 1px solid #e5e7eb;">%s</td>
    </tr>`, html.EscapeString(r.Service), html.EscapeString(r.Description), html.EscapeString(r.Priority))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: sans-serif; color: #1a1a1a; max-width: 560px; margin: 0 auto; padding: 24px;">
  <h2 style="margin-bottom: 8px;">Your Cyber Risk Assessment</h2>
  <p style="color: #6b7280;">Assessment #%d</p>
  <p style="font-size: 40px; margin: 16px 0;">
    <strong>%d</strong><span style="color: #6b7280; font-size: 20px;">/100</span>
    <span style="background: %s; color: #ffffff; font-size: 14px; padding: 4px 12px;
                 border-radius: 9999px; vertical-align: middle; margin-left: 12px;">%s Risk</span>
  </p>
  <h3 style="margin-bottom: 4px;">Category Breakdown</h3>
  <table style="border-collapse: collapse; font-size: 14px;">%s</table>
  <h3 style="margin-bottom: 4px;">Recommended Next Steps</h3>
  <table style="border-collapse: collapse; width: 100%%; font-size: 14px;">%s</table>
  <p style="margin: 32px 0;">
    <a href="%s"
       style="background: #0f172a; color: #ffffff; padding: 12px 24px;
              border-radius: 6px; text-decoration: none; font-weight: 600;">
      View Full Result
    </a>
  </p>
  <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 32px 0;">
  <p style="color: #9ca3af; font-size: 12px;">
    GCA CyberStats · Free self-assessment · No account required
  </p>
</body>
</html>`, p.AssessmentNumber, p.Score, riskColor(p.RiskLevel), html.EscapeString(p.RiskLevel), breakdown.String(), recs.String(), resultURL)
}

func receiptHTML(service, amount string) string {
	line := "your consultation"
	if service != "" {
		line = fmt.Sprintf("a <strong>%s</strong> consultation", html.EscapeString(service))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: sans-serif; color: #1a1a1a; max-width: 560px; margin: 0 auto; padding: 24px;">
  <h2 style="margin-bottom: 8px;">Booking Confirmed</h2>
  <p>Hello,</p>
  <p>We have received your payment of <strong>%s</strong> for %s.
  Our security team will reach out within one business day to schedule it.</p>
  <p style="color: #6b7280; font-size: 14px;">
    If you have any questions, reply to this email.
  </p>
  <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 32px 0;">
  <p style="color: #9ca3af; font-size: 12px;">
    GCA CyberStats · Free self-assessment · No account required
  </p>
</body>
</html>`, amount, line)
}
