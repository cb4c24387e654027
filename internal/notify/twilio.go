package notify

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tournotify/internal/domain"
)

const twilioAPIBase = "https://api.twilio.com"

// TwilioVoice places a voice call that reads the alert message aloud.
type TwilioVoice struct {
	AccountSID string
	AuthToken  string
	From       string
	To         string
	BaseURL    string // overridable in tests
	Client     *http.Client
}

func NewTwilioVoice(sid, token, from, to string) *TwilioVoice {
	if sid == "" || token == "" || from == "" || to == "" {
		return nil
	}
	return &TwilioVoice{
		AccountSID: sid,
		AuthToken:  token,
		From:       from,
		To:         to,
		BaseURL:    twilioAPIBase,
		Client:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (t *TwilioVoice) Send(ctx context.Context, title, text string) error {
	if t == nil {
		return fmt.Errorf("%w: voice channel disabled", domain.ErrNotification)
	}
	msg := title
	if text != "" {
		msg = title + ". " + text
	}
	form := url.Values{
		"Twiml": {sayTwiml(msg)},
		"From":  {t.From},
		"To":    {t.To},
	}
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Calls.json", t.BaseURL, t.AccountSID)
	return twilioPost(ctx, t.Client, t.AccountSID, t.AuthToken, endpoint, form)
}

// TwilioSMS sends the alert as a text message through the same account.
type TwilioSMS struct {
	AccountSID string
	AuthToken  string
	From       string
	To         string
	BaseURL    string
	Client     *http.Client
}

func NewTwilioSMS(sid, token, from, to string) *TwilioSMS {
	if sid == "" || token == "" || from == "" || to == "" {
		return nil
	}
	return &TwilioSMS{
		AccountSID: sid,
		AuthToken:  token,
		From:       from,
		To:         to,
		BaseURL:    twilioAPIBase,
		Client:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (t *TwilioSMS) Send(ctx context.Context, title, text string) error {
	if t == nil {
		return fmt.Errorf("%w: sms channel disabled", domain.ErrNotification)
	}
	body := title
	if text != "" {
		body = title + "\n" + text
	}
	form := url.Values{
		"Body": {body},
		"From": {t.From},
		"To":   {t.To},
	}
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", t.BaseURL, t.AccountSID)
	return twilioPost(ctx, t.Client, t.AccountSID, t.AuthToken, endpoint, form)
}

func twilioPost(ctx context.Context, client *http.Client, sid, token, endpoint string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrNotification, err)
	}
	req.SetBasicAuth(sid, token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotification, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		// Twilio returns a JSON error body; keep a short slice for the log.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("%w: status %s: %s", domain.ErrNotification, resp.Status, snippet)
	}
	return nil
}

// sayTwiml wraps the message in the <Say> instruction Twilio reads aloud,
// looped twice so a slow pickup still hears it in full.
func sayTwiml(msg string) string {
	var b strings.Builder
	b.WriteString(`<Response><Say voice="alice" loop="2">`)
	_ = xml.EscapeText(&b, []byte(msg))
	b.WriteString(`</Say></Response>`)
	return b.String()
}
