package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/mediaforge/archon/pkg/config"
	"github.com/mediaforge/archon/pkg/httputils"
)

type webhookMessage struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	RunTime     string  `json:"run_time"`
	DryRun      bool    `json:"dry_run"`
	Timestamp   string  `json:"timestamp"`
	Fields      []Field `json:"fields,omitempty"`
}

type webhookSender struct {
	url    string
	client *http.Client
	log    *logrus.Entry
}

// NewWebhookSender builds a Sender posting JSON run summaries to the
// configured webhook URL. With no URL configured, CanSend is false and Send
// is a no-op.
func NewWebhookSender(log *logrus.Entry, cfg config.NotifyConfig) Sender {
	return &webhookSender{
		url:    cfg.WebhookURL,
		client: httputils.NewRetryableHttpClient(30*time.Second, ratelimit.New(1)),
		log:    log,
	}
}

func (w *webhookSender) Name() string {
	return "webhook"
}

func (w *webhookSender) CanSend() bool {
	return w.url != ""
}

func (w *webhookSender) Send(title string, description string, runTime time.Duration, fields []Field, dryRun bool) error {
	if !w.CanSend() {
		return nil
	}

	msg := webhookMessage{
		Title:       title,
		Description: description,
		RunTime:     runTime.Truncate(time.Millisecond).String(),
		DryRun:      dryRun,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Fields:      fields,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal webhook message: %w", err)
	}

	resp, err := w.client.Post(w.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	w.log.Debugf("Sent webhook notification: %q", title)
	return nil
}
