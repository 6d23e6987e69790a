package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"hostwatch/internal/conf"
)

const notifyTimeout = 5 * time.Second

// Notifier forwards alerts to a webhook and/or a shell command.
type Notifier struct {
	cfg    conf.Alerts
	client *http.Client
}

// NewNotifier creates a notifier for the configured destinations
func NewNotifier(cfg conf.Alerts) *Notifier {
	return &Notifier{
		cfg:    cfg,
		client: &http.Client{Timeout: notifyTimeout},
	}
}

// Enabled returns true if any destination is configured
func (n *Notifier) Enabled() bool {
	return n.cfg.Webhook != "" || n.cfg.Command != ""
}

// Notify sends alerts asynchronously. Delivery failures are only logged.
func (n *Notifier) Notify(alerts []Alert) {
	if !n.Enabled() || len(alerts) == 0 {
		return
	}
	go n.notify(alerts)
}

func validateWebhookURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid webhook URL: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("webhook URL must use http or https scheme, got %q", scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("webhook URL %q has no host", rawURL)
	}
	return nil
}

func (n *Notifier) notify(alerts []Alert) {
	body := map[string]interface{}{
		"alerts": alerts,
		"ts":     time.Now().Format(time.RFC3339),
	}
	data, err := json.Marshal(body)
	if err != nil {
		log.Printf("alert: marshal error: %v", err)
		return
	}

	if n.cfg.Webhook != "" {
		if err := n.post(data); err != nil {
			log.Printf("alert: webhook: %v", err)
		}
	}

	if n.cfg.Command != "" {
		if err := n.run(data, alerts); err != nil {
			log.Printf("alert: command: %v", err)
		}
	}
}

func (n *Notifier) post(data []byte) error {
	if err := validateWebhookURL(n.cfg.Webhook); err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, n.cfg.Webhook, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}

func (n *Notifier) run(data []byte, alerts []Alert) error {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", n.cfg.Command)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", n.cfg.Command)
	}
	kinds := make([]string, 0, len(alerts))
	for _, a := range alerts {
		kinds = append(kinds, string(a.Kind))
	}
	cmd.Env = append(os.Environ(),
		"HOSTWATCH_ALERTS="+strings.Join(kinds, ","),
		"HOSTWATCH_PAYLOAD="+string(data),
	)
	return cmd.Run()
}
