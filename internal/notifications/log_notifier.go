package notifications

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// LogNotifier stands in for the SMTP relay in dev and in tests: it prints
// instead of sending.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) SendContactNotification(ctx context.Context, msg ContactMessage) error {
	if err := simulate(ctx); err != nil {
		return err
	}

	log.Printf("notification.contact_lead name=%s email=%s subject=%s", msg.Name, msg.Email, msg.Subject)
	return nil
}

func (n *LogNotifier) SendContactAcknowledgement(ctx context.Context, email, name string) error {
	if err := simulate(ctx); err != nil {
		return err
	}

	log.Printf("notification.contact_ack email=%s name=%s", email, name)
	return nil
}

// env knobs to fake a slow or dead provider during manual testing
func simulate(ctx context.Context) error {
	if msStr := os.Getenv("NOTIFIER_SLEEP_MS"); msStr != "" {
		ms, _ := strconv.Atoi(msStr)
		if ms > 0 {
			select {
			case <-time.After(time.Duration(ms) * time.Millisecond):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	if os.Getenv("NOTIFIER_FAIL") == "1" {
		return fmt.Errorf("provider down (simulated)")
	}

	return nil
}
