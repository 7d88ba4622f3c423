package notification

import (
	"fmt"
	"runtime"

	"github.com/dooshek/scriptvoice/internal/logger"
)

const appName = "ScriptVoice"

// Notifier defines the interface for system notifications
type Notifier interface {
	NotifyNarrationComplete(outputPath string) error
	NotifyNarrationFailed(err error) error
	Notify(title, message string) error
}

// SilentNotifier is a no-op implementation used when notifications are off
type SilentNotifier struct{}

func NewSilent() Notifier {
	return &SilentNotifier{}
}

func (s *SilentNotifier) NotifyNarrationComplete(string) error { return nil }
func (s *SilentNotifier) NotifyNarrationFailed(error) error    { return nil }
func (s *SilentNotifier) Notify(title, message string) error   { return nil }

type baseNotifier struct {
	platform platformNotifier
}

type platformNotifier interface {
	send(title, message string) error
}

// New creates a new platform-specific notification service
func New() Notifier {
	logger.Debug("Initializing notification system")
	var platform platformNotifier
	switch runtime.GOOS {
	case "darwin":
		logger.Debug("Using Darwin (macOS) notifier")
		platform = newDarwinNotifier()
	default:
		logger.Debug("Using D-Bus notifier")
		platform = newDBusNotifier()
	}
	return &baseNotifier{platform: platform}
}

func (n *baseNotifier) NotifyNarrationComplete(outputPath string) error {
	return n.Notify(appName, formatCompleteMessage(outputPath))
}

func (n *baseNotifier) NotifyNarrationFailed(err error) error {
	return n.Notify(appName, fmt.Sprintf("Narration failed: %v", err))
}

func (n *baseNotifier) Notify(title, message string) error {
	return n.platform.send(title, message)
}

func formatCompleteMessage(outputPath string) string {
	return fmt.Sprintf("Narration ready: %s", outputPath)
}
