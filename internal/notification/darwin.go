package notification

import (
	"fmt"
	"os/exec"
	"strconv"

	"github.com/dooshek/scriptvoice/internal/logger"
)

type darwinNotifier struct{}

func newDarwinNotifier() platformNotifier {
	return &darwinNotifier{}
}

func (n *darwinNotifier) send(title, message string) error {
	logger.Debugf("Sending macOS notification: %s - %s", title, message)
	cmd := exec.Command("osascript", "-e", appleScript(title, message))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("osascript failed: %w", err)
	}
	return nil
}

// appleScript quotes title and message as AppleScript string literals
func appleScript(title, message string) string {
	return fmt.Sprintf("display notification %s with title %s", strconv.Quote(message), strconv.Quote(title))
}
