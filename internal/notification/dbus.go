package notification

import (
	"fmt"

	"github.com/dooshek/scriptvoice/internal/logger"
	"github.com/godbus/dbus/v5"
)

const (
	notificationsDest   = "org.freedesktop.Notifications"
	notificationsPath   = "/org/freedesktop/Notifications"
	notificationsMethod = "org.freedesktop.Notifications.Notify"
	expireTimeoutMs     = int32(5000)
)

// dbusNotifier talks to the freedesktop notification daemon on the session bus
type dbusNotifier struct {
	connect func() (*dbus.Conn, error)
}

func newDBusNotifier() platformNotifier {
	return &dbusNotifier{connect: func() (*dbus.Conn, error) { return dbus.ConnectSessionBus() }}
}

func (n *dbusNotifier) send(title, message string) error {
	logger.Debugf("Sending notification: %s - %s", title, message)

	conn, err := n.connect()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(notificationsDest, dbus.ObjectPath(notificationsPath))
	call := obj.Call(notificationsMethod, 0,
		appName,   // app_name
		uint32(0), // replaces_id
		"",        // app_icon
		title,
		message,
		[]string{},
		map[string]dbus.Variant{},
		expireTimeoutMs,
	)
	if call.Err != nil {
		return fmt.Errorf("notification call failed: %w", call.Err)
	}
	return nil
}
