package notify

import "github.com/godbus/dbus/v5"

const (
	busName   = "org.freedesktop.Notifications"
	busPath   = "/org/freedesktop/Notifications"
	appName   = "Crates"
	desktopID = "crates"
)

type dbusNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus. Without one, notifications are dropped
// rather than failing startup.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return Discard, nil //nolint:nilerr // headless sessions have no bus
	}
	return &dbusNotifier{obj: conn.Object(busName, busPath)}, nil
}

func (n *dbusNotifier) Notify(note Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(note.Urgency)),
		"desktop-entry": dbus.MakeVariant(desktopID),
	}
	call := n.obj.Call(busName+".Notify", 0,
		appName, note.ReplacesID, note.Icon, note.Title, note.Body,
		[]string{}, hints, note.Timeout)
	if call.Err != nil {
		return 0, call.Err
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}
