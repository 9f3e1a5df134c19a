package mqtt

import "strings"

// DefaultTopicPrefix is used when the configured prefix is empty.
const DefaultTopicPrefix = "smarthome"

// Command kinds accepted on <prefix>/command/<kind>.
const (
	CommandMove   = "move"
	CommandToggle = "toggle"
)

// Topics builds the topic names under one prefix.
//
//	t := mqtt.NewTopics("smarthome")
//	t.Event("personMoved")       // smarthome/event/personMoved
//	t.Command(mqtt.CommandMove)  // smarthome/command/move
type Topics struct {
	prefix string
}

// NewTopics returns a builder for prefix, trimming any trailing slash.
func NewTopics(prefix string) Topics {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return Topics{prefix: prefix}
}

// Prefix returns the root of every topic.
func (t Topics) Prefix() string {
	return t.prefix
}

// Event returns the mirror topic for an event type.
func (t Topics) Event(eventType string) string {
	return t.prefix + "/event/" + eventType
}

// AllEvents matches every mirrored event.
func (t Topics) AllEvents() string {
	return t.prefix + "/event/+"
}

// Command returns the inbound topic for a command kind.
func (t Topics) Command(kind string) string {
	return t.prefix + "/command/" + kind
}

// AllCommands matches every inbound command topic.
func (t Topics) AllCommands() string {
	return t.prefix + "/command/+"
}

// SystemStatus returns the retained online/offline status topic.
func (t Topics) SystemStatus() string {
	return t.prefix + "/system/status"
}

// CommandKind extracts the kind from a command topic, reporting false for
// topics outside <prefix>/command/.
func (t Topics) CommandKind(topic string) (string, bool) {
	kind, ok := strings.CutPrefix(topic, t.prefix+"/command/")
	if !ok || kind == "" || strings.Contains(kind, "/") {
		return "", false
	}
	return kind, true
}
