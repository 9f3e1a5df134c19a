package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nerrad567/smarthome-sync/internal/home"
	"github.com/nerrad567/smarthome-sync/internal/infrastructure/mqtt"
)

// commandTimeout bounds the handling of one inbound MQTT command.
const commandTimeout = 5 * time.Second

// MoveCommand is the payload of <prefix>/command/move.
type MoveCommand struct {
	Person string `json:"person"`
	Room   string `json:"room"`
}

// ToggleCommand is the payload of <prefix>/command/toggle.
type ToggleCommand struct {
	ThingID string `json:"thingID"`
}

// Subscriber is the part of the MQTT client the command listener needs.
type Subscriber interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Topics() mqtt.Topics
	QoS() byte
}

// Listen subscribes to <prefix>/command/+ and relays every command.
// The subscription is restored by the client on reconnect.
func (r *Relay) Listen(sub Subscriber) error {
	topics := sub.Topics()
	handler := func(topic string, payload []byte) error {
		kind, ok := topics.CommandKind(topic)
		if !ok {
			return fmt.Errorf("%w: topic %s", ErrUnknownCommand, topic)
		}

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		_, err := r.HandleCommand(ctx, kind, payload)
		if errors.Is(err, home.ErrThingNotFound) {
			r.logger.Warn("toggle command for unknown thing", "topic", topic)
			return nil
		}
		return err
	}

	if err := sub.Subscribe(topics.AllCommands(), sub.QoS(), handler); err != nil {
		return fmt.Errorf("subscribing to commands: %w", err)
	}
	r.logger.Info("listening for mqtt commands", "topic", topics.AllCommands())
	return nil
}

// HandleCommand decodes payload as a command of kind and relays it.
func (r *Relay) HandleCommand(ctx context.Context, kind string, payload []byte) (home.Event, error) {
	switch kind {
	case mqtt.CommandMove:
		var cmd MoveCommand
		if err := json.Unmarshal(payload, &cmd); err != nil {
			return home.Event{}, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
		}
		return r.MovePerson(ctx, cmd.Person, cmd.Room)

	case mqtt.CommandToggle:
		var cmd ToggleCommand
		if err := json.Unmarshal(payload, &cmd); err != nil {
			return home.Event{}, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
		}
		return r.ToggleThing(ctx, home.NormalizeThingID(cmd.ThingID))

	default:
		return home.Event{}, fmt.Errorf("%w: %s", ErrUnknownCommand, kind)
	}
}
