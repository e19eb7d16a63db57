package host

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/easeltools/easel/logging"
	"github.com/easeltools/easel/pkg/bus"
	"github.com/easeltools/easel/pkg/models"
)

// reconnect backoff bounds
const (
	backoffInitial = time.Second
	backoffMax     = 30 * time.Second
)

// EventListener follows the host's websocket and republishes its events onto
// the bus. Connection loss is handled by reconnecting with capped exponential
// backoff; consumers never see the gap beyond a host_status event.
type EventListener struct {
	wsURL string
	bus   *bus.Bus
	log   *logrus.Entry
}

// NewEventListener creates a listener for the host at baseURL with the given
// events path (e.g. "/ws").
func NewEventListener(baseURL, eventsPath string, b *bus.Bus) (*EventListener, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = eventsPath

	return &EventListener{
		wsURL: u.String(),
		bus:   b,
		log:   logging.NewLogger("host-events"),
	}, nil
}

// Run connects and republishes events until the context is cancelled.
func (l *EventListener) Run(ctx context.Context) {
	backoff := backoffInitial

	for {
		if ctx.Err() != nil {
			return
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, l.wsURL, nil)
		if err != nil {
			l.log.WithError(err).WithField("url", l.wsURL).Debug("websocket dial failed")
			l.publishStatus(false)

			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > backoffMax {
				backoff = backoffMax
			}
			continue
		}

		l.log.WithField("url", l.wsURL).Debug("websocket connected")
		l.publishStatus(true)
		backoff = backoffInitial

		l.readLoop(ctx, conn)
		conn.Close()
		l.publishStatus(false)
	}
}

// readLoop pumps events off one connection until it breaks or the context is
// cancelled.
func (l *EventListener) readLoop(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var event models.HostEvent
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() == nil {
				l.log.WithError(err).Debug("websocket read failed")
			}
			return
		}
		if event.Type == "" {
			continue
		}

		l.bus.Publish(bus.Event{
			Type: event.Type,
			Data: event.Data,
		})
	}
}

func (l *EventListener) publishStatus(connected bool) {
	l.bus.Publish(bus.Event{
		Type: bus.EventHostStatus,
		Data: map[string]interface{}{"connected": connected},
	})
}
