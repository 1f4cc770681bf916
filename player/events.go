package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/clipedit/clipedit/log"
)

// EventCallback receives a property name and its new value.
type EventCallback func(property string, data any)

// observed lists the properties the editor reconciles against.
var observed = []string{"time-pos", "pause"}

// EventListener holds its own IPC connection; mpv delivers property changes
// only to the client that asked to observe them.
type EventListener struct {
	socketPath string
	conn       net.Conn
	callback   EventCallback
	stopCh     chan struct{}
	mu         sync.Mutex
	listening  bool
	log        *log.Scoped
}

func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
		stopCh:     make(chan struct{}),
		log:        log.Component("mpv-events"),
	}
}

// Start subscribes to the observed properties and begins reading events.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range observed {
		payload, err := json.Marshal(ipcCommand{Command: []any{"observe_property", i + 1, name}})
		if err != nil {
			conn.Close()
			return fmt.Errorf("marshal observe %s: %w", name, err)
		}
		if _, err := conn.Write(append(payload, '\n')); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true
	go el.readLoop(bufio.NewReader(conn))

	el.log.Infof("listening on %s for %v", el.socketPath, observed)
	return nil
}

func (el *EventListener) Stop() {
	el.mu.Lock()
	defer el.mu.Unlock()

	if !el.listening {
		return
	}

	close(el.stopCh)
	if el.conn != nil {
		el.conn.Close()
	}
	el.listening = false
}

// readLoop consumes newline-delimited JSON until the connection drops.
func (el *EventListener) readLoop(reader *bufio.Reader) {
	defer func() {
		el.mu.Lock()
		el.listening = false
		el.mu.Unlock()
	}()

	for {
		select {
		case <-el.stopCh:
			return
		default:
		}

		if err := el.conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
			return
		}

		line, err := reader.ReadBytes('\n')
		if len(line) > 0 && err == nil {
			el.processEvent(line)
		}
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			select {
			case <-el.stopCh:
			default:
				el.log.Warnf("read: %v", err)
			}
			return
		}
	}
}

type ipcEvent struct {
	Event string `json:"event"`
	Name  string `json:"name"`
	Data  any    `json:"data"`
}

// processEvent forwards property changes; command replies carry no event
// and are dropped.
func (el *EventListener) processEvent(line []byte) {
	var event ipcEvent
	if err := json.Unmarshal(line, &event); err != nil {
		return
	}

	if event.Event != "property-change" || event.Name == "" || el.callback == nil {
		return
	}
	el.callback(event.Name, event.Data)
}
