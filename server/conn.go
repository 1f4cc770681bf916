package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/clipedit/clipedit/editor"
	"github.com/clipedit/clipedit/inline"
	"github.com/clipedit/clipedit/log"
	"github.com/clipedit/clipedit/media"
	"github.com/clipedit/clipedit/playback"
	"github.com/clipedit/clipedit/timeline"
	"github.com/gorilla/websocket"
	"github.com/rs/xid"
	"github.com/samber/mo"
)

const (
	WriteWait        = 10 * time.Second
	PublishTimeout   = time.Second
	maxMessageSize   = 64 * 1024
	sendQueueSize    = 256
	taskQueueSize    = 32
	snapshotDeadline = 2 * time.Second
)

var (
	errQueueFull = errors.New("send queue full")
	errClosed    = errors.New("session closed")
)

// conn is one websocket client and the editor session it drives. The
// session is owned by loop; every other goroutine reaches it through post.
type conn struct {
	id      string
	ws      *websocket.Conn
	server  *Server
	session *editor.Session
	log     *log.Scoped

	send      chan *Message
	tasks     chan func()
	closing   chan struct{}
	closeOnce sync.Once
}

func newConn(s *Server, ws *websocket.Conn) *conn {
	c := &conn{
		id:      xid.New().String(),
		ws:      ws,
		server:  s,
		send:    make(chan *Message, sendQueueSize),
		tasks:   make(chan func(), taskQueueSize),
		closing: make(chan struct{}),
	}
	c.log = log.Component("session " + c.id)

	scheduler := &timeline.TickerScheduler{Dispatch: func(task func()) { c.post(task) }}
	element := media.New(media.Video, mo.None[string]())
	c.session = editor.NewSession(element, playback.Options{
		Surface:   &remoteSurface{conn: c},
		Scheduler: scheduler,
		Fade:      s.fade,
	})
	c.session.Coordinator.OnChange(c.changed)

	return c
}

// post hands task to the loop. It reports false once the connection closed.
func (c *conn) post(task func()) bool {
	select {
	case c.tasks <- task:
		return true
	case <-c.closing:
		return false
	}
}

// enqueue must only be called from loop.
func (c *conn) enqueue(m *Message) bool {
	select {
	case c.send <- m:
		return true
	default:
		c.log.Warnf("dropping %s message: send queue full", m.Type)
		return false
	}
}

func (c *conn) close() {
	c.closeOnce.Do(func() { close(c.closing) })
}

func (c *conn) loop() {
	defer func() {
		c.session.Close()
		c.server.forget(c)
		close(c.send)
	}()

	c.enqueue(&Message{Type: MessageTypeHello, Payload: HelloMessage{
		Session:  c.id,
		Ops:      editor.Ops(),
		Snapshot: c.session.Snapshot(),
	}})

	for {
		select {
		case <-c.closing:
			return
		case task := <-c.tasks:
			task()
		}
	}
}

func (c *conn) readPump() {
	defer c.close()

	c.ws.SetReadLimit(maxMessageSize)
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warnf("read: %v", err)
			}
			return
		}

		var m Message
		if err := Deserialise(data, &m); err != nil {
			if !c.post(func() { c.fail("", err) }) {
				return
			}
			continue
		}

		if !c.post(func() { c.handle(&m) }) {
			return
		}
	}
}

func (c *conn) writePump() {
	defer c.ws.Close()

	for m := range c.send {
		_ = c.ws.SetWriteDeadline(time.Now().Add(WriteWait))
		if err := c.ws.WriteJSON(m); err != nil {
			c.log.Warnf("write: %v", err)
			c.close()
			for range c.send {
			}
			return
		}
	}

	_ = c.ws.SetWriteDeadline(time.Now().Add(WriteWait))
	_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (c *conn) handle(m *Message) {
	switch p := m.Payload.(type) {
	case *editor.Step:
		if err := c.session.Apply(*p); err != nil {
			c.fail(p.Op, err)
		}
	case *inline.Media:
		element, err := p.Element()
		if err != nil {
			c.fail(string(MessageTypeLoad), err)
			return
		}
		c.session.Coordinator.Load(element)
	case *NativeMessage:
		c.session.Coordinator.NativePaused(p.Paused)
	case *playback.Bar:
		c.session.Bar = *p
	case *PingMessage:
		c.enqueue(&Message{Type: MessageTypePong, Payload: PongMessage{
			Timestamp: p.Timestamp,
			SvcTime:   float64(m.ReceivedAt.UnixNano()) / float64(time.Millisecond),
		}})
	}
}

func (c *conn) fail(op string, err error) {
	c.log.Debugf("%s: %v", op, err)
	c.enqueue(&Message{Type: MessageTypeError, Payload: ErrorMessage{Error: err.Error(), Op: op}})
}

func (c *conn) changed() {
	snapshot := c.session.Snapshot()

	ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
	if err := c.server.publisher.Publish(ctx, c.id, snapshot); err != nil {
		c.log.Warnf("publish snapshot: %v", err)
	}
	cancel()

	c.enqueue(&Message{Type: MessageTypeSnapshot, Payload: snapshot})
}

// snapshot reads the session state from outside the loop.
func (c *conn) snapshot(ctx context.Context) (playback.Snapshot, error) {
	reply := make(chan playback.Snapshot, 1)
	if !c.post(func() { reply <- c.session.Snapshot() }) {
		return playback.Snapshot{}, errClosed
	}

	select {
	case s := <-reply:
		return s, nil
	case <-c.closing:
		return playback.Snapshot{}, errClosed
	case <-ctx.Done():
		return playback.Snapshot{}, ctx.Err()
	}
}
