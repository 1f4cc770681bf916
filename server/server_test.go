package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/clipedit/clipedit/playback"
	"github.com/gorilla/websocket"
	. "github.com/smartystreets/goconvey/convey"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []SnapshotEvent
	closed bool
}

func (p *recordingPublisher) Publish(_ context.Context, session string, snapshot playback.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, SnapshotEvent{Session: session, Snapshot: snapshot})
	return nil
}

func (p *recordingPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *recordingPublisher) Events() []SnapshotEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]SnapshotEvent(nil), p.events...)
}

type frame struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func readUntil(ws *websocket.Conn, t MessageType, v any) {
	_ = ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var f frame
		So(ws.ReadJSON(&f), ShouldBeNil)
		if f.Type == t {
			if v != nil {
				So(json.Unmarshal(f.Payload, v), ShouldBeNil)
			}
			return
		}
	}
}

func sendMessage(ws *websocket.Conn, t MessageType, payload string) {
	So(ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"`+string(t)+`","payload":`+payload+`}`)), ShouldBeNil)
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

func TestHealth(t *testing.T) {
	Convey("GET /health reports ok", t, func() {
		s := New(Options{})
		w := httptest.NewRecorder()
		s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		So(w.Code, ShouldEqual, http.StatusOK)
		So(w.Body.String(), ShouldContainSubstring, `"status":"ok"`)
	})
}

func TestSession(t *testing.T) {
	Convey("Given a connected client", t, func() {
		publisher := &recordingPublisher{}
		s := New(Options{Publisher: publisher})
		server := httptest.NewServer(s.Router())
		defer server.Close()

		ws, _, err := websocket.DefaultDialer.Dial(wsURL(server), nil)
		So(err, ShouldBeNil)
		defer ws.Close()

		var hello HelloMessage
		readUntil(ws, MessageTypeHello, &hello)

		Convey("The hello names the session and its ops", func() {
			So(hello.Session, ShouldNotBeEmpty)
			So(hello.Ops, ShouldContain, "play")
			So(hello.Ops, ShouldContain, "geometry")
			So(hello.Snapshot.Mode, ShouldEqual, playback.Idle)
			So(s.Sessions(), ShouldResemble, []string{hello.Session})
		})

		Convey("A seek step answers with a snapshot and publishes it", func() {
			sendMessage(ws, MessageTypeStep, `{"op":"seek","time":3}`)

			var snapshot playback.Snapshot
			readUntil(ws, MessageTypeSnapshot, &snapshot)
			So(snapshot.Time, ShouldEqual, 3)
			So(snapshot.Elapsed, ShouldEqual, "00:03.0")

			events := publisher.Events()
			So(events, ShouldNotBeEmpty)
			So(events[len(events)-1].Session, ShouldEqual, hello.Session)
			So(events[len(events)-1].Snapshot.Time, ShouldEqual, 3)

			Convey("And the snapshot is readable over HTTP", func() {
				resp, err := http.Get(server.URL + "/sessions/" + hello.Session)
				So(err, ShouldBeNil)
				defer resp.Body.Close()

				var got playback.Snapshot
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
				So(got.Time, ShouldEqual, 3)
			})
		})

		Convey("Playing pushes surface commands", func() {
			sendMessage(ws, MessageTypeStep, `{"op":"play"}`)

			var call playback.Call
			readUntil(ws, MessageTypeSurface, &call)
			So(call.Op, ShouldEqual, playback.OpPlay)

			sendMessage(ws, MessageTypeStep, `{"op":"play"}`)
			for call.Op != playback.OpPause {
				readUntil(ws, MessageTypeSurface, &call)
				So(call.Op, ShouldBeIn, playback.OpPosition, playback.OpPause)
			}
		})

		Convey("An unknown step is reported", func() {
			sendMessage(ws, MessageTypeStep, `{"op":"sek"}`)

			var e ErrorMessage
			readUntil(ws, MessageTypeError, &e)
			So(e.Op, ShouldEqual, "sek")
			So(e.Error, ShouldContainSubstring, `did you mean "seek"?`)
		})

		Convey("Waiting is not available on wall-clock sessions", func() {
			sendMessage(ws, MessageTypeStep, `{"op":"wait","ms":100}`)

			var e ErrorMessage
			readUntil(ws, MessageTypeError, &e)
			So(e.Error, ShouldContainSubstring, "manual scheduler")
		})

		Convey("Ping is answered with pong", func() {
			sendMessage(ws, MessageTypePing, `{"sendtime":42}`)

			var pong PongMessage
			readUntil(ws, MessageTypePong, &pong)
			So(pong.Timestamp, ShouldEqual, 42)
			So(pong.SvcTime, ShouldBeGreaterThan, 0)
		})

		Convey("Load replaces the element", func() {
			sendMessage(ws, MessageTypeLoad, `{"kind":"image","trim":{"start":1,"end":4}}`)

			var snapshot playback.Snapshot
			readUntil(ws, MessageTypeSnapshot, &snapshot)
			So(snapshot.Kind.String(), ShouldEqual, "image")
			So(snapshot.Window.Start, ShouldEqual, 1)
			So(snapshot.Window.End, ShouldEqual, 4)
			So(snapshot.Time, ShouldEqual, 1)
		})

		Convey("An invalid load is rejected", func() {
			sendMessage(ws, MessageTypeLoad, `{"trim":{"start":4,"end":1}}`)

			var e ErrorMessage
			readUntil(ws, MessageTypeError, &e)
			So(e.Op, ShouldEqual, "load")
		})

		Convey("Malformed messages are reported without closing", func() {
			So(ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"dance"}`)), ShouldBeNil)

			var e ErrorMessage
			readUntil(ws, MessageTypeError, &e)
			So(e.Error, ShouldContainSubstring, "dance")

			sendMessage(ws, MessageTypePing, `{"sendtime":1}`)
			readUntil(ws, MessageTypePong, nil)
		})

		Convey("Disconnecting forgets the session", func() {
			So(ws.Close(), ShouldBeNil)

			deadline := time.Now().Add(5 * time.Second)
			for len(s.Sessions()) > 0 && time.Now().Before(deadline) {
				time.Sleep(10 * time.Millisecond)
			}
			So(s.Sessions(), ShouldBeEmpty)
		})
	})
}

func TestUnknownSession(t *testing.T) {
	Convey("GET /sessions/{id} for a missing session is 404", t, func() {
		s := New(Options{})
		w := httptest.NewRecorder()
		s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/nope", nil))

		So(w.Code, ShouldEqual, http.StatusNotFound)
	})
}

func TestOrigins(t *testing.T) {
	Convey("Given a server restricted to one origin", t, func() {
		s := New(Options{AllowedOrigins: []string{"http://localhost:3000"}})
		server := httptest.NewServer(s.Router())
		defer server.Close()

		Convey("The allowed origin connects", func() {
			header := http.Header{}
			header.Set("Origin", "http://localhost:3000")

			ws, _, err := websocket.DefaultDialer.Dial(wsURL(server), header)
			So(err, ShouldBeNil)
			ws.Close()
		})

		Convey("Other origins are forbidden", func() {
			header := http.Header{}
			header.Set("Origin", "http://evil.com")

			_, resp, err := websocket.DefaultDialer.Dial(wsURL(server), header)
			So(err, ShouldNotBeNil)
			So(resp, ShouldNotBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusForbidden)
		})
	})
}

func TestClose(t *testing.T) {
	Convey("Close releases the publisher", t, func() {
		publisher := &recordingPublisher{}
		s := New(Options{Publisher: publisher})
		s.Close()

		So(publisher.closed, ShouldBeTrue)
	})
}

func TestDeserialise(t *testing.T) {
	Convey("Deserialise", t, func() {
		Convey("Types step payloads", func() {
			var m Message
			So(Deserialise([]byte(`{"type":"step","payload":{"op":"trim","start":1,"end":2}}`), &m), ShouldBeNil)
			So(m.Type, ShouldEqual, MessageTypeStep)
			So(m.ReceivedAt.IsZero(), ShouldBeFalse)
		})

		Convey("Accepts a missing payload", func() {
			var m Message
			So(Deserialise([]byte(`{"type":"ping"}`), &m), ShouldBeNil)
			So(m.Payload, ShouldHaveSameTypeAs, &PingMessage{})
		})

		Convey("Rejects server-bound types", func() {
			var m Message
			So(Deserialise([]byte(`{"type":"snapshot","payload":{}}`), &m), ShouldNotBeNil)
		})

		Convey("Rejects invalid json", func() {
			var m Message
			So(Deserialise([]byte(`{`), &m), ShouldNotBeNil)
		})
	})
}
