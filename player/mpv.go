package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/clipedit/clipedit/constant"
	"github.com/clipedit/clipedit/log"
	"github.com/clipedit/clipedit/where"
	"github.com/samber/mo"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

var ErrNotRunning = errors.New("mpv is not running")

// MPV is a playback surface backed by an mpv process. Commands may be issued
// from any goroutine; property observations arrive through Handlers.
type MPV struct {
	binary     string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	mu         sync.Mutex // serializes socket writes
	listener   *EventListener
	log        *log.Scoped

	tolerance time.Duration
	markers   bool

	stateMu  sync.Mutex
	position mo.Option[float64]
}

// NewMPV creates an idle instance; nothing is started until Open.
func NewMPV(binary string) *MPV {
	if binary == "" {
		binary = "mpv"
	}

	return &MPV{
		binary: binary,
		exited: make(chan struct{}),
		log:    log.Component("mpv"),
	}
}

// Open shows path in the mpv window, starting mpv paused on first use and
// loading into the running instance afterwards.
func (m *MPV) Open(path, title string, handlers Handlers) error {
	target, err := sanitizeMediaTarget(path)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if m.IsRunning() {
		if _, err := m.sendCommand([]any{"loadfile", target, "replace"}); err != nil {
			return fmt.Errorf("loadfile: %w", err)
		}
		m.forgetPosition()
		return m.Set("force-media-title", sanitizeTitle(title))
	}

	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("%s-%x.sock", constant.App, randomBytes))
	}

	m.cmd = exec.Command(m.binary, buildArgs(m.socketPath, sanitizeTitle(title), target)...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	exited := make(chan struct{})
	m.exited = exited
	go func() {
		_ = m.cmd.Wait()
		close(exited)
		if handlers.Exited != nil {
			handlers.Exited()
		}
	}()

	if err := m.waitForSocket(); err != nil {
		if m.cmd.Process != nil {
			select {
			case <-m.exited:
			default:
				m.log.Warnf("killing mpv: socket never became ready")
				_ = m.cmd.Process.Kill()
			}
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.listener = NewEventListener(m.socketPath, m.dispatch(handlers))
	if err := m.listener.Start(); err != nil {
		m.log.Warnf("event listener: %v", err)
	}

	return nil
}

// buildArgs leaves vo, profile and hwdec to the user's mpv.conf.
func buildArgs(socket, title, target string) []string {
	return []string{
		"--no-terminal",
		"--really-quiet",
		"--pause",
		"--keep-open=always",
		"--idle=yes",
		"--force-window=yes",
		fmt.Sprintf("--input-ipc-server=%s", socket),
		fmt.Sprintf("--force-media-title=%s", title),
		fmt.Sprintf("--title=%s", title),
		"--",
		target,
	}
}

func (m *MPV) dispatch(handlers Handlers) EventCallback {
	return func(property string, data any) {
		switch property {
		case "time-pos":
			seconds, ok := data.(float64)
			if !ok {
				m.forgetPosition()
				return
			}
			m.stateMu.Lock()
			m.position = mo.Some(seconds)
			m.stateMu.Unlock()
			if handlers.Position != nil {
				handlers.Position(seconds)
			}
		case "pause":
			paused, ok := data.(bool)
			if ok && handlers.Paused != nil {
				handlers.Paused(paused)
			}
		}
	}
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) Play() error {
	return m.setRunning("pause", false)
}

func (m *MPV) Pause() error {
	return m.setRunning("pause", true)
}

// SetPosition seeks exactly, unless the observed position is already within
// the sync tolerance. Playback ticks land here ten times a second.
func (m *MPV) SetPosition(seconds float64) error {
	if !m.running() {
		return ErrNotRunning
	}

	if m.withinTolerance(seconds) {
		return nil
	}

	if _, err := m.sendCommand([]any{"seek", seconds, "absolute+exact"}); err != nil {
		return err
	}

	m.stateMu.Lock()
	m.position = mo.Some(seconds)
	m.stateMu.Unlock()
	return nil
}

// SetVisible toggles the video track. mpv has no opacity, so fade is ignored.
func (m *MPV) SetVisible(visible bool, _ time.Duration) error {
	return m.setRunning("vid", vidValue(visible))
}

func vidValue(visible bool) string {
	if visible {
		return "auto"
	}
	return "no"
}

func (m *MPV) withinTolerance(seconds float64) bool {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	observed, ok := m.position.Get()
	return ok && math.Abs(observed-seconds)*float64(time.Second) <= float64(m.tolerance)
}

func (m *MPV) forgetPosition() {
	m.stateMu.Lock()
	m.position = mo.None[float64]()
	m.stateMu.Unlock()
}

// TimePos returns the position last reported by mpv.
func (m *MPV) TimePos() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// Duration is the length of the loaded file in seconds.
func (m *MPV) Duration() (float64, error) {
	return m.getFloatProperty("duration")
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if !m.running() {
		return false
	}

	_, err := m.sendCommand([]any{"get_property", "pid"})
	return err == nil
}

// running checks the process without a round trip.
func (m *MPV) running() bool {
	if m.socketPath == "" || m.cmd == nil {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

// Close quits mpv, killing it if it does not exit in time.
func (m *MPV) Close() error {
	if m.listener != nil {
		m.listener.Stop()
	}

	if m.socketPath == "" || m.cmd == nil {
		return nil
	}

	_, _ = m.sendCommand([]any{"quit"})

	select {
	case <-m.exited:
	case <-time.After(quitTimeout):
		_ = stopProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

func (m *MPV) Socket() string {
	return m.socketPath
}

func (m *MPV) setRunning(property string, value any) error {
	if !m.running() {
		return ErrNotRunning
	}
	return m.Set(property, value)
}

// Set writes an mpv property.
func (m *MPV) Set(property string, value any) error {
	_, err := m.sendCommand([]any{"set_property", property, value})
	return err
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]any{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget keeps script- or client-supplied paths from being
// read as mpv flags.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in path")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("path must not start with '-'")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "file":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
