package services

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"nss-backend/internal/models"
	"nss-backend/internal/monitoring"
	"nss-backend/internal/timeutil"

	qrcode "github.com/skip2/go-qrcode"
)

// TokenBroadcaster receives every freshly minted token. Satisfied by
// *ws.Hub; nil is allowed.
type TokenBroadcaster interface {
	Broadcast(v interface{})
}

// TokenIssuer runs the mentor-side attendance token session. Two
// states: idle and active. While active, a background goroutine counts
// a visible 5-second window down once per second and mints a fresh
// token when it reaches zero. Tokens are never mutated after minting;
// each refresh simply replaces the current one.
type TokenIssuer struct {
	mu        sync.Mutex
	active    bool
	current   models.AttendanceToken
	remaining int
	stop      chan struct{}

	refreshSeconds int
	tick           time.Duration

	hub     TokenBroadcaster
	metrics *monitoring.Metrics
}

// NewTokenIssuer creates an idle issuer. refreshSeconds is the
// rotation window (5 in production). hub and metrics may be nil.
func NewTokenIssuer(refreshSeconds int, hub TokenBroadcaster, metrics *monitoring.Metrics) *TokenIssuer {
	if refreshSeconds <= 0 {
		refreshSeconds = 5
	}
	return &TokenIssuer{
		refreshSeconds: refreshSeconds,
		tick:           time.Second,
		hub:            hub,
		metrics:        metrics,
	}
}

// SetTickInterval shrinks the countdown tick. Tests use this to drive
// full rotation cycles in milliseconds.
func (i *TokenIssuer) SetTickInterval(d time.Duration) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.tick = d
}

// StartSession validates the inputs, transitions idle to active, mints
// the first token immediately and starts the refresh cycle
func (i *TokenIssuer) StartSession(eventID, eventName string, hours int) error {
	if eventID == "" {
		return models.ErrMissingEvent
	}
	if hours < models.MinTokenHours || hours > models.MaxTokenHours {
		return models.ErrInvalidHours
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.active {
		return models.ErrSessionActive
	}

	i.active = true
	i.stop = make(chan struct{})
	i.mintLocked(eventID, eventName, hours)
	if i.metrics != nil {
		i.metrics.SessionsStarted.Inc()
	}

	go i.run(i.stop)
	return nil
}

// StopSession transitions active to idle and cancels the refresh
// goroutine. The last-minted token goes stale on its own via the
// freshness window at redemption. Safe to call when already idle.
func (i *TokenIssuer) StopSession() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.active {
		return
	}
	i.active = false
	close(i.stop)
	i.stop = nil
}

// run is the per-session countdown loop. It owns no state directly;
// every mutation happens under the issuer lock.
func (i *TokenIssuer) run(stop chan struct{}) {
	ticker := time.NewTicker(i.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			i.mu.Lock()
			if !i.active {
				i.mu.Unlock()
				return
			}
			i.remaining--
			if i.remaining <= 0 {
				i.mintLocked(i.current.EventID, i.current.EventName, i.current.Hours)
			}
			i.mu.Unlock()
		}
	}
}

// mintLocked replaces the current token and resets the countdown.
// Caller holds the lock.
func (i *TokenIssuer) mintLocked(eventID, eventName string, hours int) {
	i.current = models.AttendanceToken{
		EventID:   eventID,
		EventName: eventName,
		Timestamp: timeutil.Now().UnixMilli(),
		Hours:     hours,
		RandomStr: randomString(6),
	}
	i.remaining = i.refreshSeconds

	if i.metrics != nil {
		i.metrics.TokensMinted.Inc()
	}
	if i.hub != nil {
		i.hub.Broadcast(models.SessionStatus{
			Active:           true,
			Token:            &i.current,
			SecondsRemaining: i.remaining,
		})
	}
}

// CurrentToken returns the live token, if any
func (i *TokenIssuer) CurrentToken() (models.AttendanceToken, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.current, i.active
}

// SecondsRemaining returns the countdown until the next mint, 0 when idle
func (i *TokenIssuer) SecondsRemaining() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.active {
		return 0
	}
	return i.remaining
}

// Status reports the issuer state for the display page
func (i *TokenIssuer) Status() models.SessionStatus {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.active {
		return models.SessionStatus{Active: false}
	}

	token := i.current
	payload, _ := json.Marshal(token)
	return models.SessionStatus{
		Active:           true,
		Token:            &token,
		Payload:          string(payload),
		SecondsRemaining: i.remaining,
	}
}

// ExportCurrentToken serializes the live token as the flat JSON
// payload rendered inside the QR code
func (i *TokenIssuer) ExportCurrentToken() (string, error) {
	token, ok := i.CurrentToken()
	if !ok {
		return "", models.ErrNoActiveSession
	}

	payload, err := json.Marshal(token)
	if err != nil {
		return "", fmt.Errorf("failed to encode token: %w", err)
	}
	return string(payload), nil
}

// ExportCurrentTokenPNG renders the live token as a QR raster for the
// download button on the mentor page
func (i *TokenIssuer) ExportCurrentTokenPNG(size int) ([]byte, error) {
	payload, err := i.ExportCurrentToken()
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = 256
	}

	png, err := qrcode.Encode(payload, qrcode.High, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}

const nonceAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// randomString distinguishes tokens minted in the same millisecond
func randomString(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// Degraded but functional: the timestamp still varies
		for i := range b {
			b[i] = nonceAlphabet[i%len(nonceAlphabet)]
		}
	}
	for i := range b {
		b[i] = nonceAlphabet[int(b[i])%len(nonceAlphabet)]
	}
	return string(b)
}
