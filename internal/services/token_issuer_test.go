package services

import (
	"bytes"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"nss-backend/internal/models"
)

// recordingBroadcaster counts what the issuer pushes to the hub
type recordingBroadcaster struct {
	mu     sync.Mutex
	minted []models.SessionStatus
}

func (b *recordingBroadcaster) Broadcast(v interface{}) {
	status, ok := v.(models.SessionStatus)
	if !ok {
		return
	}
	b.mu.Lock()
	b.minted = append(b.minted, status)
	b.mu.Unlock()
}

func (b *recordingBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.minted)
}

func TestStartSessionValidation(t *testing.T) {
	issuer := NewTokenIssuer(5, nil, nil)

	if err := issuer.StartSession("", "Tree Plantation", 2); err != models.ErrMissingEvent {
		t.Errorf("expected ErrMissingEvent for empty event, got %v", err)
	}
	if err := issuer.StartSession("event-001", "Tree Plantation", 0); err != models.ErrInvalidHours {
		t.Errorf("expected ErrInvalidHours for 0 hours, got %v", err)
	}
	if err := issuer.StartSession("event-001", "Tree Plantation", 9); err != models.ErrInvalidHours {
		t.Errorf("expected ErrInvalidHours for 9 hours, got %v", err)
	}

	if _, active := issuer.CurrentToken(); active {
		t.Error("issuer should stay idle after rejected starts")
	}
}

func TestStartSessionMintsImmediately(t *testing.T) {
	issuer := NewTokenIssuer(5, nil, nil)

	if err := issuer.StartSession("event-001", "Tree Plantation", 2); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	defer issuer.StopSession()

	token, active := issuer.CurrentToken()
	if !active {
		t.Fatal("issuer should be active after StartSession")
	}
	if token.EventID != "event-001" || token.EventName != "Tree Plantation" || token.Hours != 2 {
		t.Errorf("unexpected token fields: %+v", token)
	}
	if token.Timestamp == 0 {
		t.Error("minted token should carry a timestamp")
	}
	if token.RandomStr == "" {
		t.Error("minted token should carry a nonce")
	}
	if remaining := issuer.SecondsRemaining(); remaining != 5 {
		t.Errorf("SecondsRemaining = %d right after mint, want 5", remaining)
	}
}

func TestStartSessionWhileActive(t *testing.T) {
	issuer := NewTokenIssuer(5, nil, nil)

	if err := issuer.StartSession("event-001", "Tree Plantation", 2); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	defer issuer.StopSession()

	if err := issuer.StartSession("event-002", "Blood Camp", 3); err != models.ErrSessionActive {
		t.Errorf("expected ErrSessionActive, got %v", err)
	}

	token, _ := issuer.CurrentToken()
	if token.EventID != "event-001" {
		t.Errorf("rejected start must not replace the live token, got %q", token.EventID)
	}
}

func TestTokenRotation(t *testing.T) {
	hub := &recordingBroadcaster{}
	issuer := NewTokenIssuer(2, hub, nil)
	issuer.SetTickInterval(time.Millisecond)

	if err := issuer.StartSession("event-001", "Tree Plantation", 2); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	defer issuer.StopSession()

	first, _ := issuer.CurrentToken()

	deadline := time.Now().Add(2 * time.Second)
	for {
		current, _ := issuer.CurrentToken()
		if current.RandomStr != first.RandomStr {
			if current.EventID != first.EventID || current.Hours != first.Hours {
				t.Errorf("rotation changed event fields: %+v vs %+v", current, first)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("token did not rotate within deadline")
		}
		time.Sleep(time.Millisecond)
	}

	if hub.count() < 2 {
		t.Errorf("expected at least 2 broadcasts (initial mint + rotation), got %d", hub.count())
	}
}

func TestStopSession(t *testing.T) {
	issuer := NewTokenIssuer(5, nil, nil)

	// Stopping an idle issuer is a no-op
	issuer.StopSession()

	if err := issuer.StartSession("event-001", "Tree Plantation", 2); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	issuer.StopSession()
	issuer.StopSession()

	if _, active := issuer.CurrentToken(); active {
		t.Error("issuer should be idle after StopSession")
	}
	if _, err := issuer.ExportCurrentToken(); err != models.ErrNoActiveSession {
		t.Errorf("expected ErrNoActiveSession after stop, got %v", err)
	}

	status := issuer.Status()
	if status.Active || status.Token != nil {
		t.Errorf("idle status should carry no token: %+v", status)
	}
	if remaining := issuer.SecondsRemaining(); remaining != 0 {
		t.Errorf("SecondsRemaining = %d when idle, want 0", remaining)
	}
}

func TestExportCurrentToken(t *testing.T) {
	issuer := NewTokenIssuer(5, nil, nil)
	if err := issuer.StartSession("event-001", "Tree Plantation", 2); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	defer issuer.StopSession()

	payload, err := issuer.ExportCurrentToken()
	if err != nil {
		t.Fatalf("ExportCurrentToken failed: %v", err)
	}

	var token models.AttendanceToken
	if err := json.Unmarshal([]byte(payload), &token); err != nil {
		t.Fatalf("exported payload is not valid JSON: %v", err)
	}

	current, _ := issuer.CurrentToken()
	if token != current {
		t.Errorf("exported token %+v does not match live token %+v", token, current)
	}
}

func TestExportCurrentTokenPNG(t *testing.T) {
	issuer := NewTokenIssuer(5, nil, nil)

	if _, err := issuer.ExportCurrentTokenPNG(256); err != models.ErrNoActiveSession {
		t.Fatalf("expected ErrNoActiveSession when idle, got %v", err)
	}

	if err := issuer.StartSession("event-001", "Tree Plantation", 2); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	defer issuer.StopSession()

	png, err := issuer.ExportCurrentTokenPNG(0)
	if err != nil {
		t.Fatalf("ExportCurrentTokenPNG failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("rendered bytes are not a PNG")
	}
}
