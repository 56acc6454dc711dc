package companionmobile

import (
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"streamcompanion/actions"
	"streamcompanion/tracker"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Manager exposes the companion to bindings that only pass strings and
// errors across the boundary. Every result is a JSON document.
type Manager struct {
	tracker *tracker.Tracker
	session *tracker.Session
	catalog *actions.Catalog
}

// SessionStatus is returned by every session operation. Warning carries a
// failed save, which does not make the operation fail.
type SessionStatus struct {
	Session tracker.Snapshot `json:"session"`
	Warning string           `json:"warning,omitempty"`
}

func NewManager(statsFile string) *Manager {
	return &Manager{
		tracker: tracker.NewTracker(statsFile, nil),
		catalog: actions.NewCatalog(),
	}
}

// OpenSession loads the stats file and starts a session. Calling it again
// starts over from what is on disk.
func (m *Manager) OpenSession() (string, error) {
	m.session = m.tracker.Open()
	return toJSON(SessionStatus{Session: m.session.Snapshot()})
}

func (m *Manager) SessionJSON() (string, error) {
	sess, err := m.currentSession()
	if err != nil {
		return "", err
	}
	return toJSON(SessionStatus{Session: sess.Snapshot()})
}

func (m *Manager) RecordVictoryJSON() (string, error) {
	return m.apply((*tracker.Session).Victory)
}

func (m *Manager) RecordTop10JSON() (string, error) {
	return m.apply((*tracker.Session).Top10)
}

func (m *Manager) StartNewGameJSON() (string, error) {
	return m.apply((*tracker.Session).NewGame)
}

func (m *Manager) ResetSessionJSON() (string, error) {
	return m.apply((*tracker.Session).Reset)
}

func (m *Manager) AdjustEliminationsJSON(delta int) (string, error) {
	sess, err := m.currentSession()
	if err != nil {
		return "", err
	}
	return toJSON(SessionStatus{Session: sess.AdjustEliminations(delta)})
}

func (m *Manager) TabsJSON() (string, error) {
	return toJSON(m.catalog.Tabs())
}

func (m *Manager) ActionsJSON(tab string) (string, error) {
	var names []string
	for _, action := range m.catalog.Actions(actions.Tab(tab)) {
		names = append(names, action.Name())
	}
	return toJSON(names)
}

func (m *Manager) RunActionJSON(tab, name, input string) (string, error) {
	notice, err := m.catalog.Run(context.Background(), actions.Tab(tab), name, input)
	if err != nil {
		return "", err
	}
	return toJSON(notice)
}

func (m *Manager) apply(op func(*tracker.Session) (tracker.Snapshot, error)) (string, error) {
	sess, err := m.currentSession()
	if err != nil {
		return "", err
	}
	snap, saveErr := op(sess)
	status := SessionStatus{Session: snap}
	if saveErr != nil {
		status.Warning = saveErr.Error()
	}
	return toJSON(status)
}

func (m *Manager) currentSession() (*tracker.Session, error) {
	if m.session == nil {
		return nil, errors.New("no session open")
	}
	return m.session, nil
}

func toJSON(value any) (string, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return string(payload), nil
}
