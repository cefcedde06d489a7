// Package session owns per-tab console state. Each browser tab gets its
// own registry client (and therefore its own upstream cookie jar), its
// own brand-scoped device list and its own view router, mirroring how
// tabs are isolated in the browser the console stands in for.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-registry-console/internal/catalog"
	"go-registry-console/internal/download"
	"go-registry-console/internal/models"
	"go-registry-console/internal/registry"
	"go-registry-console/internal/viewstate"
)

// CookieName carries the tab id between requests.
const CookieName = "console_tab"

// Tab is the state of one browser tab. Requests sharing the tab cookie
// run concurrently, so the mutable fields live behind mu and are read
// through accessors.
type Tab struct {
	ID string

	Client *registry.Client
	Store  *catalog.Store
	Router *viewstate.Router

	mu          sync.Mutex
	session     *models.Session
	brand       string
	qrToken     string
	bannerShown bool
	downloads   map[uint]*download.Flow
	lastSeen    time.Time
}

// Session returns the tab's session, nil when unauthenticated.
func (t *Tab) Session() *models.Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session
}

// Brand returns the current brand scope, empty when none is selected.
func (t *Tab) Brand() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.brand
}

// QRToken returns the token the tab entered with, empty otherwise.
func (t *Tab) QRToken() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.qrToken
}

// ClaimBanner reports whether the read-only banner is still owed to the
// user and marks it shown, so it renders at most once per entry.
func (t *Tab) ClaimBanner() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bannerShown {
		return false
	}
	t.bannerShown = true
	return true
}

// Download returns the protected-download flow for a file, creating it
// on first use. Flows are per tab and per file, so two prompts never
// share state.
func (t *Tab) Download(fileID uint) *download.Flow {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.downloads == nil {
		t.downloads = make(map[uint]*download.Flow)
	}
	flow, ok := t.downloads[fileID]
	if !ok {
		flow = download.NewFlow(t.Client.DownloadProtectedFile)
		t.downloads[fileID] = flow
	}
	return flow
}

// Manager tracks live tabs and prunes the ones the user walked away
// from.
type Manager struct {
	mu   sync.RWMutex
	tabs map[string]*Tab

	registryURL string
	timeout     time.Duration
	maxIdle     time.Duration
}

// NewManager creates a manager whose tabs talk to the registry at
// registryURL. Tabs idle longer than maxIdle are dropped by the cleanup
// loop.
func NewManager(registryURL string, timeout, maxIdle time.Duration) *Manager {
	if maxIdle <= 0 {
		maxIdle = 2 * time.Hour
	}
	return &Manager{
		tabs:        make(map[string]*Tab),
		registryURL: registryURL,
		timeout:     timeout,
		maxIdle:     maxIdle,
	}
}

// Acquire returns the tab for the given id, creating a fresh one when
// the id is empty or unknown. The returned id must be written back to
// the tab cookie when it differs from the input.
func (m *Manager) Acquire(tabID string) *Tab {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tabID != "" {
		if tab, ok := m.tabs[tabID]; ok {
			tab.mu.Lock()
			tab.lastSeen = time.Now()
			tab.mu.Unlock()
			return tab
		}
	}

	tab := &Tab{
		ID:       uuid.NewString(),
		Client:   registry.NewClient(m.registryURL, m.timeout),
		Store:    catalog.NewStore(),
		Router:   viewstate.NewRouter(),
		lastSeen: time.Now(),
	}
	m.tabs[tab.ID] = tab
	return tab
}

// Drop removes a tab outright.
func (m *Manager) Drop(tabID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tabs, tabID)
}

// Len returns the number of live tabs.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tabs)
}

// Prune drops tabs idle past the cutoff and returns how many went.
func (m *Manager) Prune() int {
	cutoff := time.Now().Add(-m.maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, tab := range m.tabs {
		tab.mu.Lock()
		idle := tab.lastSeen.Before(cutoff)
		tab.mu.Unlock()
		if idle {
			delete(m.tabs, id)
			n++
		}
	}
	return n
}

// StartCleanup prunes idle tabs on an interval until ctx is done.
func (m *Manager) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Prune()
			}
		}
	}()
}
