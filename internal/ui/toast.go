package ui

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Transient error notifications stay visible long enough to be read, then
// expire on their own. Blocking errors never go through toasts; see Banner.
const errorToastDuration = 6 * time.Second

// ToastType represents the type of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// Toast represents a single toast notification.
type Toast struct {
	ID        int
	Type      ToastType
	Message   string
	Duration  time.Duration
	CreatedAt time.Time
}

// IsExpired returns true if the toast should be removed.
func (t *Toast) IsExpired() bool {
	return time.Since(t.CreatedAt) > t.Duration
}

// ToastManager manages toast notifications.
type ToastManager struct {
	mu        sync.Mutex
	toasts    []Toast
	maxToasts int
	nextID    int
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{
		toasts:    make([]Toast, 0),
		maxToasts: 3,
		nextID:    1,
	}
}

// Show displays a new toast notification.
func (m *ToastManager) Show(toastType ToastType, message string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	toast := Toast{
		ID:        m.nextID,
		Type:      toastType,
		Message:   message,
		Duration:  duration,
		CreatedAt: time.Now(),
	}
	m.nextID++

	// Newest first
	m.toasts = append([]Toast{toast}, m.toasts...)
	if len(m.toasts) > m.maxToasts {
		m.toasts = m.toasts[:m.maxToasts]
	}
}

// ShowSuccess displays a success toast.
func (m *ToastManager) ShowSuccess(message string) {
	m.Show(ToastSuccess, message, 3*time.Second)
}

// ShowError displays a transient error toast.
func (m *ToastManager) ShowError(message string) {
	m.Show(ToastError, message, errorToastDuration)
}

// ShowInfo displays an info toast.
func (m *ToastManager) ShowInfo(message string) {
	m.Show(ToastInfo, message, 3*time.Second)
}

// ShowWarning displays a warning toast.
func (m *ToastManager) ShowWarning(message string) {
	m.Show(ToastWarning, message, 4*time.Second)
}

// Update removes expired toasts.
func (m *ToastManager) Update() {
	m.mu.Lock()
	defer m.mu.Unlock()

	var active []Toast
	for _, toast := range m.toasts {
		if !toast.IsExpired() {
			active = append(active, toast)
		}
	}
	m.toasts = active
}

// Count returns the number of active toasts.
func (m *ToastManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts)
}

// View renders all active toasts, newest on top.
func (m *ToastManager) View(width int) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.toasts) == 0 {
		return ""
	}

	var lines []string
	for _, toast := range m.toasts {
		lines = append(lines, renderToast(toast, width))
	}
	return strings.Join(lines, "\n")
}

// renderToast renders a single toast as a compact single line.
func renderToast(toast Toast, width int) string {
	var icon string
	var iconColor lipgloss.Color

	switch toast.Type {
	case ToastSuccess:
		icon, iconColor = "✓", ColorSuccess
	case ToastError:
		icon, iconColor = "✗", ColorError
	case ToastWarning:
		icon, iconColor = "⚠", ColorWarning
	default: // ToastInfo
		icon, iconColor = "ℹ", ColorInfo
	}

	// Fade when nearing expiration
	if toast.Duration-time.Since(toast.CreatedAt) < 500*time.Millisecond {
		iconColor = ColorDim
	}

	iconStyle := lipgloss.NewStyle().Foreground(iconColor).Bold(true)
	msgStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	maxLen := width - 5
	if maxLen < 20 {
		maxLen = 20
	}
	msg := truncateRunes(toast.Message, maxLen)

	return iconStyle.Render(icon) + " " + msgStyle.Render(msg)
}

// Clear removes all toasts.
func (m *ToastManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toasts = m.toasts[:0]
}
