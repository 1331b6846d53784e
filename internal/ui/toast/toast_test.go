package toast

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/riordanpawley/hearth/internal/notify"
	"github.com/riordanpawley/hearth/internal/types"
	"github.com/riordanpawley/hearth/internal/ui/styles"
)

func toastOf(msg string, typ types.ToastType) notify.Toast {
	return notify.Toast{
		Message:     msg,
		Type:        typ,
		Duration:    notify.DefaultDuration,
		Dismissible: true,
		CreatedAt:   time.Now(),
	}
}

func TestToastRenderer_Render_Empty(t *testing.T) {
	renderer := New(styles.New(), types.ToastTopRight)

	result := renderer.Render(nil, 80)

	assert.Equal(t, "", result, "Empty toast list should return empty string")
}

func TestToastRenderer_Render_SingleToast(t *testing.T) {
	renderer := New(styles.New(), types.ToastTopRight)

	result := renderer.Render([]notify.Toast{toastOf("Settings saved", types.ToastSuccess)}, 80)

	assert.Contains(t, result, "Settings saved")
	assert.Contains(t, result, types.ToastSuccess.Icon())
	assert.Contains(t, result, "×", "dismissible toasts show a close mark")
}

func TestToastRenderer_Render_OrderFollowsAnchor(t *testing.T) {
	// newest first, as Queue.Visible returns them
	toasts := []notify.Toast{
		toastOf("Third", types.ToastError),
		toastOf("Second", types.ToastWarning),
		toastOf("First", types.ToastInfo),
	}

	tests := []struct {
		name     string
		position types.ToastPosition
		topFirst string
	}{
		{"top stacks newest at top", types.ToastTopRight, "Third"},
		{"bottom stacks newest at bottom", types.ToastBottomLeft, "First"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New(styles.New(), tt.position).Render(toasts, 90)

			lines := strings.Split(result, "\n")
			assert.Greater(t, len(lines), 3, "toasts should stack vertically")

			first := strings.Index(result, tt.topFirst)
			for _, msg := range []string{"First", "Second", "Third"} {
				assert.GreaterOrEqual(t, strings.Index(result, msg), first)
			}
		})
	}
}

func TestToastRenderer_Render_FullWidth(t *testing.T) {
	result := New(styles.New(), types.ToastTopCenter).Render([]notify.Toast{toastOf("hi", types.ToastInfo)}, 60)

	for _, line := range strings.Split(result, "\n") {
		assert.Equal(t, 60, len([]rune(stripANSI(line))))
	}
}

func TestToastRenderer_Render_Exiting(t *testing.T) {
	exiting := toastOf("Going away", types.ToastInfo)
	exiting.Exiting = true

	result := New(styles.New(), types.ToastTopRight).Render([]notify.Toast{exiting}, 80)

	assert.Contains(t, result, "Going away")
	assert.NotContains(t, result, "×", "exiting toasts cannot be dismissed again")
}

func TestToastRenderer_Render_NarrowTerminal(t *testing.T) {
	result := New(styles.New(), types.ToastTopRight).Render([]notify.Toast{toastOf("x", types.ToastInfo)}, 12)
	assert.NotEmpty(t, result)
}

// stripANSI removes escape sequences so widths can be compared
func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
