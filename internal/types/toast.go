package types

// ToastType is the semantic kind of a toast notification.
// It only affects presentation.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// String returns the string representation of the toast type
func (t ToastType) String() string {
	switch t {
	case ToastSuccess:
		return "success"
	case ToastWarning:
		return "warning"
	case ToastError:
		return "error"
	default:
		return "info"
	}
}

// Icon returns the glyph shown in front of the toast message
func (t ToastType) Icon() string {
	switch t {
	case ToastSuccess:
		return "✓"
	case ToastWarning:
		return "⚠"
	case ToastError:
		return "✗"
	default:
		return "ℹ"
	}
}

// ToastPosition selects the screen corner the toaster is anchored to
type ToastPosition int

const (
	ToastTopRight ToastPosition = iota
	ToastTopLeft
	ToastBottomRight
	ToastBottomLeft
	ToastTopCenter
	ToastBottomCenter
)

// ParseToastPosition parses a config value such as "top-right".
// Unknown values fall back to ToastTopRight.
func ParseToastPosition(s string) ToastPosition {
	switch s {
	case "top-left":
		return ToastTopLeft
	case "bottom-right":
		return ToastBottomRight
	case "bottom-left":
		return ToastBottomLeft
	case "top-center":
		return ToastTopCenter
	case "bottom-center":
		return ToastBottomCenter
	default:
		return ToastTopRight
	}
}

// IsBottom reports whether toasts stack upward from the bottom edge
func (p ToastPosition) IsBottom() bool {
	return p == ToastBottomRight || p == ToastBottomLeft || p == ToastBottomCenter
}
