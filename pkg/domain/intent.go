package domain

// Intent is a device-independent player input.
type Intent string

const (
	IntentUp      Intent = "up"
	IntentDown    Intent = "down"
	IntentLeft    Intent = "left"
	IntentRight   Intent = "right"
	IntentConfirm Intent = "confirm"
)

// IsDirectional reports whether the intent requests a heading change.
func (i Intent) IsDirectional() bool {
	switch i {
	case IntentUp, IntentDown, IntentLeft, IntentRight:
		return true
	}
	return false
}
