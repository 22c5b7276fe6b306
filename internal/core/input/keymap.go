package input

import (
	"fmt"
	"strings"
)

// KeyMap binds key names (as reported by the frontend) to actions. Key names
// are case-insensitive.
type KeyMap map[string]Action

// DefaultKeyMap is the WASD layout with E to interact and F to toggle the
// follow camera.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		"w": ActionForward,
		"s": ActionBackward,
		"a": ActionLeft,
		"d": ActionRight,
		"e": ActionInteract,
		"f": ActionToggleFollow,
	}
}

// ParseKeyMap builds a KeyMap from action-name → key-name pairs, the shape
// used in the config file.
func ParseKeyMap(bindings map[string]string) (KeyMap, error) {
	km := make(KeyMap, len(bindings))
	for actionName, key := range bindings {
		action, ok := ParseAction(actionName)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, actionName)
		}
		key = strings.ToLower(key)
		if prev, taken := km[key]; taken {
			return nil, fmt.Errorf("%w: %q bound to %s and %s", ErrDuplicateBinding, key, prev, action)
		}
		km[key] = action
	}
	return km, nil
}

func (km KeyMap) Lookup(key string) Action {
	return km[strings.ToLower(key)]
}
