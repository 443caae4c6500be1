package keyboard

import (
	"fmt"
	"strings"
)

// EncodeCallback packs an action and its value into callback data.
func EncodeCallback(action, value string) string {
	return fmt.Sprintf("%s:%s", action, value)
}

// ParseCallback splits callback data back into action and value.
func ParseCallback(data string) (action, value string, ok bool) {
	action, value, ok = strings.Cut(data, ":")
	if !ok || action == "" || value == "" {
		return "", "", false
	}
	return action, value, true
}
