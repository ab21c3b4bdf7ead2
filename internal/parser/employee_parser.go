package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseEmployeeID parses a positional employee id argument ("7", "#7")
func ParseEmployeeID(input string) (int, error) {
	s := strings.TrimPrefix(strings.TrimSpace(input), "#")
	if s == "" {
		return 0, fmt.Errorf("employee ID is required")
	}

	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid employee ID '%s': must be a positive number", input)
	}
	return id, nil
}

// ParseStatus converts a status word to the isActive flag
func ParseStatus(input string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "active", "on", "true", "yes", "1":
		return true, nil
	case "inactive", "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid status '%s'. Use: active or inactive", input)
	}
}

// StatusWord is the inverse of ParseStatus
func StatusWord(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

// OutputFormat normalizes the --output flag of list commands
func OutputFormat(input string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(input)); f {
	case "", "table":
		return "table", nil
	case "json", "yaml":
		return f, nil
	case "yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("invalid output format '%s'. Use: table, json or yaml", input)
	}
}
