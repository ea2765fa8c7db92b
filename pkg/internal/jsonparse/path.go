package jsonparse

// JoinPath joins a JSON path slice into a dot-separated string.
// Handles array indices like "[0]" correctly (no dot before brackets).
func JoinPath(path []string) string {
	if len(path) == 0 {
		return ""
	}
	result := path[0]
	for i := 1; i < len(path); i++ {
		if len(path[i]) > 0 && path[i][0] == '[' {
			result += path[i] // Array index like "[0]"
		} else {
			result += "." + path[i]
		}
	}
	return result
}
