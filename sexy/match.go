package sexy

import "fmt"

// Match reports the first difference between a pattern and an actual datum.
// A trailing ... in a pattern list or array matches any remaining items, and
// a bare ... matches anything. Match returns nil when they agree.
func Match(pattern, actual *Node) error {
	return match(pattern, actual, "root")
}

func match(pattern, actual *Node, path string) error {
	if pattern == nil || actual == nil {
		if pattern == actual {
			return nil
		}
		return fmt.Errorf("at %s: expected %v, got %v", path, pattern, actual)
	}

	if pattern.Type == NodeEllipsis {
		return nil
	}
	if pattern.Type != actual.Type {
		return fmt.Errorf("at %s: expected %s %s, got %s %s", path, pattern.Type, pattern, actual.Type, actual)
	}

	if pattern.IsAtom() {
		if pattern.Text != actual.Text {
			return fmt.Errorf("at %s: expected %s, got %s", path, pattern, actual)
		}
		return nil
	}

	items := pattern.Items
	open := len(items) > 0 && items[len(items)-1].Type == NodeEllipsis
	if open {
		items = items[:len(items)-1]
		if len(actual.Items) < len(items) {
			return fmt.Errorf("at %s: expected at least %d items, got %d in %s", path, len(items), len(actual.Items), actual)
		}
	} else if len(actual.Items) != len(items) {
		return fmt.Errorf("at %s: expected %d items, got %d in %s", path, len(items), len(actual.Items), actual)
	}

	for i, item := range items {
		if err := match(item, actual.Items[i], fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}
