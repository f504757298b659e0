// Package forms - forms/listops.go
package forms

// AppendItem adds one entry to the end of an array-valued draft field.
func AppendItem[E any](items []E, item E) []E {
	return append(items, item)
}

// RemoveAt removes the entry at index without disturbing the order of
// the others. Out-of-range indexes return the slice unchanged.
func RemoveAt[E any](items []E, index int) []E {
	if index < 0 || index >= len(items) {
		return items
	}
	out := make([]E, 0, len(items)-1)
	out = append(out, items[:index]...)
	return append(out, items[index+1:]...)
}
