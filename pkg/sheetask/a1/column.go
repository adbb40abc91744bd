// Package a1 converts between API-native grid coordinates and A1 notation.
package a1

// IndexToLetter converts a zero-based column index to its column label:
// 0 -> "A", 25 -> "Z", 26 -> "AA". Negative indices yield "".
func IndexToLetter(index int) string {
	var buf [16]byte
	i := len(buf)
	for n := index; n >= 0; n = n/26 - 1 {
		i--
		buf[i] = byte('A' + n%26)
	}
	return string(buf[i:])
}

// LetterToIndex converts a column label back to its zero-based index.
// It returns -1 when the label contains anything but ASCII letters.
func LetterToIndex(label string) int {
	if label == "" {
		return -1
	}
	n := 0
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c >= 'A' && c <= 'Z':
			n = n*26 + int(c-'A') + 1
		case c >= 'a' && c <= 'z':
			n = n*26 + int(c-'a') + 1
		default:
			return -1
		}
	}
	return n - 1
}
