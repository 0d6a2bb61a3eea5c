package common

// There's no standard library package to deal with slices [grumble grumble]

// Contains returns whether `v` is in `slice`.
func Contains[T comparable](slice []T, v T) bool {
	for i := range slice {
		if slice[i] == v {
			return true
		}
	}
	return false
}

// truncationNotice is appended to messages that go over the Discord message limit.
const truncationNotice = " [...] \n\n (Character limit reached!)"

// MaxMessageLength is Discord's message content limit.
const MaxMessageLength = 2000

// TruncateMessage cuts s down to the message limit,
// appending a notice if anything was cut.
// The result is never longer than MaxMessageLength.
func TruncateMessage(s string) string {
	if len(s) <= MaxMessageLength {
		return s
	}
	return s[:MaxMessageLength-len(truncationNotice)] + truncationNotice
}
