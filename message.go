package fatvo

import "time"

// ConversionStatus records whether a message went through the
// transliteration engine successfully. The zero value means the message
// was never converted (diagnostics authored in the user's script).
type ConversionStatus string

const (
	ConversionNone      ConversionStatus = ""
	ConversionConverted ConversionStatus = "converted"
	ConversionFailed    ConversionStatus = "failed"
)

// Message is one entry of a session's history. Messages are immutable once
// appended.
//
// Content is always what the user sees. Alternate holds the other-script
// form when conversion succeeded; it is shown only as a caption.
type Message struct {
	Role      Role
	Content   string
	Alternate string
	Status    ConversionStatus
	Failure   Failure
	Timestamp time.Time
}

// Diagnostic reports whether the message describes a failed turn rather
// than an answer.
func (m Message) Diagnostic() bool {
	return m.Failure != FailureNone
}

// HasAlternate reports whether a caption in the other script is available.
func (m Message) HasAlternate() bool {
	return m.Status == ConversionConverted && m.Alternate != ""
}
