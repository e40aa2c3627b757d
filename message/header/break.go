package header

// Break represents the linebreak to use when working with an email.
type Break string

// Generated messages always use CRLF. The others are here for comparing
// against input from elsewhere.
const (
	CRLF Break = "\x0d\x0a" // \r\n - Network linebreak
	LF   Break = "\x0a"     // \n - Unix/Linux/BSD linebreak

	// Fold is written in place of a space to continue a header field on the
	// next line.
	Fold Break = "\x0d\x0a\x09"
)

// String returns the break as a string.
func (b Break) String() string {
	return string(b)
}

// Bytes returns the break as a slice of bytes.
func (b Break) Bytes() []byte {
	return []byte(b)
}
