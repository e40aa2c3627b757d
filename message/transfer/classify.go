package transfer

// MaxLineLength is the longest line, not counting the line break, that may be
// sent without transfer encoding.
const MaxLineLength = 998

// DefaultClassifier is the Classifier used when none is configured.
var DefaultClassifier Classifier = ClassifierFunc(Classify)

// Classify is the default classification heuristic.
//
// Any NUL byte selects Base64. If no byte needs escaping, the result is
// SevenBit. A byte needs escaping when it is 8-bit, when it is a control
// character other than TAB, CR, and LF, or when it is a CR or LF in a
// single line value. Lines longer than MaxLineLength also rule out SevenBit.
// When more than 30% of the bytes need escaping, Base64 is shorter and is
// selected. Otherwise, the result is QuotedPrintable. The isBody flag does not
// change the outcome.
func Classify(b []byte, singleLine, isBody bool) Encoding {
	escape := 0
	lineLen := 0
	longLine := false
	for _, c := range b {
		switch {
		case c == 0:
			return Base64
		case c == '\n' || c == '\r':
			if singleLine {
				escape++
			}
			lineLen = 0
			continue
		case c >= 0x80, c == 0x7f, c < 0x20 && c != '\t':
			escape++
		}

		lineLen++
		if lineLen > MaxLineLength {
			longLine = true
		}
	}

	switch {
	case escape == 0 && !longLine:
		return SevenBit
	case escape*10 > len(b)*3:
		return Base64
	default:
		return QuotedPrintable
	}
}
