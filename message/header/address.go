package header

import (
	"fmt"
	"io"
	"strings"

	"github.com/zostay/go-addr/pkg/addr"
)

// Addressee is either a *Mailbox or a *Group.
type Addressee interface {
	writeAddress(lw *lineWriter, sep string)
	String() string
}

// Mailbox is a single address with an optional display name.
type Mailbox struct {
	Name  string
	Email string
}

// NewMailbox returns a Mailbox.
func NewMailbox(name, email string) *Mailbox {
	return &Mailbox{Name: name, Email: email}
}

// String returns the mailbox as it appears in a header.
func (m *Mailbox) String() string {
	if m.Name == "" {
		return "<" + m.Email + ">"
	}
	return displayName(m.Name) + " <" + m.Email + ">"
}

func (m *Mailbox) writeAddress(lw *lineWriter, sep string) {
	lw.writeToken(sep, m.String())
}

// Group is a named list of mailboxes.
type Group struct {
	Name      string
	Mailboxes []*Mailbox
}

// NewGroup returns a Group.
func NewGroup(name string, mailboxes ...*Mailbox) *Group {
	return &Group{Name: name, Mailboxes: mailboxes}
}

// String returns the group as it appears in a header.
func (g *Group) String() string {
	var sb strings.Builder
	sb.WriteString(displayName(g.Name))
	sb.WriteString(":")
	for i, m := range g.Mailboxes {
		if i == 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(m.String())
	}
	sb.WriteString(";")
	return sb.String()
}

func (g *Group) writeAddress(lw *lineWriter, sep string) {
	lw.writeToken(sep, displayName(g.Name)+":")
	for i, m := range g.Mailboxes {
		if i == 0 {
			m.writeAddress(lw, " ")
		} else {
			m.writeAddress(lw, ", ")
		}
	}
	lw.write(";")
}

// Address is a list of mailboxes and groups for fields like From and To.
type Address struct {
	list []Addressee
}

// NewAddress returns an Address holding a single mailbox.
func NewAddress(name, email string) *Address {
	return &Address{[]Addressee{NewMailbox(name, email)}}
}

// NewAddressList returns an Address holding all the given entries.
func NewAddressList(list ...Addressee) *Address {
	return &Address{list}
}

// Append adds more entries to the end of the list.
func (a *Address) Append(list ...Addressee) {
	a.list = append(a.list, list...)
}

// Entries returns the mailboxes and groups in the list.
func (a *Address) Entries() []Addressee {
	return a.list
}

// Emails returns every email address in the list, including those inside
// groups.
func (a *Address) Emails() []string {
	emails := make([]string, 0, len(a.list))
	for _, e := range a.list {
		switch v := e.(type) {
		case *Mailbox:
			emails = append(emails, v.Email)
		case *Group:
			for _, m := range v.Mailboxes {
				emails = append(emails, m.Email)
			}
		}
	}
	return emails
}

// String returns the list without folding.
func (a *Address) String() string {
	parts := make([]string, len(a.list))
	for i, e := range a.list {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// WriteHeader writes the entries separated by commas, folding between entries
// as needed.
func (a *Address) WriteHeader(w io.Writer, written int) (int, error) {
	lw := newLineWriter(w, written)
	for i, e := range a.list {
		sep := ""
		if i > 0 {
			sep = ", "
		}
		e.writeAddress(lw, sep)
	}
	return lw.end()
}

// specials are the characters that require a display name be quoted.
const specials = `()<>[]:;@\,."`

// displayName returns name ready for use in a header: as is, quoted, or as
// encoded words.
func displayName(name string) string {
	switch {
	case needsEncoding(name):
		return encodeWords("", name)
	case strings.ContainsAny(name, specials), strings.TrimSpace(name) != name:
		r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
		return `"` + r.Replace(name) + `"`
	default:
		return name
	}
}

// ParseAddressList parses an address list as found in a From or To field.
// When the list is not strictly valid, a lenient parse is made instead so that
// something useful still comes out. Strict out, liberal in.
func ParseAddressList(s string) *Address {
	if al, err := parseStrict(s); err == nil {
		return fromAddressList(al)
	}
	return parseLenient(s)
}

// parseStrict runs the RFC 5322 parser. Some inputs, such as a bare addr-spec
// inside a group, make it panic rather than fail, so that is turned into an
// error.
func parseStrict(s string) (al addr.AddressList, err error) {
	defer func() {
		if r := recover(); r != nil {
			al, err = nil, fmt.Errorf("address list %q: %v", s, r)
		}
	}()
	return addr.ParseEmailAddressList(s)
}

// The parsed display names run the words of a phrase together, so names are
// taken from the original text instead.
func fromAddr(a addr.Address) *Mailbox {
	m := &Mailbox{Email: a.Address()}
	if lm := lenientMailbox(stripComments(a.OriginalString())); lm != nil && lm.Name != "" {
		m.Name = lm.Name
	} else if a.OriginalString() == "" {
		m.Name = a.DisplayName()
	}
	return m
}

func fromAddressList(al addr.AddressList) *Address {
	out := &Address{list: make([]Addressee, 0, len(al))}
	for _, a := range al {
		g, isGroup := a.(*addr.Group)
		if !isGroup {
			out.list = append(out.list, fromAddr(a))
			continue
		}

		grp := &Group{Name: g.DisplayName()}
		if orig := g.OriginalString(); orig != "" {
			if i := indexUnquoted(orig, ':'); i >= 0 {
				grp.Name = cleanPhrase(stripComments(orig[:i]))
			}
		}
		for _, mb := range g.MailboxList() {
			grp.Mailboxes = append(grp.Mailboxes, fromAddr(mb))
		}
		out.list = append(out.list, grp)
	}
	return out
}

// indexUnquoted returns the index of the first c in s that is not inside a
// quoted string, or -1.
func indexUnquoted(s string, c byte) int {
	quoted, escaped := false, false
	for i := 0; i < len(s); i++ {
		switch {
		case escaped:
			escaped = false
		case s[i] == '\\':
			escaped = true
		case s[i] == '"':
			quoted = !quoted
		case s[i] == c && !quoted:
			return i
		}
	}
	return -1
}

// splitUnquoted splits s at every c that is not inside a quoted string.
func splitUnquoted(s string, c byte) []string {
	var out []string
	for {
		i := indexUnquoted(s, c)
		if i < 0 {
			return append(out, s)
		}
		out = append(out, s[:i])
		s = s[i+1:]
	}
}

// stripComments removes parenthesized comments outside of quoted strings.
func stripComments(s string) string {
	var clean strings.Builder
	nest := 0
	quoted, escaped := false, false
	for _, c := range s {
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"' && nest == 0:
			quoted = !quoted
		case c == '(' && !quoted:
			nest++
			continue
		case c == ')' && !quoted && nest > 0:
			nest--
			continue
		}
		if nest == 0 {
			clean.WriteRune(c)
		}
	}
	return clean.String()
}

// cleanPhrase collapses the whitespace of a display name and removes the
// quotes around it.
func cleanPhrase(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		var sb strings.Builder
		escaped := false
		for _, c := range s[1 : len(s)-1] {
			if !escaped && c == '\\' {
				escaped = true
				continue
			}
			escaped = false
			sb.WriteRune(c)
		}
		return sb.String()
	}
	return strings.Trim(s, `"`)
}

// lenientMailbox reads "name <email>", or a lone email preceded by any words
// of the name. It returns nil for an empty entry.
func lenientMailbox(entry string) *Mailbox {
	if strings.TrimSpace(entry) == "" {
		return nil
	}

	if i := strings.LastIndex(entry, "<"); i >= 0 {
		email := entry[i+1:]
		if j := strings.Index(email, ">"); j >= 0 {
			email = email[:j]
		}
		return NewMailbox(cleanPhrase(entry[:i]), strings.TrimSpace(email))
	}

	words := strings.Fields(entry)
	email := strings.Trim(words[len(words)-1], "<>")
	return NewMailbox(cleanPhrase(strings.Join(words[:len(words)-1], " ")), email)
}

// parseLenient splits on commas outside of quotes and drops comments. Each
// entry is read by lenientMailbox. A "name:" prefix starts a group, which runs
// to the next ";".
func parseLenient(s string) *Address {
	out := &Address{}
	var grp *Group
	for _, entry := range splitUnquoted(stripComments(s), ',') {
		if grp == nil {
			if i := indexUnquoted(entry, ':'); i >= 0 && !strings.ContainsAny(entry[:i], "<@") {
				grp = NewGroup(cleanPhrase(entry[:i]))
				out.list = append(out.list, grp)
				entry = entry[i+1:]
			}
		}

		closed := false
		if grp != nil {
			if i := indexUnquoted(entry, ';'); i >= 0 {
				entry, closed = entry[:i], true
			}
		}

		if m := lenientMailbox(entry); m != nil {
			if grp != nil {
				grp.Mailboxes = append(grp.Mailboxes, m)
			} else {
				out.list = append(out.list, m)
			}
		}

		if closed {
			grp = nil
		}
	}
	return out
}
