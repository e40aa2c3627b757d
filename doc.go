// Package mailbuilder builds RFC 5322 email messages and writes them as MIME.
//
// The work is split according to part of message. The message/header package
// holds the header values (addresses, free text, dates, message IDs, content
// types, URLs, and raw text) and knows how to fold and encode each of them.
// The message/transfer package picks a Content-transfer-encoding for a body
// and provides the transcoders that apply it. The message package ties these
// together: a message.Part is a tree of header fields and bodies, a
// message.Writer serializes any such tree without recursion, and a
// message.Builder assembles the usual text, HTML, attachment, and inline
// combinations into the right multipart structure for you.
//
// Output is always CRLF terminated, header fields are written in sorted order,
// and nothing is read from the network or the filesystem. Given the same
// inputs and boundary generator, the bytes written are the same every time.
//
// The message/walker package visits every part of a tree, and tools/mkmsg is a
// small command for building messages from YAML recipes and inspecting the
// result.
package mailbuilder
