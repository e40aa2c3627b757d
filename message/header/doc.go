// Package header provides the header values that can be written into a
// message or message part. Every kind of value (addresses, free text, dates,
// message IDs, parameterized values like Content-type, URLs, or raw text)
// implements the Value interface, which knows how to write itself after the
// "Name: " prefix of a header line, including any folding.
//
// The Header type collects the fields of a top-level message, where a name may
// be repeated. The Fields type holds the fields of a MIME part, where each name
// appears at most once. Both write their fields sorted by name so output is
// reproducible.
package header
