// Package message is the heart of this library. It provides the MIME part tree,
// the writer that serializes a tree with correctly interleaved boundaries, and
// the Builder that turns a handful of simple inputs into a complete message.
//
// Most messages can be made with a Builder:
//
//	b := message.NewBuilder().
//	  From(header.NewAddress("John Doe", "john@example.com")).
//	  To(header.NewAddress("", "jane@example.com")).
//	  Subject("Hello").
//	  TextBody("Hello, world!\n").
//	  HTMLBody("<p>Hello, <b>world</b>!</p>")
//
//	_, err := b.WriteTo(os.Stdout)
//
// The Builder picks the shape of the MIME tree from what it was given: a text
// and an HTML body become a multipart/alternative, attachments place the body
// inside a multipart/mixed, and so on. When more control is needed, build a
// tree of Part objects by hand and hand it to the Body method, or write it
// directly with a Writer.
//
// The Writer walks the tree without recursion, so trees may be nested as deep
// as memory allows.
package message
