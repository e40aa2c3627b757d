// Package transfer contains the Content-transfer-encoding tooling used when
// writing message parts. A Classifier decides which of the three supported
// encodings (7bit, quoted-printable, or base64) is legal and economical for a
// given chunk of bytes and the encoders perform the transformation.
//
// The message package trusts whatever the Classifier returns. If you want a
// different policy, implement Classifier yourself and set it on a
// message.Writer.
package transfer
