// Package walker visits every part of a MIME part tree, depth first.
package walker

import (
	"github.com/zostay/go-mailbuilder/message"
)

// PartWalker is a function that can be processed for each part of a message.
// The depth is 0 for the part the walk starts from and i is the index of the
// part among its siblings.
type PartWalker func(depth, i int, part *message.Part) error

// Walk performs a depth first search for all the parts of a message starting
// with the message itself. It calls the PartWalker for each part of the
// message. If the PartWalker returns an error, then processing stops
// immediately and the error is returned.
//
// It uses a stack rather than recursion, so it is safe on trees of any depth.
func (w PartWalker) Walk(root *message.Part) error {
	type entry struct {
		depth int
		i     int
		part  *message.Part
	}

	stack := make([]entry, 0, 10)
	stack = append(stack, entry{0, 0, root})
	for len(stack) > 0 {
		end := len(stack) - 1
		e := stack[end]
		stack = stack[:end]

		if err := w(e.depth, e.i, e.part); err != nil {
			return err
		}

		parts := e.part.Parts()
		for i := len(parts) - 1; i >= 0; i-- {
			stack = append(stack, entry{e.depth + 1, i, parts[i]})
		}
	}

	return nil
}

// WalkLeaves will call the PartWalker function for each part holding content
// using a depth first traversal. It will terminate the walk immediately if the
// PartWalker returns an error and will return the error.
func (w PartWalker) WalkLeaves(root *message.Part) error {
	var lw PartWalker = func(depth, i int, part *message.Part) error {
		if !part.IsMultipart() {
			return w(depth, i, part)
		}
		return nil
	}
	return lw.Walk(root)
}

// WalkMultipart will call the PartWalker function for each multipart part
// using a depth first traversal. It will terminate the walk immediately if the
// PartWalker returns an error and will return that error.
func (w PartWalker) WalkMultipart(root *message.Part) error {
	var mw PartWalker = func(depth, i int, part *message.Part) error {
		if part.IsMultipart() {
			return w(depth, i, part)
		}
		return nil
	}
	return mw.Walk(root)
}
