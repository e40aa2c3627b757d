package message

var SafeBoundary = safeBoundary
