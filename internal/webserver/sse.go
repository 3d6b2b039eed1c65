package webserver

import (
	"fmt"
	"io"
)

func writeSSEComment(w io.Writer, comment string) {
	fmt.Fprintf(w, ": %s\n\n", comment)
}

func writeSSEEvent(w io.Writer, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}
