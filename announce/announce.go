// Package announce implements the counting demo that ships with snipsync.
// The demo program under examples/answer is the canonical tagged content
// file that the example documentation pulls its snippets from.
package announce

import (
	"fmt"
	"io"
)

// Answer is the constant announced by the shipped demo.
const Answer uint64 = 42

// Announce writes one "<i> is not the answer" line for every i in
// [0, answer), followed by a single "it's <answer>" line. With answer 0
// only the final line is written. Write errors are not observed.
func Announce(w io.Writer, answer uint64) {
	for i := uint64(0); i < answer; i++ {
		fmt.Fprintf(w, "%d is not the answer\n", i)
	}

	fmt.Fprintf(w, "it's %d\n", answer)
}
