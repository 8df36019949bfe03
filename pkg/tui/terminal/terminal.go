// ABOUTME: Defines the Terminal interface for raw mode, output processing, size queries, and output.
// ABOUTME: Abstracts terminal operations so implementations can target real or virtual terminals.

package terminal

// Terminal abstracts the low-level terminal operations the line editor needs:
// switching between raw and default mode, toggling output post-processing
// while in raw mode, querying the window size, and writing output.
type Terminal interface {
	EnterRawMode() error
	ExitRawMode() error
	// SetOutputProcessing enables or disables output post-processing (OPOST)
	// on top of raw mode, so "\n" is written as "\r\n" while enabled.
	SetOutputProcessing(on bool) error
	Size() (width, height int, err error)
	Write(p []byte) (n int, err error)
}
