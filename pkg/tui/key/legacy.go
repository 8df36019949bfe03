// ABOUTME: Legacy escape sequence mappings for CSI and SS3 terminal key codes.
// ABOUTME: Maps raw escape strings to Key values for arrows, home, end and delete.

package key

// legacySequences maps the CSI and SS3 sequences the line editor implements.
var legacySequences = map[string]Key{
	// CSI letter
	"\x1b[A": {Type: KeyUp},
	"\x1b[B": {Type: KeyDown},
	"\x1b[C": {Type: KeyRight},
	"\x1b[D": {Type: KeyLeft},
	"\x1b[H": {Type: KeyHome},
	"\x1b[F": {Type: KeyEnd},

	// CSI digit ~
	"\x1b[1~": {Type: KeyHome},
	"\x1b[7~": {Type: KeyHome},
	"\x1b[3~": {Type: KeyDelete},
	"\x1b[4~": {Type: KeyEnd},
	"\x1b[8~": {Type: KeyEnd},

	// SS3 (application mode); ESC O F also reports Home
	"\x1bOH": {Type: KeyHome},
	"\x1bOF": {Type: KeyHome},
}
