package simplequi

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Key handlers receive browser-style key codes: 32 for space, 37-40 for the
// arrow keys, 48-57 for the digits and 65-90 for the letters. Letter codes
// are the same for both cases.

// keyCodes maps the symbolic names accepted by KeyCode to key codes. The
// digits and letters are filled in at init.
var keyCodes = map[string]int{
	"space": 32,
	"left":  37,
	"up":    38,
	"right": 39,
	"down":  40,
}

// keyNames is the reverse of keyCodes. Letter codes resolve to their
// lower-case names.
var keyNames = map[int]string{
	32: "space",
	37: "left",
	38: "up",
	39: "right",
	40: "down",
}

// ebitenKeyCodes translates the physical keys the router watches into key
// codes. Keys outside this table never reach handlers.
var ebitenKeyCodes = map[ebiten.Key]int{
	ebiten.KeySpace:      32,
	ebiten.KeyArrowLeft:  37,
	ebiten.KeyArrowUp:    38,
	ebiten.KeyArrowRight: 39,
	ebiten.KeyArrowDown:  40,
}

func init() {
	for i := 0; i <= 9; i++ {
		name := string(rune('0' + i))
		keyCodes[name] = 48 + i
		keyNames[48+i] = name
		ebitenKeyCodes[ebiten.KeyDigit0+ebiten.Key(i)] = 48 + i
	}
	for i := 0; i < 26; i++ {
		lower := string(rune('a' + i))
		keyCodes[lower] = 65 + i
		keyCodes[string(rune('A'+i))] = 65 + i
		keyNames[65+i] = lower
		ebitenKeyCodes[ebiten.KeyA+ebiten.Key(i)] = 65 + i
	}
}

// KeyCode returns the key code for a symbolic key name: "space", "left",
// "up", "right", "down", a digit or a single letter in either case. Unknown
// names panic.
func KeyCode(name string) int {
	code, ok := keyCodes[name]
	if !ok {
		panic(fmt.Sprintf("simplequi: key %q is not a valid keyboard symbol", name))
	}
	return code
}

// KeyName returns the symbolic name for a key code, or "" when the code has
// no name. Letter codes come back lower-case.
func KeyName(code int) string {
	return keyNames[code]
}

// keyLabel names a key code for the status rows, falling back to the number
// itself for codes outside the table.
func keyLabel(code int) string {
	if name := keyNames[code]; name != "" {
		return name
	}
	return fmt.Sprintf("%d", code)
}
