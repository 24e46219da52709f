package input

import "fmt"

// Key is an engine key code. Named keys use the fixed values below; any other
// host key passes through with its host value unchanged, which keeps ASCII keys
// usable as-is.
type Key int32

const (
	KeyRightArrow Key = 0xae
	KeyLeftArrow  Key = 0xac
	KeyUpArrow    Key = 0xad
	KeyDownArrow  Key = 0xaf
	KeyEscape     Key = 27
	KeyEnter      Key = 13
	KeyTab        Key = 9
	KeyF1         Key = 0x80 + 0x3b
	KeyF2         Key = 0x80 + 0x3c
	KeyF3         Key = 0x80 + 0x3d
	KeyF4         Key = 0x80 + 0x3e
	KeyF5         Key = 0x80 + 0x3f
	KeyF6         Key = 0x80 + 0x40
	KeyF7         Key = 0x80 + 0x41
	KeyF8         Key = 0x80 + 0x42
	KeyF9         Key = 0x80 + 0x43
	KeyF10        Key = 0x80 + 0x44
	KeyF11        Key = 0x80 + 0x57
	KeyF12        Key = 0x80 + 0x58
	KeyBackspace  Key = 127
	KeyPause      Key = 0xff
	KeyEquals     Key = 0x3d
	KeyMinus      Key = 0x2d
	KeyRShift     Key = 0x80 + 0x36
	KeyRCtrl      Key = 0x80 + 0x1d
	KeyRAlt       Key = 0x80 + 0x38
)

var keyNames = map[Key]string{
	KeyRightArrow: "right",
	KeyLeftArrow:  "left",
	KeyUpArrow:    "up",
	KeyDownArrow:  "down",
	KeyEscape:     "escape",
	KeyEnter:      "enter",
	KeyTab:        "tab",
	KeyF1:         "f1",
	KeyF2:         "f2",
	KeyF3:         "f3",
	KeyF4:         "f4",
	KeyF5:         "f5",
	KeyF6:         "f6",
	KeyF7:         "f7",
	KeyF8:         "f8",
	KeyF9:         "f9",
	KeyF10:        "f10",
	KeyF11:        "f11",
	KeyF12:        "f12",
	KeyBackspace:  "backspace",
	KeyPause:      "pause",
	KeyRShift:     "shift",
	KeyRCtrl:      "ctrl",
	KeyRAlt:       "alt",
}

// String returns the key name for named keys, the character for printable
// ASCII and a hex code otherwise.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k > ' ' && k < 0x7f {
		return string(rune(k))
	}
	return fmt.Sprintf("key(0x%x)", int32(k))
}
