package input

// Keymap maps host key identifiers to engine key codes. Several host keys may
// share one code (left and right shift, keypad and main-row minus).
type Keymap map[RawKey]Key

// Translate returns the mapped code for raw, or raw itself when the host key
// has no entry. It never fails.
func (km Keymap) Translate(raw RawKey) Key {
	if k, ok := km[raw]; ok {
		return k
	}
	return Key(raw)
}
