package cursors

// Earcons plays the audio cues cursor movement triggers.
type Earcons interface {
	// PlayWrap signals that a movement wrapped around the document.
	PlayWrap()
}

// EarconsFunc adapts a plain function to Earcons.
type EarconsFunc func()

func (f EarconsFunc) PlayWrap() { f() }

type nopEarcons struct{}

func (nopEarcons) PlayWrap() {}
