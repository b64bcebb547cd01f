package game

import (
	"time"
	"unicode"
)

// TypingResult is the outcome of a single keystroke.
type TypingResult int

const (
	// Correct means the rune matched the next rune of the text.
	Correct TypingResult = iota
	// Incorrect means the rune did not match; the player stays where they are.
	Incorrect
	// PlayerFinishedAlready means the keystroke was ignored because the player or
	// the race is done.
	PlayerFinishedAlready
)

func (r TypingResult) String() string {
	switch r {
	case Correct:
		return "CORRECT"
	case Incorrect:
		return "INCORRECT"
	case PlayerFinishedAlready:
		return "PLAYER_FINISHED_ALREADY"
	default:
		return "UNKNOWN"
	}
}

// Player is a participant of a game together with their statistics for the
// current round. Values returned by Game are copies.
type Player struct {
	ID    int
	Name  string
	Ready bool

	Finished   bool
	FinishedAt time.Time

	// TextIndex is the number of runes of the text typed correctly so far.
	TextIndex         int
	TypedWords        int
	Keystrokes        int
	CorrectKeystrokes int

	// Progress is TextIndex relative to the text length, in [0, 1].
	Progress float64
	WPM      float64
	CPM      float64
	// Accuracy is CorrectKeystrokes relative to Keystrokes, in [0, 1].
	Accuracy float64
}

func newPlayer(id int, name string) *Player {
	return &Player{ID: id, Name: name, Accuracy: 1}
}

func (p *Player) reset() {
	*p = Player{ID: p.ID, Name: p.Name, Accuracy: 1}
}

// typeRune applies one keystroke against text for a race started at startedAt.
func (p *Player) typeRune(r rune, text []rune, startedAt, now time.Time) TypingResult {
	if p.Finished || p.TextIndex >= len(text) {
		return PlayerFinishedAlready
	}

	p.Keystrokes++

	result := Incorrect
	if expected := text[p.TextIndex]; r == expected {
		result = Correct
		p.CorrectKeystrokes++
		p.TextIndex++
		p.Progress = float64(p.TextIndex) / float64(len(text))

		if unicode.IsSpace(expected) {
			p.TypedWords++
		}
		if p.TextIndex == len(text) {
			p.TypedWords++
			p.Progress = 1
			p.Finished = true
			p.FinishedAt = now
		}
	}

	p.updateSpeeds(startedAt, now)

	return result
}

func (p *Player) updateSpeeds(startedAt, now time.Time) {
	p.Accuracy = float64(p.CorrectKeystrokes) / float64(p.Keystrokes)

	minutes := now.Sub(startedAt).Minutes()
	if minutes <= 0 {
		return
	}
	p.WPM = float64(p.TypedWords) / minutes
	p.CPM = float64(p.TextIndex) / minutes
}
