package client

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"typeracer/pkg/protocol"
)

// View renders server messages as text lines. Lines end in "\r\n" since the
// terminal is in raw mode while racing.
type View struct {
	mu      sync.Mutex
	out     io.Writer
	players map[int]string
	typed   int
}

// NewView returns a View writing to out.
func NewView(out io.Writer) *View {
	return &View{out: out, players: make(map[int]string)}
}

// Info prints a status line.
func (v *View) Info(line string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.println(line)
}

func (v *View) println(line string) {
	_, _ = io.WriteString(v.out, strings.ReplaceAll(line, "\n", "\r\n")+"\r\n")
}

func (v *View) name(id int) string {
	if n, ok := v.players[id]; ok {
		return n
	}

	return fmt.Sprintf("player %d", id)
}

// Render prints msg. Messages without anything to show are skipped.
func (v *View) Render(msg protocol.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch m := msg.(type) {
	case *protocol.PlayerJoinedNotification:
		v.players[m.PlayerID] = m.PlayerName
		v.println(fmt.Sprintf("%s joined (%d players)", m.PlayerName, m.NumPlayers))
	case *protocol.PlayerLeftNotification:
		v.println(fmt.Sprintf("%s left (%d players)", v.name(m.PlayerID), m.NumPlayers))
		delete(v.players, m.PlayerID)
	case *protocol.PlayerUpdateNotification:
		v.players[m.PlayerID] = m.PlayerName
		state := "not ready"
		if m.Ready {
			state = "ready"
		}
		v.println(fmt.Sprintf("%s is %s", m.PlayerName, state))
	case *protocol.GameStateNotification:
		v.println("game " + strings.ToLower(strings.ReplaceAll(string(m.GameStatus), "_", " ")))
		if m.GameStatus == protocol.GameStatusRunning {
			v.typed = 0
		}
	case *protocol.TextNotification:
		v.println("type this:")
		v.println(m.Text)
	case *protocol.PlayerStateNotification:
		v.println(fmt.Sprintf("%-20s %3.0f%% %6.1f wpm %3.0f%% accuracy",
			v.name(m.PlayerID), m.Progress*100, m.WPM, m.Accuracy*100))
	case *protocol.CharacterResponse:
		if m.Correct {
			v.typed++
		} else {
			_, _ = io.WriteString(v.out, "\a")
		}
	case *protocol.LeaveSessionResponse:
		if m.Reason == protocol.ReasonSessionKicked {
			v.println("you were removed from the session")
		}
	case *protocol.ReadyResponse:
		if m.Status != protocol.Accepted {
			v.println("ready denied: " + string(m.Reason))
		}
	}
}

// Typed returns the number of correct keystrokes of the current race.
func (v *View) Typed() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.typed
}
