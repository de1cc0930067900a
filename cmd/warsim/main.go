// Command warsim plays a whole match offline and prints every trick.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"golang.org/x/exp/rand"

	"example.com/war_relay/internal/game"
)

func main() {
	seed := flag.Uint64("seed", 0, "shuffle seed (0 picks one from the clock)")
	unshuffled := flag.Bool("unshuffled", false, "deal the deck in canonical order")
	verbose := flag.Bool("v", false, "print every logged event")
	report := flag.Bool("report", false, "dump all piles when the match ends")
	flag.Parse()

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	gameLog := game.NewGameLog(game.DefaultBroadcastBuffer)
	var gs *game.GameState
	if *unshuffled {
		a, b := game.Deal(game.NewDeck())
		gs = game.NewGameState(a, b, gameLog)
		pterm.DefaultHeader.Println("War: unshuffled deck")
	} else {
		gs = game.NewShuffledGameState(rand.New(rand.NewSource(*seed)), gameLog)
		pterm.DefaultHeader.Printfln("War: seed %d", *seed)
	}

	wins := map[game.Outcome]int{}
	for trick := 1; gs.CanPlay(); trick++ {
		from := gameLog.Len()
		outcome := game.Turn(gs)
		wins[outcome]++

		events := gameLog.History()[from:]
		if *verbose {
			for _, ev := range events {
				b, err := game.EncodeEvent(ev)
				if err != nil {
					pterm.Error.Println(err)
					os.Exit(1)
				}
				pterm.FgGray.Println(string(b))
			}
		}
		printTrick(trick, outcome, events)
	}

	err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Player", "Tricks", "Cards won", "Left at risk"},
		{"A", fmt.Sprint(wins[game.OutcomeA]), fmt.Sprint(len(gs.A.Won)), fmt.Sprint(len(gs.A.Wagered))},
		{"B", fmt.Sprint(wins[game.OutcomeB]), fmt.Sprint(len(gs.B.Won)), fmt.Sprint(len(gs.B.Wagered))},
	}).Render()
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	switch {
	case len(gs.A.Won) > len(gs.B.Won):
		pterm.Success.Println("Winner: A")
	case len(gs.B.Won) > len(gs.A.Won):
		pterm.Success.Println("Winner: B")
	default:
		pterm.Info.Println("Game over: draw")
	}
	if *report {
		fmt.Print(gs.Report())
	}
}

func printTrick(n int, outcome game.Outcome, events []game.Event) {
	wars := -1
	var last game.ComparedMatch
	for _, ev := range events {
		if cm, ok := ev.(game.ComparedMatch); ok {
			last = cm
			wars++
		}
	}
	line := fmt.Sprintf("#%d %s vs %s", n, last.A.Glyph(), last.B.Glyph())
	if wars > 0 {
		line += fmt.Sprintf(" after %d war round(s)", wars)
	}
	if winner, ok := outcome.Winner(); ok {
		pterm.Info.Printfln("%s: %s takes the trick", line, winner)
		return
	}
	pterm.Warning.Printfln("%s: deck ran out during war", line)
}
