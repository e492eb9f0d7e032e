// Command cycleplay parses a mini-notation string (or a --song YAML
// file), plays it through the demo square-wave synth for -seconds, then
// stops playback — the teacher's cmd/play_mml with an algebraic
// pattern engine instead of an MML score feeding the same audio plumbing.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/cbegin/cyclepattern/internal/audio"
	"github.com/cbegin/cyclepattern/internal/demo/synth"
	"github.com/cbegin/cyclepattern/mininotation"
	"github.com/cbegin/cyclepattern/pattern"
	"github.com/cbegin/cyclepattern/qctx"
)

func main() {
	var (
		src        = flag.String("pattern", "bd(3,8) [hh hh] sd", "mini-notation source to play")
		control    = flag.String("control", "", "if set, rename the bare value onto this control key (e.g. 's', 'note')")
		songPath   = flag.String("song", "", "optional path to a --song YAML file; overrides -pattern/-control")
		cps        = flag.Float64("cps", 0.5, "cycles per second")
		sampleRate = flag.Int("sample-rate", 44100, "output sample rate")
		seconds    = flag.Float64("seconds", 8, "how long to play before stopping")
	)
	flag.Parse()

	p, err := resolvePattern(*songPath, *src, *control)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("parse error: %v", err))
		os.Exit(1)
	}

	engine := synth.New(*sampleRate, p, qctx.Context{}, *cps, synth.DefaultParams())
	player, err := audio.NewPlayer(*sampleRate, engine)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("audio init error: %v", err))
		os.Exit(1)
	}

	fmt.Println(color.GreenString("playing %q at %.2f cps for %.1fs", *src, *cps, *seconds))
	player.Play()
	time.Sleep(time.Duration(*seconds * float64(time.Second)))
	if err := player.Stop(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("stop error: %v", err))
		os.Exit(1)
	}
	fmt.Println(color.GreenString("playback stopped"))
}

func resolvePattern(songPath, src, control string) (pattern.Pattern, error) {
	if songPath != "" {
		song, err := LoadSong(songPath)
		if err != nil {
			return nil, err
		}
		return song.Compile()
	}
	if control != "" {
		return mininotation.ParseControl(control, src)
	}
	return mininotation.Parse(src)
}
