// Package main provides the interactive dungeon simulator: it loads a map and
// configuration, wires the move resolver, and resolves vi-key commands read
// from stdin one turn at a time.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hollowmere/delve/internal/config"
	"github.com/hollowmere/delve/internal/game/actor"
	"github.com/hollowmere/delve/internal/game/combat"
	"github.com/hollowmere/delve/internal/game/dice"
	"github.com/hollowmere/delve/internal/game/dungeon"
	"github.com/hollowmere/delve/internal/game/grid"
	"github.com/hollowmere/delve/internal/game/message"
	"github.com/hollowmere/delve/internal/game/movement"
	"github.com/hollowmere/delve/internal/game/travel"
	"github.com/hollowmere/delve/internal/observability"
)

// keyDeltas maps the vi movement keys to compass deltas.
var keyDeltas = map[string]grid.Delta{
	"h": {DX: -1, DY: 0},
	"j": {DX: 0, DY: 1},
	"k": {DX: 0, DY: -1},
	"l": {DX: 1, DY: 0},
	"y": {DX: -1, DY: -1},
	"u": {DX: 1, DY: -1},
	"b": {DX: -1, DY: 1},
	"n": {DX: 1, DY: 1},
}

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	mapPath := flag.String("map", "content/maps/demo.yaml", "path to dungeon map YAML file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	var src dice.Source
	if cfg.Game.Seed != 0 {
		src = dice.NewSeededSource(cfg.Game.Seed)
		logger.Info("using seeded RNG", zap.Int64("seed", cfg.Game.Seed))
	} else {
		src = dice.NewCryptoSource()
	}

	mapStart := time.Now()
	field, startPos, err := dungeon.LoadMapFromFile(*mapPath)
	if err != nil {
		logger.Fatal("loading map", zap.Error(err))
	}
	logger.Info("map loaded",
		zap.String("path", *mapPath),
		zap.Int("width", field.Width()),
		zap.Int("height", field.Height()),
		zap.Int("monsters", len(field.Monsters())),
		zap.Duration("elapsed", time.Since(mapStart)),
	)

	player := actor.NewPlayer(startPos)
	stdin := bufio.NewReader(os.Stdin)

	msg := &consoleMessenger{out: os.Stdout}
	confirm := &consoleConfirmer{in: stdin, out: os.Stdout}
	run := travel.NewRunner(cfg.Game.TravelPace)
	cbt := combat.NewResolver(src, msg, field, logger)
	resolver := movement.NewResolver(cfg.Game, player, field, cbt, msg, confirm, run, src, logger)

	logger.Info("simulator initialized", zap.Duration("startup", time.Since(start)))

	fmt.Println("delve — hjklyubn move, o open, c close, r run, d dig, g lunge, m map, q quit")
	render(field, player)

	for {
		fmt.Print("> ")
		line, err := stdin.ReadString('\n')
		if err != nil {
			return
		}
		key := strings.TrimSpace(line)

		var outcome movement.Outcome
		switch {
		case key == "q":
			return
		case key == "m":
			render(field, player)
			continue
		case key == "o":
			outcome = resolver.OpenDoor(grid.Delta{})
		case key == "c":
			outcome = resolver.CloseDoor(grid.Delta{})
		case key == "r":
			if run.Running() {
				run.Stop()
				fmt.Println("You stop running.")
			} else {
				run.Begin()
				fmt.Println("You start running.")
			}
			continue
		case key == "d":
			player.Digging = !player.Digging
			if player.Digging {
				fmt.Println("You extend your mandibles, ready to dig.")
			} else {
				fmt.Println("You retract your mandibles.")
			}
			continue
		case key == "g":
			player.CanLunge = !player.CanLunge
			if player.CanLunge {
				fmt.Println("You feel ready to lunge at your foes.")
			} else {
				fmt.Println("The urge to lunge fades.")
			}
			continue
		default:
			move, ok := keyDeltas[key]
			if !ok {
				fmt.Printf("Unknown command %q.\n", key)
				continue
			}
			outcome = resolver.MovePlayer(move)
		}

		fmt.Printf("[%s] pos=%s time=%d\n", outcome, player.Pos, player.TimeTaken)
		if player.HP <= 0 {
			fmt.Println("You die...")
			return
		}
	}
}

// featureRunes is the map glyph for each terrain kind.
var featureRunes = map[grid.Feature]rune{
	grid.Floor:           '.',
	grid.RockWall:        '#',
	grid.PermaWall:       'X',
	grid.ClosedDoor:      '+',
	grid.ClosedClearDoor: '+',
	grid.RunedDoor:       '+',
	grid.RunedClearDoor:  '+',
	grid.OpenDoor:        '\'',
	grid.OpenClearDoor:   '\'',
	grid.SealedDoor:      '=',
	grid.SealedClearDoor: '=',
	grid.ShallowWater:    '~',
	grid.DeepWater:       '≈',
	grid.Lava:            '%',
	grid.ToxicBog:        ';',
	grid.Tree:            '7',
	grid.Grate:           '"',
	grid.Statue:          '8',
	grid.OpenSea:         '≈',
	grid.LavaSea:         '%',
	grid.MalignGateway:   '0',
}

func render(field *dungeon.Map, player *actor.Player) {
	var sb strings.Builder
	for y := 0; y < field.Height(); y++ {
		for x := 0; x < field.Width(); x++ {
			c := grid.Coord{X: x, Y: y}
			switch {
			case c == player.Pos:
				sb.WriteRune('@')
			case field.OccupantAt(c) != nil && field.OccupantAt(c).Visible:
				name := field.OccupantAt(c).Name
				r := 'M'
				if name != "" {
					r = rune(name[0])
				}
				sb.WriteRune(r)
			default:
				r, ok := featureRunes[field.FeatureAt(c)]
				if !ok {
					r = '?'
				}
				sb.WriteRune(r)
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Print(sb.String())
}

// consoleMessenger prints game messages to the terminal as they are emitted,
// flagging the danger and warning channels.
type consoleMessenger struct {
	out *os.File
}

func (c *consoleMessenger) Emit(text string, channel message.Channel) {
	switch channel {
	case message.Danger:
		fmt.Fprintf(c.out, "!! %s\n", text)
	case message.Warn:
		fmt.Fprintf(c.out, " ! %s\n", text)
	default:
		fmt.Fprintf(c.out, "   %s\n", text)
	}
}

// consoleConfirmer blocks on stdin for yes/no prompts and direction picks.
type consoleConfirmer struct {
	in  *bufio.Reader
	out *os.File
}

func (c *consoleConfirmer) Confirm(prompt string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprintf(c.out, "%s %s ", prompt, hint)
	line, err := c.in.ReadString('\n')
	if err != nil {
		return defaultYes
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return defaultYes
	}
}

func (c *consoleConfirmer) PromptDirection(prompt string) grid.Delta {
	fmt.Fprintf(c.out, "%s (hjklyubn, anything else cancels) ", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		return grid.Delta{}
	}
	return keyDeltas[strings.TrimSpace(line)]
}
