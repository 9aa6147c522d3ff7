package dungeon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hollowmere/delve/internal/game/grid"
	"github.com/hollowmere/delve/internal/game/monster"
)

// yamlMapFile is the top-level YAML structure for map files.
type yamlMapFile struct {
	Map yamlMap `yaml:"map"`
}

// yamlMap is the YAML representation of a dungeon level.
type yamlMap struct {
	Name        string           `yaml:"name"`
	Legend      map[string]string `yaml:"legend"`
	Rows        []string         `yaml:"rows"`
	Player      yamlCoord        `yaml:"player"`
	Monsters    []yamlMonster    `yaml:"monsters"`
	Sanctuary   []yamlCoord      `yaml:"sanctuary"`
	Traps       []yamlTrap       `yaml:"traps"`
	DoorMarkers []yamlDoorMarker `yaml:"door_markers"`
	ScriptLimit int              `yaml:"script_instruction_limit"`
}

// yamlCoord is the YAML representation of a cell coordinate.
type yamlCoord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// yamlMonster is the YAML representation of a monster placement.
type yamlMonster struct {
	Name       string    `yaml:"name"`
	Attitude   string    `yaml:"attitude"`
	Kind       string    `yaml:"kind"`
	At         yamlCoord `yaml:"at"`
	HP         int       `yaml:"hp"`
	Evasion    int       `yaml:"evasion"`
	Damage     string    `yaml:"damage"`
	Submerged  bool      `yaml:"submerged"`
	Invisible  bool      `yaml:"invisible"`
	Aquatic    bool      `yaml:"aquatic"`
	Beholder   bool      `yaml:"beholder"`
	Fearmonger bool      `yaml:"fearmonger"`
}

// yamlTrap is the YAML representation of a trap placement.
type yamlTrap struct {
	At   yamlCoord `yaml:"at"`
	Name string    `yaml:"name"`
}

// yamlDoorMarker is the YAML representation of door marker metadata.
type yamlDoorMarker struct {
	At              yamlCoord `yaml:"at"`
	VetoReason      string    `yaml:"veto_reason"`
	VetoScript      string    `yaml:"veto_script"`
	AlreadyOpenVerb string    `yaml:"already_open_verb"`
}

var featureByName = map[string]grid.Feature{
	"floor":             grid.Floor,
	"rock_wall":         grid.RockWall,
	"perma_wall":        grid.PermaWall,
	"closed_door":       grid.ClosedDoor,
	"closed_clear_door": grid.ClosedClearDoor,
	"runed_door":        grid.RunedDoor,
	"runed_clear_door":  grid.RunedClearDoor,
	"open_door":         grid.OpenDoor,
	"open_clear_door":   grid.OpenClearDoor,
	"sealed_door":       grid.SealedDoor,
	"sealed_clear_door": grid.SealedClearDoor,
	"shallow_water":     grid.ShallowWater,
	"deep_water":        grid.DeepWater,
	"lava":              grid.Lava,
	"toxic_bog":         grid.ToxicBog,
	"tree":              grid.Tree,
	"grate":             grid.Grate,
	"statue":            grid.Statue,
	"open_sea":          grid.OpenSea,
	"lava_sea":          grid.LavaSea,
	"malign_gateway":    grid.MalignGateway,
}

var attitudeByName = map[string]monster.Attitude{
	"":         monster.Hostile,
	"hostile":  monster.Hostile,
	"neutral":  monster.Neutral,
	"friendly": monster.Friendly,
}

var kindByName = map[string]monster.Kind{
	"":                   monster.Ordinary,
	"ordinary":           monster.Ordinary,
	"firewood":           monster.Firewood,
	"foxfire":            monster.Foxfire,
	"wandering_mushroom": monster.WanderingMushroom,
	"toadstool":          monster.Toadstool,
}

// LoadMapFromFile reads and validates a single map YAML file.
//
// Precondition: path must point to a valid YAML map file.
// Postcondition: Returns a populated Map and the player start cell, or a non-nil error.
func LoadMapFromFile(path string) (*Map, grid.Coord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, grid.Coord{}, fmt.Errorf("reading map file %s: %w", path, err)
	}
	return LoadMapFromBytes(data)
}

// LoadMapFromBytes parses and validates a map from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the map schema.
// Postcondition: Returns a populated Map and the player start cell, or a non-nil error.
func LoadMapFromBytes(data []byte) (*Map, grid.Coord, error) {
	var file yamlMapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, grid.Coord{}, fmt.Errorf("parsing map YAML: %w", err)
	}

	ym := file.Map
	if len(ym.Rows) == 0 {
		return nil, grid.Coord{}, fmt.Errorf("map %q: rows must not be empty", ym.Name)
	}
	width := len([]rune(ym.Rows[0]))
	if width == 0 {
		return nil, grid.Coord{}, fmt.Errorf("map %q: rows must not be blank", ym.Name)
	}

	m := NewMap(width, len(ym.Rows), grid.Floor)
	m.scriptLimit = ym.ScriptLimit

	for y, row := range ym.Rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, grid.Coord{}, fmt.Errorf("map %q: row %d has width %d, want %d",
				ym.Name, y, len(runes), width)
		}
		for x, r := range runes {
			name, ok := ym.Legend[string(r)]
			if !ok {
				return nil, grid.Coord{}, fmt.Errorf("map %q: rune %q at (%d,%d) not in legend",
					ym.Name, string(r), x, y)
			}
			feat, ok := featureByName[name]
			if !ok {
				return nil, grid.Coord{}, fmt.Errorf("map %q: unknown feature %q in legend", ym.Name, name)
			}
			m.SetFeature(grid.Coord{X: x, Y: y}, feat)
		}
	}

	start := grid.Coord{X: ym.Player.X, Y: ym.Player.Y}
	if !m.InBounds(start) {
		return nil, grid.Coord{}, fmt.Errorf("map %q: player start %s out of bounds", ym.Name, start)
	}

	for _, mdef := range ym.Monsters {
		att, ok := attitudeByName[mdef.Attitude]
		if !ok {
			return nil, grid.Coord{}, fmt.Errorf("map %q: monster %q: unknown attitude %q",
				ym.Name, mdef.Name, mdef.Attitude)
		}
		kind, ok := kindByName[mdef.Kind]
		if !ok {
			return nil, grid.Coord{}, fmt.Errorf("map %q: monster %q: unknown kind %q",
				ym.Name, mdef.Name, mdef.Kind)
		}
		mon := monster.New(mdef.Name, att, kind, grid.Coord{X: mdef.At.X, Y: mdef.At.Y})
		mon.HP = mdef.HP
		if mon.HP == 0 {
			mon.HP = 1
		}
		mon.Evasion = mdef.Evasion
		mon.DamageDice = mdef.Damage
		mon.Submerged = mdef.Submerged
		mon.Visible = !mdef.Invisible
		mon.Aquatic = mdef.Aquatic
		mon.Beholder = mdef.Beholder
		mon.Fearmonger = mdef.Fearmonger
		if err := m.Place(mon); err != nil {
			return nil, grid.Coord{}, fmt.Errorf("map %q: %w", ym.Name, err)
		}
	}

	for _, c := range ym.Sanctuary {
		cell := grid.Coord{X: c.X, Y: c.Y}
		if !m.InBounds(cell) {
			return nil, grid.Coord{}, fmt.Errorf("map %q: sanctuary cell %s out of bounds", ym.Name, cell)
		}
		m.SetSanctuary(cell, true)
	}

	for _, tr := range ym.Traps {
		cell := grid.Coord{X: tr.At.X, Y: tr.At.Y}
		if !m.InBounds(cell) {
			return nil, grid.Coord{}, fmt.Errorf("map %q: trap %q out of bounds at %s", ym.Name, tr.Name, cell)
		}
		m.SetTrap(cell, tr.Name)
	}

	for _, dm := range ym.DoorMarkers {
		cell := grid.Coord{X: dm.At.X, Y: dm.At.Y}
		if !m.FeatureAt(cell).IsDoor() {
			return nil, grid.Coord{}, fmt.Errorf("map %q: door marker at %s is not on a door", ym.Name, cell)
		}
		m.SetDoorMarker(cell, &DoorMarker{
			VetoReason:      dm.VetoReason,
			VetoScript:      dm.VetoScript,
			AlreadyOpenVerb: dm.AlreadyOpenVerb,
		})
	}

	return m, start, nil
}
