package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
	"go.uber.org/multierr"
	billy "gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/osfs"

	"roomweaver/pkg/engine/terminal"
	"roomweaver/pkg/game/devtools"
	"roomweaver/pkg/game/generator"
	"roomweaver/pkg/game/renderer"
	ebitenview "roomweaver/pkg/game/renderer/ebiten"
	"roomweaver/pkg/game/renderer/tui"
	"roomweaver/pkg/game/setup"
	"roomweaver/pkg/game/state"
	"roomweaver/pkg/mapgen/gen"
	"roomweaver/pkg/mapgen/roomgen"
)

// recipeAttempts is how many seeds a loaded recipe may try
const recipeAttempts = 8

func initGettext() {
	gotext.Configure("locales", "en_GB", "default")
}

// fileFS returns a filesystem rooted at the directory holding path and the
// name of the file within it
func fileFS(path string) (billy.Filesystem, string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		log.Fatalf("resolve %s: %v", path, err)
	}
	return osfs.New(filepath.Dir(abs)), filepath.Base(abs)
}

// pickGenerator returns the generator named on the command line, or one
// running the recipe file when one is given
func pickGenerator(name, recipePath string) generator.Generator {
	if recipePath != "" {
		fs, file := fileFS(recipePath)
		r, err := generator.LoadRecipe(fs, file)
		if err != nil {
			log.Fatal(gotext.Get("Cannot load recipe: %v", err))
		}
		return generator.FromRecipe(r, recipeAttempts)
	}
	g, ok := generator.Generators[name]
	if !ok {
		log.Fatal(gotext.Get("Unknown generator %q", name))
	}
	return g
}

func main() {
	seed := flag.Uint64("seed", 0, "level seed (0 picks one from the clock)")
	level := flag.Int("level", 0, "level number; deeper levels are larger")
	genName := flag.String("generator", generator.DefaultGenerator.Name(), "built-in generator: grid or bsp")
	recipePath := flag.String("recipe", "", "generate with this JSON recipe instead of a built-in generator")
	saveRecipe := flag.String("save-recipe", "", "write the recipe of -generator at -level to this file and exit")
	dumpPath := flag.String("dump", "", "write a debug dump of the level to this file")
	useColor := flag.Bool("color", true, "color the terminal preview")
	view := flag.Bool("view", false, "browse levels in a window")
	verbose := flag.Bool("v", false, "log generation progress")
	listSteps := flag.Bool("steps", false, "list recipe step and shape types and exit")
	flag.Parse()

	initGettext()

	if *verbose {
		gen.SetTracer(log.Printf)
	}

	if *listSteps {
		for _, s := range generator.StepTypes() {
			fmt.Println(s)
		}
		for _, s := range roomgen.ShapeTypes() {
			fmt.Println("shape:", s)
		}
		return
	}

	g := pickGenerator(*genName, *recipePath)

	if *saveRecipe != "" {
		rg, ok := g.(*generator.RecipeGenerator)
		if !ok {
			log.Fatal(gotext.Get("Generator %s has no recipe", g.Name()))
		}
		fs, file := fileFS(*saveRecipe)
		if err := generator.SaveRecipe(fs, file, rg.Recipe(*level)); err != nil {
			log.Fatalf("save recipe: %v", err)
		}
		fmt.Println(gotext.Get("Recipe saved to %s", *saveRecipe))
		return
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	m, err := g.Generate(*level, *seed)
	if err != nil {
		for _, e := range multierr.Errors(err) {
			log.Printf("generate: %v", e)
		}
		log.Fatal(gotext.Get("Generation with %s failed", g.Name()))
	}

	if err := setup.ValidateLevel(m); err != nil {
		for _, e := range multierr.Errors(err) {
			log.Printf("validate: %v", e)
		}
	}

	if *dumpPath != "" {
		fs, file := fileFS(*dumpPath)
		path, err := devtools.DumpMap(fs, file, m)
		if err != nil {
			log.Fatalf("dump: %v", err)
		}
		fmt.Println(gotext.Get("Map dumped to %s", path))
	}

	if *view {
		renderer.SetRenderer(ebitenview.New(func(s uint64) (*state.Map, error) {
			return g.Generate(*level, s)
		}))
	} else {
		color.Enable = *useColor && terminal.IsTerminal()
		renderer.SetRenderer(tui.New(os.Stdout, terminal.GetWidth()))
	}

	renderer.Init()
	if err := renderer.Render(m); err != nil {
		log.Fatalf("render: %v", err)
	}
}
