package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jwebster45206/vault-world/internal/config"
	"github.com/jwebster45206/vault-world/internal/manual"
	"github.com/jwebster45206/vault-world/pkg/options"
	"github.com/jwebster45206/vault-world/pkg/vault"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := pflag.NewFlagSet("validate", pflag.ContinueOnError)
	dataDir := flags.String("data", cfg.DataDir, "world data directory")
	if err := flags.Parse(args); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Validating world data in %s...\n", *dataDir)
	data, err := manual.LoadData(os.DirFS(*dataDir))
	if err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	validator := &SettingsValidator{
		game: data.Game.FullName(),
		defs: vault.NewHooks(nil).BeforeOptionsDefined(options.NewDefinitions()),
	}
	for _, path := range flags.Args() {
		fmt.Fprintf(stdout, "Validating %s...\n", path)
		validator.validateFile(path)
	}
	if len(validator.errors) > 0 {
		return fmt.Errorf("validation errors:\n%s", strings.Join(validator.errors, "\n"))
	}

	fmt.Fprintln(stdout, "All files are valid!")
	return nil
}

// SettingsValidator collects every problem across player settings files.
type SettingsValidator struct {
	game   string
	defs   *options.Definitions
	errors []string
	names  map[string]string // player name -> file
}

func (v *SettingsValidator) validateFile(path string) {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != ".yaml" && ext != ".yml" {
		v.addError(base, "settings file must have .yaml extension")
		return
	}

	f, err := os.Open(path)
	if err != nil {
		v.addError(base, err.Error())
		return
	}
	defer f.Close()

	ps, err := options.LoadPlayerSettings(f)
	if err != nil {
		v.addError(base, err.Error())
		return
	}

	if ps.Game != v.game {
		v.addError(base, fmt.Sprintf("game %q does not match %q", ps.Game, v.game))
		return
	}

	if v.names == nil {
		v.names = make(map[string]string)
	}
	if other, ok := v.names[ps.Name]; ok {
		v.addError(base, fmt.Sprintf("player name %q is already used by %s", ps.Name, other))
	}
	v.names[ps.Name] = base

	// Keywords like "random" are valid, so resolve with a fixed source.
	if _, err := ps.Resolve(v.defs, rand.New(rand.NewPCG(0, 1))); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			v.addError(base, line)
		}
	}
}

func (v *SettingsValidator) addError(file, msg string) {
	v.errors = append(v.errors, "  - "+file+": "+msg)
}
