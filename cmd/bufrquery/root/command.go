// Package root defines the top-level bufrquery command: the flags every
// subcommand shares (which directory of provider fixtures to read, how to
// log, and whether occurrence-index resolution is strict) plus the
// zap.Logger and memprovider fixture loading built from them.
package root

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	applog "github.com/ncep-emc/bufrquery/pkg/log"
	"github.com/ncep-emc/bufrquery/pkg/charm"
	"github.com/ncep-emc/bufrquery/bufr/provider/memprovider"
)

var Bufrquery = &charm.Spec{
	Name:  "bufrquery",
	Usage: "bufrquery [options] <command> [arguments...]",
	Short: "query BUFR subset data by mnemonic path",
	Long: `
bufrquery resolves named mnemonic-path queries against decoded BUFR
subsets and assembles the results into typed, multi-dimensional arrays.

It does not decode raw BUFR bytes: subsets are read from YAML fixture
files (one file per subset, built with the "bufr/provider/memprovider"
format) located under -subset-dir. A real bit-level decoder would
implement "bufr/provider".DataProvider the same way memprovider does.`,
	New: New,
}

// Command holds the flags and derived state shared by every subcommand.
type Command struct {
	SubsetDir   string
	LogLevel    string
	LogPath     string
	StrictIndex bool
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{}
	f.StringVar(&c.SubsetDir, "subset-dir", "", "directory of subset fixture files (.yaml)")
	f.StringVar(&c.LogLevel, "log.level", "info", "log level: debug, info, warn, error")
	f.StringVar(&c.LogPath, "log.path", "", "log file path (rotated); default stderr")
	f.BoolVar(&c.StrictIndex, "strict-index", false, "reject out-of-range query occurrence indices instead of keeping the full match set")
	return c, nil
}

func (c *Command) Run(args []string) error {
	return charm.NoRun(args)
}

// Logger builds the *zap.Logger for this invocation.
func (c *Command) Logger() (*zap.Logger, error) {
	return applog.New(applog.Config{Level: c.LogLevel, Path: c.LogPath})
}

// LoadSubsets reads every ".yaml"/".yml" fixture in SubsetDir and returns
// one memprovider.Provider per file, in directory-listing order.
func (c *Command) LoadSubsets() ([]*memprovider.Provider, error) {
	if c.SubsetDir == "" {
		return nil, fmt.Errorf("root: -subset-dir is required")
	}
	entries, err := os.ReadDir(c.SubsetDir)
	if err != nil {
		return nil, fmt.Errorf("root: reading subset-dir: %w", err)
	}

	var providers []*memprovider.Provider
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(c.SubsetDir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("root: reading fixture %s: %w", e.Name(), err)
		}
		subset, err := memprovider.LoadFixture(data)
		if err != nil {
			return nil, fmt.Errorf("root: parsing fixture %s: %w", e.Name(), err)
		}
		providers = append(providers, memprovider.NewProvider(subset))
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("root: no .yaml fixtures found in %s", c.SubsetDir)
	}
	return providers, nil
}
