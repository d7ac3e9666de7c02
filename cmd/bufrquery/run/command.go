// Package run implements "bufrquery run", which resolves a QuerySet against
// every fixture subset under -subset-dir and prints one field's assembled
// result.
package run

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ncep-emc/bufrquery/bufr/collect"
	"github.com/ncep-emc/bufrquery/bufr/query"
	"github.com/ncep-emc/bufrquery/bufr/result"
	"github.com/ncep-emc/bufrquery/bufr/target"
	"github.com/ncep-emc/bufrquery/cmd/bufrquery/root"
	"github.com/ncep-emc/bufrquery/pkg/charm"
)

var Spec = &charm.Spec{
	Name:  "run",
	Usage: "run -query name=path [-query name=path ...] -field name [options]",
	Short: "resolve queries against every subset fixture and print one field",
	New:   New,
}

func init() {
	root.Bufrquery.Add(Spec)
}

type queryFlag struct{ pairs []string }

func (q *queryFlag) String() string { return strings.Join(q.pairs, ",") }
func (q *queryFlag) Set(s string) error {
	q.pairs = append(q.pairs, s)
	return nil
}

type Command struct {
	*root.Command
	queries     queryFlag
	queriesFile string
	field       string
	groupBy     string
	overrideTyp string
	format      string
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	f.Var(&c.queries, "query", "name=path query, may be given more than once")
	f.StringVar(&c.queriesFile, "queries-file", "", "file of name=path queries, one per line")
	f.StringVar(&c.field, "field", "", "field name to print (required)")
	f.StringVar(&c.groupBy, "group-by", "", "field name whose dim-path must prefix -field's")
	f.StringVar(&c.overrideTyp, "type", "", "override result type: int, int32, int64, float, double, string")
	f.StringVar(&c.format, "format", "json", "output format: json or csv")
	return c, nil
}

func (c *Command) Run(args []string) error {
	if c.field == "" {
		return errors.New("run: -field is required")
	}

	logger, err := c.Logger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	qs, err := c.buildQuerySet()
	if err != nil {
		return err
	}

	providers, err := c.LoadSubsets()
	if err != nil {
		return err
	}

	resolver := target.NewTargetResolver()
	resolver.Strict = c.StrictIndex
	resolver.Warn = func(msg string) { logger.Warn(msg) }

	collector := collect.NewFrameCollector()
	rs := result.New()
	for _, p := range providers {
		targets, masks, err := resolver.Resolve(qs, p)
		if err != nil {
			return fmt.Errorf("run: resolving subset %s: %w", p.SubsetName(), err)
		}
		rs.Append(collector.Collect(targets, masks, p))
	}

	obj, err := rs.Get(c.field, c.groupBy, c.overrideTyp)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	switch c.format {
	case "json":
		return writeJSON(os.Stdout, obj)
	case "csv":
		return writeCSV(os.Stdout, obj)
	default:
		return fmt.Errorf("run: unknown -format %q", c.format)
	}
}

func (c *Command) buildQuerySet() (*query.QuerySet, error) {
	qs := query.NewQuerySet()

	addPair := func(pair string) error {
		name, path, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("run: malformed query %q, want name=path", pair)
		}
		return qs.Add(name, path)
	}

	for _, pair := range c.queries.pairs {
		if err := addPair(pair); err != nil {
			return nil, err
		}
	}

	if c.queriesFile != "" {
		data, err := os.ReadFile(c.queriesFile)
		if err != nil {
			return nil, fmt.Errorf("run: reading -queries-file: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if err := addPair(line); err != nil {
				return nil, err
			}
		}
	}

	if qs.Size() == 0 {
		return nil, errors.New("run: no queries given (-query or -queries-file)")
	}
	return qs, nil
}

func writeJSON(w *os.File, obj result.DataObject) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"field":    obj.FieldName,
		"groupBy":  obj.GroupByFieldName,
		"dims":     obj.Dims,
		"dimPaths": obj.DimPaths,
		"kind":     obj.Kind.String(),
		"data":     valuesOf(obj),
	})
}

func writeCSV(w *os.File, obj result.DataObject) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write([]string{"index", "value"}); err != nil {
		return err
	}
	for i, v := range valuesOf(obj) {
		if err := cw.Write([]string{strconv.Itoa(i), fmt.Sprint(v)}); err != nil {
			return err
		}
	}
	return nil
}

func valuesOf(obj result.DataObject) []any {
	switch obj.Kind {
	case result.KindInt32:
		vs := obj.Int32s()
		out := make([]any, len(vs))
		for i, v := range vs {
			out[i] = v
		}
		return out
	case result.KindInt64:
		vs := obj.Int64s()
		out := make([]any, len(vs))
		for i, v := range vs {
			out[i] = v
		}
		return out
	case result.KindUint32:
		vs := obj.Uint32s()
		out := make([]any, len(vs))
		for i, v := range vs {
			out[i] = v
		}
		return out
	case result.KindUint64:
		vs := obj.Uint64s()
		out := make([]any, len(vs))
		for i, v := range vs {
			out[i] = v
		}
		return out
	case result.KindFloat32:
		vs := obj.Float32s()
		out := make([]any, len(vs))
		for i, v := range vs {
			out[i] = v
		}
		return out
	case result.KindFloat64:
		vs := obj.Float64s()
		out := make([]any, len(vs))
		for i, v := range vs {
			out[i] = v
		}
		return out
	case result.KindString:
		vs := obj.Strings()
		out := make([]any, len(vs))
		for i, v := range vs {
			out[i] = v
		}
		return out
	default:
		return nil
	}
}
