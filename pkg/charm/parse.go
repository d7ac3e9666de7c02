package charm

import "flag"

// frame is one resolved level of a command invocation: the Spec matched,
// the Command it constructed, and the flag.FlagSet parsed against it.
type frame struct {
	spec *Spec
	cmd  Command
	fs   *flag.FlagSet
}

// path is the chain of resolved frames from the root Spec down to the
// command that will actually run.
type path []*frame

func (p path) run(args []string) error {
	return p[len(p)-1].cmd.Run(args)
}

// parse walks spec's command tree against args, constructing a Command at
// every level via Spec.New and registering its flags. A node with no
// children is always a leaf. A node with children is a leaf only when its
// remaining positional args don't name a child: either because there are
// none (the command was invoked bare, e.g. "dev" on its own, and its Run
// method decides what to do), or because it is marked InternalLeaf and
// tryLeaf permits treating unresolved trailing args as its own. Any other unresolved trailing args are ambiguous and
// ErrNotLeaf bubbles up so Exec can retry without the InternalLeaf leeway.
func parse(spec *Spec, args []string, parent Command, tryLeaf bool) (path, []string, bool, error) {
	fs := flag.NewFlagSet(spec.Name, flag.ContinueOnError)
	var help bool
	fs.BoolVar(&help, "h", false, "show this help message")
	var showHidden bool
	fs.BoolVar(&showHidden, "a", false, "show hidden commands and flags")

	cmd, err := spec.New(parent, fs)
	if err != nil {
		return nil, nil, showHidden, err
	}

	hasChildren := len(spec.children) > 0
	leafOK := !hasChildren || (tryLeaf && spec.InternalLeaf)
	if il, ok := cmd.(InternalLeaf); ok && leafOK {
		il.SetLeafFlags(fs)
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return path{{spec, cmd, fs}}, nil, showHidden, NeedHelp
		}
		return nil, nil, showHidden, err
	}
	rest := fs.Args()
	if help {
		return path{{spec, cmd, fs}}, rest, showHidden, NeedHelp
	}

	if len(rest) > 0 {
		if child := spec.lookupSub(rest[0]); child != nil {
			childPath, childRest, sh, err := parse(child, rest[1:], cmd, tryLeaf)
			if err != nil {
				return nil, nil, sh, err
			}
			return append(path{{spec, cmd, fs}}, childPath...), childRest, sh, nil
		}
		if !leafOK {
			return nil, nil, showHidden, ErrNotLeaf
		}
	}

	return path{{spec, cmd, fs}}, rest, showHidden, nil
}

// parseHelp walks spec's command tree the same way parse does, but purely
// by subcommand name, ignoring flag errors — used only to find which node
// to display help for, so a malformed or incomplete invocation still shows
// something useful.
func parseHelp(spec *Spec, args []string) (path, error) {
	var p path
	var parent Command
	cur := spec
	rest := args

	for {
		fs := flag.NewFlagSet(cur.Name, flag.ContinueOnError)
		fs.SetOutput(discard{})
		var help, showHidden bool
		fs.BoolVar(&help, "h", false, "show this help message")
		fs.BoolVar(&showHidden, "a", false, "show hidden commands and flags")

		cmd, err := cur.New(parent, fs)
		if err != nil {
			return nil, err
		}
		hasChildren := len(cur.children) > 0
		if il, ok := cmd.(InternalLeaf); ok && (!hasChildren || cur.InternalLeaf) {
			il.SetLeafFlags(fs)
		}
		p = append(p, &frame{spec: cur, cmd: cmd, fs: fs})

		_ = fs.Parse(rest)
		args2 := fs.Args()
		if len(args2) == 0 {
			break
		}
		child := cur.lookupSub(args2[0])
		if child == nil {
			break
		}
		cur = child
		rest = args2[1:]
		parent = cmd
	}
	return p, nil
}

type discard struct{}

func (discard) Write(b []byte) (int, error) { return len(b), nil }
