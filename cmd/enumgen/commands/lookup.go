package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/enumgen/errors"
	"github.com/teranos/enumgen/lookup"
	"github.com/teranos/enumgen/model"
	"github.com/teranos/enumgen/schema"
	"github.com/teranos/enumgen/table"
)

// LookupCmd runs a string-table lookup against one schema definition
var LookupCmd = &cobra.Command{
	Use:   "lookup <schema-file> <definition> <probe>",
	Short: "Look a string up in a definition's string table",
	Long: `Build the string table of one definition and search it the way the
generated FromString does: exact match, longest prefix (prefix-match),
longest suffix (suffix-match) or hashed key (string-key). The probe is
folded with the definition's search modifier first.

Examples:
  enumgen lookup include/Enums.json Color green
  enumgen lookup local_include/Enums.yaml Verb GetAllItems`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		env := model.Env{RootNamespace: cfg.Generator.RootNamespace, StringHashHeader: cfg.Headers.StringHash}
		return runLookup(cmd.OutOrStdout(), env, args[0], args[1], args[2])
	},
}

// LookupResult is the outcome of one probe.
type LookupResult struct {
	Row   *table.Row
	Rest  string
	Found bool
	Mode  string
}

// Probe searches t with the lookup its definition's options select.
func Probe(t *table.Table, probe string) LookupResult {
	d := t.Def
	switch {
	case d.StringKey():
		row, ok := lookup.Key(t, lookup.Hash(probe))
		return LookupResult{Row: row, Found: ok, Mode: "key"}
	case d.Options.Has(model.OptPrefixMatch):
		row, rest, ok := lookup.LongestPrefix(t, probe)
		return LookupResult{Row: row, Rest: rest, Found: ok, Mode: "prefix"}
	case d.Options.Has(model.OptSuffixMatch):
		row, rest, ok := lookup.LongestSuffix(t, probe)
		return LookupResult{Row: row, Rest: rest, Found: ok, Mode: "suffix"}
	default:
		row, ok := lookup.Exact(t, probe)
		return LookupResult{Row: row, Found: ok, Mode: "exact"}
	}
}

func runLookup(w io.Writer, env model.Env, path, name, probe string) error {
	doc, err := schema.Load(path)
	if err != nil {
		return err
	}
	var rec *schema.Record
	for i := range doc.Records {
		if doc.Records[i].Name == name {
			rec = &doc.Records[i]
			break
		}
	}
	if rec == nil {
		return errors.NewNotFoundError("definition %s in %s", name, path)
	}

	d, err := model.Build(*rec, env)
	if err != nil {
		return err
	}
	if !d.StringTable() {
		return errors.WithHint(
			errors.Newf("%s has no string table", name),
			"drop the no-strings option to enable lookups")
	}

	t := table.Build(d)
	res := Probe(t, probe)

	fmt.Fprintf(w, "mode:   %s\n", res.Mode)
	if !res.Found {
		if res.Row == nil {
			fmt.Fprintf(w, "match:  none (no default)\n")
			return nil
		}
		fmt.Fprintf(w, "match:  none, default %s\n", res.Row.Entry.Member(d.PrimaryForm()))
	} else {
		fmt.Fprintf(w, "match:  %s %q\n", res.Row.Entry.Member(d.PrimaryForm()), res.Row.Key)
	}
	if res.Mode == "prefix" || res.Mode == "suffix" {
		fmt.Fprintf(w, "rest:   %q\n", res.Rest)
	}
	if res.Mode == "key" {
		fmt.Fprintf(w, "hash:   0x%08x\n", res.Row.Hash)
	}
	fmt.Fprintf(w, "value:  {%s}\n", strings.Join(res.Row.Value, ", "))

	bits, _, _ := model.DeriveBits(d)
	for _, b := range bits {
		if b.Entry == res.Row.Entry && b.Known {
			fmt.Fprintf(w, "bit:    0x%x\n", b.Value)
		}
	}
	return nil
}
