package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/enumgen/config"
	"github.com/teranos/enumgen/emit"
	"github.com/teranos/enumgen/errors"
	"github.com/teranos/enumgen/logger"
	"github.com/teranos/enumgen/model"
	"github.com/teranos/enumgen/schema"
	"github.com/teranos/enumgen/table"
)

// Result summarizes one generation run.
type Result struct {
	Paths Paths
	// Files are the written artifacts, source first.
	Files       []string
	Definitions int
	Duration    time.Duration
}

// Generate renders every artifact of the module in memory and writes them
// only when all definitions built. The formatter runs afterwards and never
// fails the run.
func Generate(ctx context.Context, c Context) (*Result, error) {
	start := time.Now()
	ctx = logger.WithModule(ctx, c.Module)
	log := logger.LoggerFromContext(ctx)

	p := c.Paths()
	res := &Result{Paths: p}
	if p.PublicSchema == "" && p.LocalSchema == "" {
		log.Infow("No enum schemas found; nothing to generate", logger.FieldDir, c.SourceDir)
		return res, nil
	}

	artifacts, n, err := Render(ctx, c, p)
	if err != nil {
		return nil, err
	}

	if err := writeAll(ctx, p.Outputs(), artifacts); err != nil {
		return nil, err
	}
	res.Files = p.Outputs()
	res.Definitions = n

	if c.Formatter.Enabled {
		runFormatter(ctx, c.Formatter, res.Files)
	}

	res.Duration = time.Since(start)
	log.Infow("Generated enums",
		logger.FieldDefinitions, n,
		logger.FieldCount, len(res.Files),
		logger.FieldDurationMS, res.Duration.Milliseconds())
	return res, nil
}

// unit is one built definition with its rendered source text.
type unit struct {
	def    *model.Definition
	source bytes.Buffer
}

// Render builds all artifacts of p without touching the file system
// beyond reading the schemas. It returns the artifact bytes keyed by
// output path and the number of definitions.
func Render(ctx context.Context, c Context, p Paths) (map[string][]byte, int, error) {
	pub, err := loadOptional(p.PublicSchema)
	if err != nil {
		return nil, 0, err
	}
	loc, err := loadOptional(p.LocalSchema)
	if err != nil {
		return nil, 0, err
	}

	opts := emit.Options{Style: c.Style, Fmtlib: c.Fmtlib, RootNamespace: c.RootNamespace}
	localEmitter := emit.New(opts)
	opts.ExportMacro = c.ExportMacro()
	publicEmitter := emit.New(opts)

	pubUnits, err := buildUnits(ctx, c, pub, publicEmitter)
	if err != nil {
		return nil, 0, err
	}
	locUnits, err := buildUnits(ctx, c, loc, localEmitter)
	if err != nil {
		return nil, 0, err
	}
	all := append(append([]*unit{}, pubUnits...), locUnits...)
	if err := checkUniqueNames(all); err != nil {
		return nil, 0, err
	}

	out := make(map[string][]byte, 3)

	var headers []string
	if pub != nil {
		data, err := c.header(publicEmitter, pubUnits, nil)
		if err != nil {
			return nil, 0, err
		}
		out[p.PublicHeader] = data
		headers = append(headers, c.PublicHeaderName())
	}
	if loc != nil {
		data, err := c.header(localEmitter, locUnits, headers)
		if err != nil {
			return nil, 0, err
		}
		out[p.LocalHeader] = data
		headers = append(headers, c.LocalHeaderName())
	}

	var src bytes.Buffer
	src.WriteString(c.banner(false))
	seen := emit.NewIncludeSet()
	if err := localEmitter.Includes(&src, seen, headers...); err != nil {
		return nil, 0, err
	}
	for _, u := range all {
		if err := localEmitter.Includes(&src, seen, emit.SourceIncludes(u.def)...); err != nil {
			return nil, 0, err
		}
	}
	for _, u := range all {
		src.Write(u.source.Bytes())
	}
	out[p.Source] = src.Bytes()

	return out, len(all), nil
}

func loadOptional(path string) (*schema.Document, error) {
	if path == "" {
		return nil, nil
	}
	doc, err := schema.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debugw("Loaded schema", logger.FieldSchema, path, logger.FieldDefinitions, len(doc.Records))
	return doc, nil
}

// buildUnits builds and renders the definitions of doc concurrently.
// Results keep declaration order.
func buildUnits(ctx context.Context, c Context, doc *schema.Document, e *emit.Emitter) ([]*unit, error) {
	if doc == nil {
		return nil, nil
	}
	env := model.Env{RootNamespace: c.RootNamespace, StringHashHeader: c.StringHashHeader}
	units := make([]*unit, len(doc.Records))

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, rec := range doc.Records {
		i, rec := i, rec
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			d, err := model.Build(rec, env)
			if err != nil {
				return errors.Wrapf(err, "%s", doc.Path)
			}
			traceDefinition(ctx, d)
			u := &unit{def: d}
			if err := e.Definition(&u.source, d); err != nil {
				return errors.Wrapf(err, "failed to render %s", d.Name)
			}
			units[i] = u
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}

// traceDefinition logs the physical table order at -vvv and the whole
// definition at -vvvv.
func traceDefinition(ctx context.Context, d *model.Definition) {
	if !logger.ShouldOutput(logger.Verbosity, logger.OutputTables) {
		return
	}
	log := logger.LoggerFromContext(ctx).With(logger.FieldDefinition, d.Name)
	if d.StringTable() {
		t := table.Build(d)
		keys := make([]string, len(t.Rows))
		for i, r := range t.Rows {
			keys[i] = r.Key
		}
		log.Debugw("String table order", "category", logger.CategoryName(logger.OutputTables), "keys", keys)
	}
	if logger.ShouldOutput(logger.Verbosity, logger.OutputModelDump) {
		entries := make([]string, len(d.Entries))
		for i, e := range d.Entries {
			entries[i] = fmt.Sprintf("%+v", *e)
		}
		log.Debugw("Definition model",
			"category", logger.CategoryName(logger.OutputModelDump),
			logger.FieldUsage, d.Usage.String(),
			"options", d.Options,
			"fields", d.Fields,
			"entries", entries)
	}
}

func checkUniqueNames(units []*unit) error {
	seen := make(map[string]bool, len(units))
	for _, u := range units {
		key := emit.Qualified(u.def.Namespace) + "::" + u.def.Name
		if seen[key] {
			return errors.WithHint(
				errors.NewSchemaError("definition %s is declared more than once", key),
				"definition names must be unique per namespace across the public and local schemas")
		}
		seen[key] = true
	}
	return nil
}

// header renders one declaration artifact. extra names headers included
// after the support headers, e.g. the public header from the local one.
func (c Context) header(e *emit.Emitter, units []*unit, extra []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(c.banner(true))

	seen := emit.NewIncludeSet()
	if err := e.Includes(&buf, seen, c.supportIncludes()...); err != nil {
		return nil, err
	}
	if err := e.Includes(&buf, seen, extra...); err != nil {
		return nil, err
	}
	for _, u := range units {
		if err := e.Declaration(&buf, u.def, seen); err != nil {
			return nil, errors.Wrapf(err, "failed to render %s", u.def.Name)
		}
	}
	return buf.Bytes(), nil
}

func (c Context) supportIncludes() []string {
	out := []string{
		"array", "cstdint", "ostream", "string_view", "tuple",
		c.ModuleConfigHeader(), c.FlagTypeHeader, c.StringHashHeader,
	}
	if c.Fmtlib {
		out = append(out, "fmt/format.h")
	}
	return out
}

// writeAll stages every artifact next to its target and renames them into
// place only once all of them were written, so a failed run leaves the
// previous outputs untouched.
func writeAll(ctx context.Context, paths []string, artifacts map[string][]byte) error {
	log := logger.LoggerFromContext(ctx)
	staged := make([]string, 0, len(paths))
	cleanup := func() {
		for _, tmp := range staged {
			if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
				log.Warnw("Failed to remove staged artifact", logger.FieldFile, tmp, logger.FieldError, err)
			}
		}
	}

	for _, path := range paths {
		tmp, err := stageFile(path, artifacts[path])
		if err != nil {
			cleanup()
			return err
		}
		staged = append(staged, tmp)
	}
	for i, path := range paths {
		if err := os.Rename(staged[i], path); err != nil {
			staged = staged[i:]
			cleanup()
			return errors.Wrapf(err, "failed to replace %s", path)
		}
		log.Debugw("Wrote artifact", logger.FieldFile, path, "bytes", len(artifacts[path]))
	}
	return nil
}

// stageFile writes data to a temporary file in path's directory and
// returns its name.
func stageFile(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, config.DefaultDirPermissions); err != nil {
		return "", errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return "", errors.Newf("failed to write %s: target is a directory", path)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", errors.Wrapf(err, "failed to stage %s", path)
	}
	_, werr := f.Write(data)
	if werr == nil {
		werr = f.Chmod(config.DefaultFilePermissions)
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(f.Name())
		return "", errors.Wrapf(werr, "failed to write %s", path)
	}
	return f.Name(), nil
}
