// Package driver runs generation for one module: it discovers the schema
// documents, builds and emits every definition, writes the artifacts and
// hands them to the formatter.
package driver

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/teranos/enumgen/config"
	"github.com/teranos/enumgen/schema"
)

// Context is everything one generation run depends on. It is passed by
// value; nothing in the driver reads global state.
type Context struct {
	Module     string
	ModuleType string
	SourceDir  string
	GenDir     string

	RootNamespace string
	MacroPrefix   string
	Style         string
	Fmtlib        bool
	Workers       int

	FlagTypeHeader   string
	StringHashHeader string

	Formatter Formatter

	// Now stamps the banner; tests pin it.
	Now         func() time.Time
	CommandLine string
	WorkingDir  string
}

// Formatter is the best-effort external formatter run on written files.
type Formatter struct {
	Enabled bool
	Command string
	Timeout time.Duration
}

// NewContext derives a Context from loaded configuration and the process
// environment.
func NewContext(cfg *config.Config) Context {
	wd, _ := os.Getwd()
	return Context{
		Module:           cfg.Module.Name,
		ModuleType:       cfg.Module.Type,
		SourceDir:        cfg.Module.SourceDir,
		GenDir:           cfg.Module.GenDir,
		RootNamespace:    cfg.Generator.RootNamespace,
		MacroPrefix:      cfg.Generator.MacroPrefix,
		Style:            cfg.Generator.CodingStyle,
		Fmtlib:           cfg.Generator.Fmtlib,
		Workers:          cfg.Generator.Workers,
		FlagTypeHeader:   cfg.Headers.FlagType,
		StringHashHeader: cfg.Headers.StringHash,
		Formatter: Formatter{
			Enabled: cfg.Formatter.Enabled,
			Command: cfg.Formatter.Command,
			Timeout: time.Duration(cfg.Formatter.TimeoutSeconds) * time.Second,
		},
		Now:         time.Now,
		CommandLine: strings.Join(os.Args, " "),
		WorkingDir:  wd,
	}
}

// Paths are the inputs and outputs of one module. Schema paths are empty
// when the document does not exist.
type Paths struct {
	PublicSchema string
	LocalSchema  string

	Source       string
	PublicHeader string
	LocalHeader  string
}

// FilePrefix prefixes every artifact name: macro prefix plus module name.
func (c Context) FilePrefix() string { return c.MacroPrefix + c.Module }

// ExportMacro is the API macro of the public header, empty for module
// types that do not export.
func (c Context) ExportMacro() string {
	if !(config.ModuleConfig{Type: c.ModuleType}).ExportsAPI() {
		return ""
	}
	return c.FilePrefix() + "API"
}

// PublicHeaderName is the include name of the public header.
func (c Context) PublicHeaderName() string { return c.FilePrefix() + "Enums.hpp" }

// LocalHeaderName is the include name of the local header.
func (c Context) LocalHeaderName() string { return c.FilePrefix() + "LocalEnums.hpp" }

// ModuleConfigHeader is the per-module configuration header every
// generated header includes.
func (c Context) ModuleConfigHeader() string { return c.Module + "ModuleConfig.hpp" }

// Paths discovers the schema documents and computes the output paths.
func (c Context) Paths() Paths {
	local := filepath.Join(c.GenDir, "local")
	return Paths{
		PublicSchema: schema.Find(filepath.Join(c.SourceDir, "include"), "Enums"),
		LocalSchema:  schema.Find(filepath.Join(c.SourceDir, "local_include"), "Enums"),
		Source:       filepath.Join(local, c.FilePrefix()+"Enums.cpp"),
		PublicHeader: filepath.Join(c.GenDir, c.PublicHeaderName()),
		LocalHeader:  filepath.Join(local, c.LocalHeaderName()),
	}
}

// SchemaDirs are the directories schema documents are discovered in.
func (c Context) SchemaDirs() []string {
	return []string{
		filepath.Join(c.SourceDir, "include"),
		filepath.Join(c.SourceDir, "local_include"),
	}
}

// Outputs lists the artifacts the discovered documents produce.
func (p Paths) Outputs() []string {
	if p.PublicSchema == "" && p.LocalSchema == "" {
		return nil
	}
	out := []string{p.Source}
	if p.PublicSchema != "" {
		out = append(out, p.PublicHeader)
	}
	if p.LocalSchema != "" {
		out = append(out, p.LocalHeader)
	}
	return out
}
