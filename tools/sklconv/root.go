package main

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/mogaika/w3x_skeleton_browser/config"
	"github.com/mogaika/w3x_skeleton_browser/pack/w3x"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Encoding   string
	RootName   string
	Verbose    bool

	settings config.Settings
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sklconv",
		Short: "Convert W3X skeleton hierarchies",
		Long: `Reads the W3DHierarchy block of W3X documents, resolves world
transforms of every pivot and exports them as ini, glTF or FBX.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "yaml settings file")
	cmd.PersistentFlags().StringVar(&opts.Encoding, "encoding", "", "text encoding of input documents")
	cmd.PersistentFlags().StringVar(&opts.RootName, "root", "", "name of the root pivot")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "print diagnostics")

	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))
	cmd.AddCommand(NewIndexCommand(opts))
	cmd.AddCommand(NewGLTFCommand(opts))
	cmd.AddCommand(NewFbxCommand(opts))
	cmd.AddCommand(NewEncodingsCommand())

	return cmd
}

func (opts *RootOptions) load() error {
	opts.settings = config.DefaultSettings()
	if opts.ConfigPath != "" {
		s, err := config.LoadSettings(opts.ConfigPath)
		if err != nil {
			return err
		}
		opts.settings = s
	}
	if opts.Encoding != "" {
		opts.settings.Encoding = opts.Encoding
	}
	if opts.RootName != "" {
		opts.settings.RootName = opts.RootName
	}
	return nil
}

// writerReporter prints diagnostics to the command error stream.
type writerReporter struct {
	w io.Writer
}

func (wr writerReporter) Report(d w3x.Diagnostic) {
	fmt.Fprintln(wr.w, d.String())
}

func (opts *RootOptions) options(cmd *cobra.Command, diags *w3x.DiagnosticList) (w3x.Options, error) {
	enc, err := config.FindEncoding(opts.settings.Encoding)
	if err != nil {
		return w3x.Options{}, err
	}
	rep := w3x.MultiReporter{diags}
	if opts.Verbose {
		rep = append(rep, writerReporter{cmd.ErrOrStderr()})
	}
	return w3x.Options{
		Encoding: enc,
		Reporter: rep,
		RootName: opts.settings.RootName,
	}, nil
}

func (opts *RootOptions) process(cmd *cobra.Command, path string) (*w3x.Hierarchy, error) {
	var diags w3x.DiagnosticList
	o, err := opts.options(cmd, &diags)
	if err != nil {
		return nil, err
	}
	h, err := w3x.ProcessFile(path, o)
	if err != nil {
		return nil, err
	}
	if !opts.Verbose {
		if n := len(diags.Items()); n != 0 {
			log.Printf("[sklconv] %s: %d diagnostics, use -v to see them", path, n)
		}
	}
	return h, nil
}
