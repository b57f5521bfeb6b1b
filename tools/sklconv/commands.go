package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mogaika/w3x_skeleton_browser/config"
	"github.com/mogaika/w3x_skeleton_browser/pack/w3x"
	"github.com/mogaika/w3x_skeleton_browser/utils/gltfutils"
)

func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	var suffix string

	cmd := &cobra.Command{
		Use:   "convert <file>...",
		Short: "Write a resolved pivot ini next to every input",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if suffix == "" {
				suffix = rootOpts.settings.OutputSuffix
			}

			failed := 0
			for _, path := range args {
				var diags w3x.DiagnosticList
				o, err := rootOpts.options(cmd, &diags)
				if err != nil {
					return err
				}
				_, out, err := w3x.Convert(path, o, suffix)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "INI file exported to: %s\n", out)
			}
			if failed != 0 {
				return errors.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&suffix, "suffix", "", "output file suffix (default from settings, .SKL.ini)")
	return cmd
}

func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print pivot count and tree of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := rootOpts.process(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: hierarchy %q, %d pivots (%d in document)\n", args[0], h.Id, h.Len(), h.SourceCount)

			var walk func(i, depth int)
			walk = func(i, depth int) {
				fmt.Fprintf(out, "%s%d %s\n", strings.Repeat("  ", depth), i, h.Pivots[i].Name)
				for _, c := range h.Children(i) {
					walk(c, depth+1)
				}
			}
			for _, r := range h.Roots() {
				walk(r, 0)
			}
			return nil
		},
	}
}

func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Dump resolved pivots as spew or yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := rootOpts.process(cmd, args[0])
			if err != nil {
				return err
			}
			switch format {
			case "spew":
				fmt.Fprint(cmd.OutOrStdout(), h.Dump())
			case "yaml":
				data, err := h.YAML()
				if err != nil {
					return err
				}
				cmd.OutOrStdout().Write(data)
			default:
				return errors.Errorf("invalid format %q: must be spew or yaml", format)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format (spew|yaml)")
	return cmd
}

func NewIndexCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "index <file>",
		Short: "Annotate every Pivot line with its position comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := w3x.AnnotateFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: annotated %d pivots\n", args[0], count)
			return nil
		},
	}
}

func outputPath(output, input, ext string) string {
	if output != "" {
		return output
	}
	return input + ext
}

func writeOutput(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Failed to create %q", path)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return errors.Wrapf(err, "Failed to write %q", path)
	}
	return f.Close()
}

func NewGLTFCommand(rootOpts *RootOptions) *cobra.Command {
	var output, proxy string
	var binary bool

	cmd := &cobra.Command{
		Use:   "gltf <file>",
		Short: "Export pivots as a glTF node tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := rootOpts.process(cmd, args[0])
			if err != nil {
				return err
			}
			if proxy == "" {
				proxy = rootOpts.settings.Proxy
			}
			doc, err := w3x.ExportGLTF(h, w3x.ParseProxyKind(proxy))
			if err != nil {
				return err
			}

			ext := ".gltf"
			if binary {
				ext = ".glb"
			}
			path := outputPath(output, args[0], ext)
			if err := writeOutput(path, func(f *os.File) error {
				if binary {
					return gltfutils.ExportBinary(f, doc)
				}
				return gltfutils.ExportJSON(f, doc)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "glTF file exported to: %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default <file>.gltf)")
	cmd.Flags().StringVar(&proxy, "proxy", "", "proxy kind (box|bone|helper)")
	cmd.Flags().BoolVar(&binary, "binary", false, "write binary .glb")
	return cmd
}

func NewFbxCommand(rootOpts *RootOptions) *cobra.Command {
	var output, proxy string

	cmd := &cobra.Command{
		Use:   "fbx <file>",
		Short: "Export pivots as an FBX scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := rootOpts.process(cmd, args[0])
			if err != nil {
				return err
			}
			if proxy == "" {
				proxy = rootOpts.settings.Proxy
			}
			f, err := w3x.ExportFbx(h, filepath.Base(args[0]), w3x.ParseProxyKind(proxy))
			if err != nil {
				return err
			}

			path := outputPath(output, args[0], ".fbx")
			if err := writeOutput(path, func(out *os.File) error {
				return f.Write(out)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "FBX file exported to: %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default <file>.fbx)")
	cmd.Flags().StringVar(&proxy, "proxy", "", "proxy kind (box|bone|helper)")
	return cmd
}

func NewEncodingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "encodings",
		Short: "List names accepted by --encoding",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListEncodings() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
