// Command depcheck evaluates dependency container definitions against a
// resource or a submitted request read from a file, and prints which rules
// hold.
//
//	depcheck display -d containers.yaml -f resource.json
//	depcheck fill -d containers.yaml -f request.yaml --meta
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/ezachrisen/depcontainer"
	"github.com/ezachrisen/depcontainer/cel"
	"github.com/ezachrisen/depcontainer/definition"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type flags struct {
	definitions string
	data        string
	meta        bool
	verbose     bool
}

func run(stdout io.Writer, args []string) error {
	f := &flags{}

	root := &cobra.Command{
		Use:   "depcheck",
		Short: "Evaluate dependency container definitions",
		Long: `depcheck loads dependency container definitions from a YAML file and
evaluates their rules against data read from a JSON or YAML file, either as a
stored resource (display) or as a submitted request (fill).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&f.definitions, "definitions", "d", "", "Container definition file (required)")
	root.PersistentFlags().StringVarP(&f.data, "data", "f", "", "JSON or YAML data file (required)")
	root.PersistentFlags().BoolVar(&f.meta, "meta", false, "Print metadata (display) or the filled model (fill) as JSON")
	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "Produce verbose output")
	root.MarkPersistentFlagRequired("definitions")
	root.MarkPersistentFlagRequired("data")

	root.AddCommand(&cobra.Command{
		Use:   "display",
		Short: "Evaluate the rules against a stored resource",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return display(stdout, f)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "fill",
		Short: "Evaluate the rules against submitted data and fill the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return fill(stdout, f)
		},
	})

	root.SetArgs(args)
	root.SetOut(stdout)
	return root.Execute()
}

func load(f *flags) ([]*depcontainer.Container, depcontainer.Data, error) {
	if f.verbose {
		log.Println("Definitions: ", f.definitions)
		log.Println("Data: ", f.data)
	}

	cs, err := definition.LoadFile(f.definitions,
		definition.WithContainerOptions(depcontainer.WithEvaluator(cel.NewEvaluator())))
	if err != nil {
		return nil, nil, err
	}

	b, err := os.ReadFile(f.data)
	if err != nil {
		return nil, nil, errors.Wrap(err, "read data")
	}
	data := depcontainer.Data{}
	if err := yaml.Unmarshal(b, &data); err != nil {
		return nil, nil, errors.Wrapf(err, "parse %s", f.data)
	}

	if f.verbose {
		log.Printf("Loaded %d containers, %d data keys\n", len(cs), len(data))
	}
	return cs, data, nil
}

func display(w io.Writer, f *flags) error {
	cs, data, err := load(f)
	if err != nil {
		return err
	}

	for _, c := range cs {
		res, err := c.EvaluateForDisplay(data)
		if err != nil {
			return errors.Wrapf(err, "display %s", c.Attribute)
		}
		fmt.Fprintln(w, c.Attribute)
		fmt.Fprintln(w, res)
	}

	if !f.meta {
		return nil
	}
	for _, c := range cs {
		if err := c.ResolveForDisplay(data); err != nil {
			return errors.Wrapf(err, "display %s", c.Attribute)
		}
	}
	return writeJSON(w, f, cs)
}

func fill(w io.Writer, f *flags) error {
	cs, data, err := load(f)
	if err != nil {
		return err
	}

	fields := make([]depcontainer.Field, len(cs))
	for i, c := range cs {
		fields[i] = c
		fmt.Fprintln(w, c.Attribute)
		fmt.Fprintln(w, c.EvaluateRequest(data))
	}

	model := depcontainer.Data{}
	var callbacks []depcontainer.Callback
	for _, c := range cs {
		cb, err := c.Fill(data, model)
		if err != nil {
			return errors.Wrapf(err, "fill %s", c.Attribute)
		}
		if cb != nil {
			callbacks = append(callbacks, cb)
		}
	}
	for _, cb := range callbacks {
		if err := cb(); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "Fields filled: %d\n", len(depcontainer.Available(data, fields...)))
	if !f.meta {
		return nil
	}
	return writeJSON(w, f, model)
}

func writeJSON(w io.Writer, f *flags, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal json")
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return err
	}
	if f.verbose {
		log.Printf("Output size: %s\n", humanize.Bytes(uint64(len(b))))
	}
	return nil
}
