package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// write encodes v in the configured format to --out, or to stdout.
func (a *app) write(v interface{}) error {
	w := a.out
	if a.cfg.Out != "" {
		f, err := os.Create(a.cfg.Out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	return encode(w, a.cfg.Format, v)
}

func encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
