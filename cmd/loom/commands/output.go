package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// render writes v in the format selected by the --output flag. YAML output goes
// through JSON first so custom JSON marshalers are honored.
func render(cmd *cobra.Command, v any) error {
	format, _ := cmd.Flags().GetString("output")
	w := cmd.OutOrStdout()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to encode output")
	}

	switch format {
	case formatJSON:
		return writeLine(w, data)
	case formatYAML:
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return zerr.Wrap(err, "failed to encode output")
		}
		out, err := yaml.Marshal(generic)
		if err != nil {
			return zerr.Wrap(err, "failed to encode output")
		}
		_, err = w.Write(out)
		return err
	default:
		return zerr.With(zerr.New("unsupported output format"), "format", format)
	}
}

func writeLine(w io.Writer, data []byte) error {
	_, err := fmt.Fprintf(w, "%s\n", data)
	return err
}
