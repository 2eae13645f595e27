package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"go.amprs.dev/ari/ari"
	"go.amprs.dev/ari/aricbor"
	"go.amprs.dev/ari/aritext"
	"go.amprs.dev/ari/ariutil"
	"go.amprs.dev/ari/nickname"
)

type convertOptions struct {
	inform       string
	input        string
	outform      string
	output       string
	admPaths     []string
	nicknameMode string
	mustNickname bool
}

func newConvertCmd() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an ARI between text, CBOR, and diagnostic forms",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.inform, "inform", "text", "input form: text or cbor")
	flags.StringVar(&opts.input, "input", "-", "input file, or \"-\" for stdin")
	flags.StringVar(&opts.outform, "outform", "text", "output form: text, cbor, or diag")
	flags.StringVar(&opts.output, "output", "-", "output file, or \"-\" for stdout")
	flags.StringArrayVar(&opts.admPaths, "adm-path", nil, "directory of ADM JSON documents (repeatable)")
	flags.StringVar(&opts.nicknameMode, "nickname", "none", "nickname conversion: none, to, or from")
	flags.BoolVar(&opts.mustNickname, "must-nickname", false, "fail if any reference cannot be nickname-converted")

	return cmd
}

func runConvert(cmd *cobra.Command, opts *convertOptions) error {
	value, err := readARI(opts.inform, opts.input)
	if err != nil {
		return err
	}

	if opts.nicknameMode != "none" {
		value, err = applyNicknameConversion(cmd, opts, value)
		if err != nil {
			return err
		}
	}

	return writeARI(opts.outform, opts.output, value)
}

func readARI(inform, input string) (ari.ARI, error) {
	data, err := readInput(input)
	if err != nil {
		return nil, err
	}

	switch inform {
	case "text":
		val, err := aritext.Decode(string(data))
		if err != nil {
			return nil, fmt.Errorf("decode ARI text: %w", err)
		}

		return val, nil
	case "cbor":
		val, err := aricbor.DecodeBytes(data)
		if err != nil {
			return nil, fmt.Errorf("decode ARI CBOR: %w", err)
		}

		return val, nil
	default:
		return nil, fmt.Errorf("unknown --inform %q", inform)
	}
}

func readInput(input string) ([]byte, error) {
	if input == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(input)
}

func applyNicknameConversion(cmd *cobra.Command, opts *convertOptions, value ari.ARI) (ari.ARI, error) {
	cat, err := loadCatalog(cmd.Context(), opts.admPaths)
	if err != nil {
		return nil, err
	}

	mode := nickname.ToNickname
	if opts.nicknameMode == "from" {
		mode = nickname.FromNickname
	}

	conv := &nickname.Converter{Catalog: cat, Mode: mode, MustNickname: opts.mustNickname}

	converted, err := conv.Convert(value)
	if err != nil {
		return nil, fmt.Errorf("nickname conversion: %w", err)
	}

	return converted, nil
}

func writeARI(outform, output string, value ari.ARI) error {
	var data []byte

	switch outform {
	case "text":
		text, err := aritext.EncodeString(value)
		if err != nil {
			return fmt.Errorf("encode ARI text: %w", err)
		}
		data = []byte(text + "\n")
	case "cbor":
		encoded, err := aricbor.EncodeBytes(value)
		if err != nil {
			return fmt.Errorf("encode ARI CBOR: %w", err)
		}
		data = []byte(ariutil.ToHexString(encoded) + "\n")
	case "diag":
		encoded, err := aricbor.EncodeBytes(value)
		if err != nil {
			return fmt.Errorf("encode ARI CBOR: %w", err)
		}
		text, err := ariutil.DiagBytes(encoded)
		if err != nil {
			return fmt.Errorf("diagnose ARI CBOR: %w", err)
		}
		data = []byte(text + "\n")
	default:
		return fmt.Errorf("unknown --outform %q", outform)
	}

	if output == "-" {
		_, err := os.Stdout.Write(data)

		return err
	}

	return os.WriteFile(output, data, 0o644)
}
