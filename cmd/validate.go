package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyayalabs/nyaya/internal/analysis"
)

var validateOutput string

var validateCmd = &cobra.Command{
	Use:   "validate <file.pdf>",
	Short: "Analyze a legal document PDF and export a corrected draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		pdf, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading document: %w", err)
		}

		ctx := cmd.Context()
		rt, err := newRuntime(ctx, cfg, newLogger())
		if err != nil {
			return err
		}
		defer rt.close()

		v, err := rt.assistant.Validate(ctx, pdf)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Document type: %s\n\n", v.Type.DisplayName())
		for _, section := range analysis.Sections {
			fmt.Fprintf(out, "%s:\n%s\n\n", section, v.Analysis.Section(section))
		}

		if v.Draft == nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "draft export failed; analysis printed above")
			return nil
		}
		defer rt.drafts.Remove(v.Draft.ID)

		dest := validateOutput
		if dest == "" {
			dest = v.Draft.Filename
		}
		if err := copyFile(v.Draft.Path, dest); err != nil {
			return fmt.Errorf("writing draft: %w", err)
		}
		fmt.Fprintf(out, "Draft written to %s\n", dest)
		return nil
	},
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func init() {
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "",
		"draft output path (default: filename for the detected document type)")
	rootCmd.AddCommand(validateCmd)
}
