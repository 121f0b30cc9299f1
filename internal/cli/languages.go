package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evamaxfield/extract-imported-libraries/internal/extract/lang"
)

// languagesCmd represents the languages command
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the supported languages and file extensions",
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range lang.All() {
			fmt.Printf("%-12s %s\n", l, strings.Join(extensionsFor(l), " "))
		}
	},
}

func extensionsFor(l lang.Language) []string {
	var exts []string
	for _, ext := range lang.Extensions() {
		if el, ok := lang.ForPath("x" + ext); ok && el == l {
			exts = append(exts, ext)
		}
	}
	return exts
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
