package cli

import (
	"fmt"
	"runtime"

	"github.com/ariel-frischer/statusboard/internal/output"
	"github.com/ariel-frischer/statusboard/internal/version"
	"github.com/spf13/cobra"
)

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information",
	Long:    "Display version, commit, build date, and Go version information for statusboard",
	Example: `  statusboard version
  statusboard version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if versionPlain {
			fmt.Fprintln(out, version.String())
			return
		}
		output.PrintHeader(out, "statusboard")
		v := version.Version
		if version.IsDevBuild() {
			v += " (development build)"
		}
		output.PrintKeyValue(out, "Version", v)
		output.PrintKeyValue(out, "Commit", version.ShortCommit())
		output.PrintKeyValue(out, "Built", version.BuildDate)
		output.PrintKeyValue(out, "Go", runtime.Version())
		output.PrintKeyValue(out, "Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
}
