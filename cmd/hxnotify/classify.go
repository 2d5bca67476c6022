package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aretw0/hxnotify/internal/presentation/tui"
	"github.com/aretw0/hxnotify/pkg/domain"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <status>",
	Short: "Show what the dispatcher decides for a response status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("status %q is not a number", args[0])
		}
		status := domain.Status(code)
		if err := status.Validate(); err != nil {
			return err
		}

		retarget, _ := cmd.Flags().GetString("retarget")
		target, _ := cmd.Flags().GetString("target")
		plain, _ := cmd.Flags().GetBool("plain")

		swap := domain.NewSwap(status, retarget, target)
		decision := domain.Decide(swap)

		out := cmd.OutOrStdout()
		if f, ok := out.(*os.File); !plain && ok && tui.IsTerminal(f) {
			rendered, err := tui.NewRenderer()(tui.DecisionMarkdown(swap, decision))
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
			return nil
		}

		fmt.Fprintln(out, tui.DecisionPlain(swap, decision))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().String("retarget", "", "Value of the HX-Retarget response header")
	classifyCmd.Flags().String("target", "#main", "Selector the request originally targeted")
	classifyCmd.Flags().Bool("plain", false, "Print a single line even on a terminal")
}
