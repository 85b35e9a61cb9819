package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newWatchCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the demo scenario, then print its numbered reaction/event/mutation trace and the final tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runScenario()
			if err != nil {
				return err
			}

			fmt.Println(renderHeading("domshell: live trace"))
			for i, s := range res.trace {
				fmt.Printf("%2d. %s\n", i+1, renderStep(s))
			}

			fmt.Println()
			fmt.Println(renderHeading("final document tree"))
			var out strings.Builder
			renderTree(res.doc.Node, 0, &out)
			fmt.Print(out.String())
			return nil
		},
	}
	return cmd
}
