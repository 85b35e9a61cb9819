package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newBuildCmd(v *viper.Viper) *cobra.Command {
	var showTrace bool
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run the demo scenario once and print the resulting tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runScenario()
			if err != nil {
				return err
			}

			var out strings.Builder
			fmt.Println(renderHeading("domshell: document tree"))
			renderTree(res.doc.Node, 0, &out)
			fmt.Print(out.String())

			if showTrace {
				fmt.Println()
				fmt.Println(renderHeading("reaction / event / mutation trace"))
				for _, s := range res.trace {
					fmt.Println(renderStep(s))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showTrace, "trace", false, "also print the reaction/event/mutation-record trace")
	_ = v.BindPFlag("build.trace", cmd.Flags().Lookup("trace"))
	return cmd
}
