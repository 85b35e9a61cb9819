package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/domcore/whatwgdom/logutil"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("DOMSHELL")
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "domshell",
		Short: "Inspect the whatwgdom core by building and mutating a toy document",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if v.GetBool("verbose") {
				logutil.L.SetLevel(log.DebugLevel)
			}
		},
	}

	root.PersistentFlags().Bool("verbose", false, "log debug lines for [CEReactions] scope push/pop (env: DOMSHELL_VERBOSE)")
	_ = v.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	root.AddCommand(newBuildCmd(v), newWatchCmd(v))
	return root
}
