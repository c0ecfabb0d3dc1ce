package main

import "github.com/spf13/cobra"

func (a *app) radioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "radio",
		Short: "Show the Bluetooth radio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s session) error {
				return a.renderer(cmd).Radio(s.Info())
			})
		},
	}
}
