package main

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newGenresCmd(a *app) *cobra.Command {
	genres := &cobra.Command{
		Use:   "genres",
		Short: "Inspect genres",
	}

	genres.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every genre",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.client.CachedGenres().Get(cmd.Context())
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Name"})
			for _, g := range list {
				table.Append([]string{strconv.Itoa(g.ID), g.Name})
			}
			table.Render()
			return nil
		},
	})

	return genres
}
