package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"game-store/internal/client"
	"game-store/internal/models"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// errInvalidInput is returned after the field errors have been printed.
var errInvalidInput = errors.New("invalid game")

func newGamesCmd(a *app) *cobra.Command {
	games := &cobra.Command{
		Use:   "games",
		Short: "List, create, edit and delete games",
	}

	games.AddCommand(
		newGamesListCmd(a),
		newGamesShowCmd(a),
		newGamesCreateCmd(a),
		newGamesEditCmd(a),
		newGamesDeleteCmd(a),
	)
	return games
}

func newGamesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.client.CachedGames().Get(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No games yet. Add one with `gamestore games create`.")
				return nil
			}

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"ID", "Name", "Genre", "Price", "Release Date"})
			for _, g := range list {
				genre := "-"
				if g.Genre != nil {
					genre = *g.Genre
				}
				table.Append([]string{strconv.Itoa(g.ID), g.Name, genre, "$" + g.Price.StringFixed(2), g.ReleaseDate.String()})
			}
			table.Render()
			return nil
		},
	}
}

func newGamesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			game, err := a.client.Games.Get(cmd.Context(), id)
			if client.IsNotFound(err) {
				return fmt.Errorf("game %d not found", id)
			}
			if err != nil {
				return err
			}
			printGame(cmd.OutOrStdout(), game)
			return nil
		},
	}
}

// gameFlags are the form fields shared by create and edit.
type gameFlags struct {
	name        string
	genre       string
	price       string
	releaseDate string
}

func (f *gameFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "game name")
	cmd.Flags().StringVar(&f.genre, "genre", "", "genre id or name")
	cmd.Flags().StringVar(&f.price, "price", "", "price in USD, 0.01 to 1000")
	cmd.Flags().StringVar(&f.releaseDate, "release-date", "", "release date, YYYY-MM-DD")
}

// apply copies the flags that were set onto in. Unparseable values become
// field errors rather than aborting, so the user sees every problem at once.
func (f *gameFlags) apply(ctx context.Context, cmd *cobra.Command, a *app, in *client.GameInput) (client.FieldErrors, error) {
	errs := client.FieldErrors{}
	changed := cmd.Flags().Changed

	if changed("name") {
		in.Name = f.name
	}
	if changed("genre") {
		genres, err := a.client.CachedGenres().Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("load genres: %w", err)
		}
		id, ok := client.ResolveGenre(genres, f.genre)
		if !ok {
			errs["genreId"] = fmt.Sprintf("Unknown genre %q", f.genre)
		}
		in.GenreID = id
	}
	if changed("price") {
		price, err := decimal.NewFromString(strings.TrimPrefix(f.price, "$"))
		if err != nil {
			errs["price"] = "Price must be a number"
		}
		in.Price = price
	}
	if changed("release-date") {
		date, err := models.ParseDate(f.releaseDate)
		if err != nil {
			errs["releaseDate"] = "Release date must look like 2020-09-17"
		}
		in.ReleaseDate = date
	}
	return errs, nil
}

// submit validates locally, then calls send and maps API validation errors to fields.
func submit(cmd *cobra.Command, in *client.GameInput, errs client.FieldErrors, send func() error) error {
	for field, msg := range client.ValidateGameInput(in) {
		if _, seen := errs[field]; !seen {
			errs[field] = msg
		}
	}
	if len(errs) > 0 {
		printFieldErrors(cmd.ErrOrStderr(), errs)
		return errInvalidInput
	}

	err := send()
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && client.IsValidation(err) {
		printFieldErrors(cmd.ErrOrStderr(), apiErr.FieldErrors())
		return errInvalidInput
	}
	return err
}

func newGamesCreateCmd(a *app) *cobra.Command {
	var flags gameFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in client.GameInput
			errs, err := flags.apply(cmd.Context(), cmd, a, &in)
			if err != nil {
				return err
			}

			var created client.Game
			err = submit(cmd, &in, errs, func() (err error) {
				created, err = a.client.Games.Create(cmd.Context(), in)
				return err
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Created game successfully!")
			printGame(out, created)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newGamesEditCmd(a *app) *cobra.Command {
	var flags gameFlags
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a game; flags left out keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			current, err := a.client.Games.Get(cmd.Context(), id)
			if client.IsNotFound(err) {
				return fmt.Errorf("game %d not found", id)
			}
			if err != nil {
				return err
			}

			in := client.GameInput{
				Name:        current.Name,
				GenreID:     current.GenreID,
				Price:       current.Price,
				ReleaseDate: current.ReleaseDate,
			}
			errs, err := flags.apply(cmd.Context(), cmd, a, &in)
			if err != nil {
				return err
			}

			err = submit(cmd, &in, errs, func() error {
				return a.client.Games.Update(cmd.Context(), id, in)
			})
			if client.IsNotFound(err) {
				return fmt.Errorf("game %d no longer exists", id)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Updated game successfully!")
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newGamesDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !yes {
				label := fmt.Sprintf("game %d", id)
				if game, err := a.client.Games.Get(cmd.Context(), id); err == nil {
					label = fmt.Sprintf("%q", game.Name)
				}
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete %s? [y/N] ", label)) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := a.client.Games.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete game: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Game deleted successfully!")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid game id %q", s)
	}
	return id, nil
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func printGame(out io.Writer, g client.Game) {
	genre := "-"
	if g.GenreName != nil {
		genre = *g.GenreName
	}
	fmt.Fprintf(out, "ID:           %d\n", g.ID)
	fmt.Fprintf(out, "Name:         %s\n", g.Name)
	fmt.Fprintf(out, "Genre:        %s (%d)\n", genre, g.GenreID)
	fmt.Fprintf(out, "Price:        $%s\n", g.Price.StringFixed(2))
	fmt.Fprintf(out, "Release Date: %s\n", g.ReleaseDate)
}

func printFieldErrors(out io.Writer, errs client.FieldErrors) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(out, "%s: %s\n", field, errs[field])
	}
}
