package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elizafairlady/go-wheel/entry"
	"github.com/elizafairlady/go-wheel/proto"
)

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [name]...",
		Short: "Add names to the wheel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				e, err := store.Add(name)
				if err != nil {
					return fmt.Errorf("add %q: %w", name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s %s\n", short(e.ID), e.Label)
			}
			return nil
		},
	}
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id|name]",
		Short: "Remove a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolve(store.List(), args[0])
			if err != nil {
				return err
			}
			if err := store.Remove(e.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", e.Label)
			return nil
		},
	}
}

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [id|name]",
		Short: "Include or exclude a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolve(store.List(), args[0])
			if err != nil {
				return err
			}
			if err := store.Toggle(e.ID); err != nil {
				return err
			}
			state := "included"
			if e.Included {
				state = "excluded"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, e.Label)
			return nil
		},
	}
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return store.Clear()
		},
	}
}

func lsCmd() *cobra.Command {
	var (
		raw  bool
		addr string
	)
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List the names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := store.List()
			if cmd.Flags().Changed("addr") {
				var err error
				if l, err = remoteEntries(addr); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			if raw {
				fmt.Fprint(out, proto.SerializeEntries(l))
				return nil
			}
			for _, e := range l {
				mark := " "
				if e.Included {
					mark = "*"
				}
				fmt.Fprintf(out, "%s %s %s\n", mark, short(e.ID), e.Label)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print entry lines as served by /entries")
	cmd.Flags().StringVar(&addr, "addr", "", "list the names of a running server instead")
	return cmd
}

// resolve finds an entry by id, id prefix, or exact label.
func resolve(l entry.List, key string) (entry.Entry, error) {
	if e, ok := l.Find(key); ok {
		return e, nil
	}
	var matches []entry.Entry
	for _, e := range l {
		if strings.HasPrefix(e.ID, key) || e.Label == key {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return entry.Entry{}, fmt.Errorf("%q: %w", key, entry.ErrNotFound)
	case 1:
		return matches[0], nil
	}
	return entry.Entry{}, fmt.Errorf("%q matches %d names", key, len(matches))
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
